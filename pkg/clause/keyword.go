package clause

import "github.com/hlop3z/osql/internal/strutil"

// Keyword is a fixed SQL keyword sequence baked into a clause kind's prefix or suffix.
type Keyword string

// Keyword sequences used by the clause kinds of this package and by pkg/column.
const (
	KeywordNone Keyword = ""

	// Ordering
	KeywordOrderBy    Keyword = "ORDER BY"
	KeywordAsc        Keyword = "ASC"
	KeywordDesc       Keyword = "DESC"
	KeywordNullsFirst Keyword = "NULLS FIRST"
	KeywordNullsLast  Keyword = "NULLS LAST"
	KeywordCollate    Keyword = "COLLATE"

	// Conflict resolution
	KeywordOnConflict Keyword = "ON CONFLICT"
	KeywordRollback   Keyword = "ROLLBACK"
	KeywordAbort      Keyword = "ABORT"
	KeywordFail       Keyword = "FAIL"
	KeywordIgnore     Keyword = "IGNORE"
	KeywordReplace    Keyword = "REPLACE"

	// Deferrable
	KeywordDeferrable         Keyword = "DEFERRABLE"
	KeywordNotDeferrable      Keyword = "NOT DEFERRABLE"
	KeywordInitiallyDeferred  Keyword = "INITIALLY DEFERRED"
	KeywordInitiallyImmediate Keyword = "INITIALLY IMMEDIATE"

	// Foreign keys
	KeywordForeignKey Keyword = "FOREIGN KEY"
	KeywordReferences Keyword = "REFERENCES"
	KeywordMatch      Keyword = "MATCH"
	KeywordOnDelete   Keyword = "ON DELETE"
	KeywordOnUpdate   Keyword = "ON UPDATE"
	KeywordSetNull    Keyword = "SET NULL"
	KeywordSetDefault Keyword = "SET DEFAULT"
	KeywordCascade    Keyword = "CASCADE"
	KeywordRestrict   Keyword = "RESTRICT"
	KeywordNoAction   Keyword = "NO ACTION"

	// Statements
	KeywordWith           Keyword = "WITH"
	KeywordWithRecursive  Keyword = "WITH RECURSIVE"
	KeywordSelect         Keyword = "SELECT"
	KeywordSelectDistinct Keyword = "SELECT DISTINCT"
	KeywordSelectAll      Keyword = "SELECT ALL"

	// Column constraints
	KeywordConstraint        Keyword = "CONSTRAINT"
	KeywordPrimaryKey        Keyword = "PRIMARY KEY"
	KeywordAutoincrement     Keyword = "AUTOINCREMENT"
	KeywordNotNull           Keyword = "NOT NULL"
	KeywordUnique            Keyword = "UNIQUE"
	KeywordDefault           Keyword = "DEFAULT"
	KeywordCheck             Keyword = "CHECK"
	KeywordGeneratedAlwaysAs Keyword = "GENERATED ALWAYS AS"
	KeywordAs                Keyword = "AS"
	KeywordStored            Keyword = "STORED"
	KeywordVirtual           Keyword = "VIRTUAL"

	// Type names
	KeywordInteger  Keyword = "INTEGER"
	KeywordText     Keyword = "TEXT"
	KeywordReal     Keyword = "REAL"
	KeywordBlob     Keyword = "BLOB"
	KeywordNumeric  Keyword = "NUMERIC"
	KeywordBoolean  Keyword = "BOOLEAN"
	KeywordDate     Keyword = "DATE"
	KeywordDatetime Keyword = "DATETIME"
	KeywordChar     Keyword = "CHAR"
	KeywordVarchar  Keyword = "VARCHAR"
	KeywordDecimal  Keyword = "DECIMAL"
)

// Chars assembles a keyword from a sequence of characters.
// The sequence ends at the first 0 byte; anything after it is ignored.
//
//	Chars('A', 'S', 'C', 0) == KeywordAsc
func Chars(cs ...byte) Keyword {
	for i, c := range cs {
		if c == 0 {
			return Keyword(cs[:i])
		}
	}
	return Keyword(cs)
}

// Join appends the given keyword sequences to k, separated by single spaces.
// Blank sequences are skipped.
func (k Keyword) Join(parts ...Keyword) Keyword {
	all := make([]string, 0, len(parts)+1)
	all = append(all, string(k))
	for _, p := range parts {
		all = append(all, string(p))
	}
	return Keyword(strutil.JoinNonBlank(" ", all...))
}

// String returns the keyword text.
func (k Keyword) String() string {
	return string(k)
}
