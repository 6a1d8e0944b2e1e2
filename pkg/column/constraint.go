package column

import (
	"github.com/hlop3z/osql/internal/strutil"
	"github.com/hlop3z/osql/pkg/clause"
)

// -----------------------------------------------------------------------------
// Primary key
// -----------------------------------------------------------------------------

// PrimaryKey returns "PRIMARY KEY [ON CONFLICT X]".
func PrimaryKey(conflict clause.ConflictAction) clause.Clause {
	return primaryKey(clause.Unordered, conflict, false)
}

// PrimaryKeyAsc returns "PRIMARY KEY ASC [ON CONFLICT X]".
func PrimaryKeyAsc(conflict clause.ConflictAction) clause.Clause {
	return primaryKey(clause.Asc, conflict, false)
}

// PrimaryKeyDesc returns "PRIMARY KEY DESC [ON CONFLICT X]".
func PrimaryKeyDesc(conflict clause.ConflictAction) clause.Clause {
	return primaryKey(clause.Desc, conflict, false)
}

// PrimaryKeyAutoincrement returns "PRIMARY KEY [ON CONFLICT X] AUTOINCREMENT".
func PrimaryKeyAutoincrement(conflict clause.ConflictAction) clause.Clause {
	return primaryKey(clause.Unordered, conflict, true)
}

// PrimaryKeyAscAutoincrement returns "PRIMARY KEY ASC [ON CONFLICT X] AUTOINCREMENT".
func PrimaryKeyAscAutoincrement(conflict clause.ConflictAction) clause.Clause {
	return primaryKey(clause.Asc, conflict, true)
}

// PrimaryKeyDescAutoincrement returns "PRIMARY KEY DESC [ON CONFLICT X] AUTOINCREMENT".
func PrimaryKeyDescAutoincrement(conflict clause.ConflictAction) clause.Clause {
	return primaryKey(clause.Desc, conflict, true)
}

// PrimaryKeyOf is the general form behind the PrimaryKey* shortcuts.
func PrimaryKeyOf(dir clause.Direction, conflict clause.ConflictAction, autoincrement bool) clause.Clause {
	return primaryKey(dir, conflict, autoincrement)
}

func primaryKey(dir clause.Direction, conflict clause.ConflictAction, autoincrement bool) clause.Clause {
	auto := clause.KeywordNone
	if autoincrement {
		auto = clause.KeywordAutoincrement
	}
	return clause.Compose(clause.KindPrimaryKey,
		clause.KeywordPrimaryKey.Join(dir.Keyword()),
		"",
		conflictSuffix(conflict, auto),
	)
}

// conflictSuffix is "[ON CONFLICT X] [rest]". It sits in the suffix so that
// SetText on the constraint keeps the resolution.
func conflictSuffix(conflict clause.ConflictAction, rest clause.Keyword) clause.Keyword {
	return clause.Keyword(strutil.JoinNonBlank(" ", clause.Conflict(conflict).Render(), string(rest)))
}

// -----------------------------------------------------------------------------
// NOT NULL / UNIQUE
// -----------------------------------------------------------------------------

// NotNull returns "NOT NULL [ON CONFLICT X]".
func NotNull(conflict clause.ConflictAction) clause.Clause {
	return clause.Compose(clause.KindNotNull, clause.KeywordNotNull, "", conflictSuffix(conflict, clause.KeywordNone))
}

// Unique returns "UNIQUE [ON CONFLICT X]".
func Unique(conflict clause.ConflictAction) clause.Clause {
	return clause.Compose(clause.KindUnique, clause.KeywordUnique, "", conflictSuffix(conflict, clause.KeywordNone))
}

// -----------------------------------------------------------------------------
// Values and expressions
// -----------------------------------------------------------------------------

// Default returns "DEFAULT expr". The expression is emitted verbatim: quote
// string literals with strutil.QuoteLiteral first when SQL validity matters.
func Default(expr string) clause.Clause {
	return clause.Compose(clause.KindDefault, clause.KeywordDefault, expr, clause.KeywordNone)
}

// Check returns "CHECK (expr)".
func Check(expr string) clause.Clause {
	return clause.Compose(clause.KindCheck, clause.KeywordCheck, strutil.Parens(expr), clause.KeywordNone)
}

// Storage selects how a generated column is kept.
type Storage int

const (
	// StorageDefault leaves the choice to the engine (VIRTUAL for SQLite).
	StorageDefault Storage = iota
	Stored
	Virtual
)

func (s Storage) keyword() clause.Keyword {
	switch s {
	case Stored:
		return clause.KeywordStored
	case Virtual:
		return clause.KeywordVirtual
	default:
		return clause.KeywordNone
	}
}

// GeneratedAs returns "GENERATED ALWAYS AS (expr) [STORED|VIRTUAL]".
func GeneratedAs(expr string, storage Storage) clause.Clause {
	return clause.Compose(clause.KindGeneratedAs, clause.KeywordGeneratedAlwaysAs, strutil.Parens(expr), storage.keyword())
}

// As returns the short form "AS (expr) [STORED|VIRTUAL]".
func As(expr string, storage Storage) clause.Clause {
	return clause.Compose(clause.KindGeneratedAs, clause.KeywordAs, strutil.Parens(expr), storage.keyword())
}

// -----------------------------------------------------------------------------
// Naming and references
// -----------------------------------------------------------------------------

// Named returns "CONSTRAINT name <c>".
func Named(name string, c clause.Clause) clause.Clause {
	return clause.Compose(clause.KindNamedConstraint,
		clause.KeywordConstraint,
		strutil.JoinNonBlank(" ", name, c.Render()),
		clause.KeywordNone,
	)
}

// References returns a column-level foreign key: "REFERENCES t(a) [parts...]".
// Parts render in the order given.
func References(ref clause.Clause, parts ...clause.Clause) clause.Clause {
	rs := make([]clause.Renderer, 0, len(parts)+1)
	rs = append(rs, ref)
	for _, p := range parts {
		rs = append(rs, p)
	}
	return clause.Compose(clause.KindReferences, clause.KeywordNone, clause.Join(" ", rs...), clause.KeywordNone)
}

// Collate returns "COLLATE name" for use as a column constraint.
func Collate(name string) clause.Clause {
	return clause.Collate(name)
}
