// Package validate checks table and column names before they are written into
// DDL unquoted: plain ASCII identifiers only, and never an SQLite keyword.
package validate

import (
	"regexp"
	"strings"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/strutil"
)

// keywords is the SQLite keyword list (https://sqlite.org/lang_keywords.html).
// Some of them are accepted unquoted by the parser in some positions; all of
// them are rejected here so generated DDL never depends on that fallback.
var keywords = map[string]bool{
	"abort": true, "action": true, "add": true, "after": true, "all": true,
	"alter": true, "always": true, "analyze": true, "and": true, "as": true,
	"asc": true, "attach": true, "autoincrement": true, "before": true, "begin": true,
	"between": true, "by": true, "cascade": true, "case": true, "cast": true,
	"check": true, "collate": true, "column": true, "commit": true, "conflict": true,
	"constraint": true, "create": true, "cross": true, "current": true, "current_date": true,
	"current_time": true, "current_timestamp": true, "database": true, "default": true, "deferrable": true,
	"deferred": true, "delete": true, "desc": true, "detach": true, "distinct": true,
	"do": true, "drop": true, "each": true, "else": true, "end": true,
	"escape": true, "except": true, "exclude": true, "exclusive": true, "exists": true,
	"explain": true, "fail": true, "filter": true, "first": true, "following": true,
	"for": true, "foreign": true, "from": true, "full": true, "generated": true,
	"glob": true, "group": true, "groups": true, "having": true, "if": true,
	"ignore": true, "immediate": true, "in": true, "index": true, "indexed": true,
	"initially": true, "inner": true, "insert": true, "instead": true, "intersect": true,
	"into": true, "is": true, "isnull": true, "join": true, "key": true,
	"last": true, "left": true, "like": true, "limit": true, "match": true,
	"materialized": true, "natural": true, "no": true, "not": true, "nothing": true,
	"notnull": true, "null": true, "nulls": true, "of": true, "offset": true,
	"on": true, "or": true, "order": true, "others": true, "outer": true,
	"over": true, "partition": true, "plan": true, "pragma": true, "preceding": true,
	"primary": true, "query": true, "raise": true, "range": true, "recursive": true,
	"references": true, "regexp": true, "reindex": true, "release": true, "rename": true,
	"replace": true, "restrict": true, "returning": true, "right": true, "rollback": true,
	"row": true, "rows": true, "savepoint": true, "select": true, "set": true,
	"table": true, "temp": true, "temporary": true, "then": true, "ties": true,
	"to": true, "transaction": true, "trigger": true, "unbounded": true, "union": true,
	"unique": true, "update": true, "using": true, "vacuum": true, "values": true,
	"view": true, "virtual": true, "when": true, "where": true, "window": true,
	"with": true, "without": true,
}

// IsReservedWord reports whether s is an SQLite keyword, ignoring case.
func IsReservedWord(s string) bool {
	return keywords[strings.ToLower(s)]
}

// ReservedWordError returns an error if s is a reserved word, nil otherwise.
func ReservedWordError(s string) error {
	if !IsReservedWord(s) {
		return nil
	}
	return alerr.Newf(alerr.ErrReservedWord, "'%s' is an SQL keyword", s).
		With("identifier", s).
		WithHelp("rename it, for example to '" + strings.ToLower(s) + "_col'")
}

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s can be written into SQL without quotes
// as far as its characters go. Keywords are not checked.
func IsIdentifier(s string) bool {
	return identRegex.MatchString(s)
}

// Identifier validates s as an unquoted identifier: ASCII letters, digits and
// underscores, not starting with a digit, and not a keyword.
func Identifier(s string) error {
	if s == "" {
		return alerr.New(alerr.ErrInvalidIdentifier, "name cannot be empty")
	}
	if !IsIdentifier(s) {
		err := alerr.Newf(alerr.ErrInvalidIdentifier, "name %q is not a plain identifier", s).
			With("got", s)
		if suggestion := strutil.ToSnakeCase(s); suggestion != s && IsIdentifier(suggestion) && !IsReservedWord(suggestion) {
			err.WithHelp("did you mean '" + suggestion + "'?")
		}
		return err
	}
	return ReservedWordError(s)
}

// TableName validates a table name.
func TableName(s string) error {
	return named("table", s)
}

// ColumnName validates a column name.
func ColumnName(s string) error {
	return named("column", s)
}

func named(what, s string) error {
	err := Identifier(s)
	if e, ok := err.(*alerr.Error); ok {
		e.SetMessage(what + " " + e.GetMessage())
	}
	return err
}
