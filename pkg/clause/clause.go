// Package clause provides typed SQL clause values that render themselves as
// correctly punctuated SQL fragments.
//
// Every clause is a prefix, a core text and a suffix. The prefix and suffix are
// fixed by the constructor of each clause kind (ORDER BY, ON CONFLICT, ...); the
// core is instance data, either caller-supplied text or the rendered text of
// child clauses. Rendering trims each segment, drops the blank ones and joins
// what is left with single spaces, so an absent optional part never leaves a
// stray separator behind.
//
// Clauses are values. Copying a clause copies its text; nothing is shared.
// Rendered text is never validated or escaped: callers building core text from
// untrusted input are responsible for quoting it.
package clause

import (
	"strings"

	"github.com/hlop3z/osql/internal/strutil"
)

// Kind identifies the family a clause belongs to.
type Kind int

const (
	KindCustom Kind = iota
	KindText
	KindCollate
	KindConflict
	KindDeferrable
	KindForeignTable
	KindForeignKey
	KindMatch
	KindOnDelete
	KindOnUpdate
	KindOrderingTerm
	KindOrderBy
	KindTypeName
	KindWith
	KindSelect
	KindPrimaryKey
	KindNotNull
	KindUnique
	KindDefault
	KindCheck
	KindGeneratedAs
	KindNamedConstraint
	KindReferences
)

var kindNames = map[Kind]string{
	KindCustom:          "custom",
	KindText:            "text",
	KindCollate:         "collate",
	KindConflict:        "conflict",
	KindDeferrable:      "deferrable",
	KindForeignTable:    "foreign_table",
	KindForeignKey:      "foreign_key",
	KindMatch:           "match",
	KindOnDelete:        "on_delete",
	KindOnUpdate:        "on_update",
	KindOrderingTerm:    "ordering_term",
	KindOrderBy:         "order_by",
	KindTypeName:        "type_name",
	KindWith:            "with",
	KindSelect:          "select",
	KindPrimaryKey:      "primary_key",
	KindNotNull:         "not_null",
	KindUnique:          "unique",
	KindDefault:         "default",
	KindCheck:           "check",
	KindGeneratedAs:     "generated_as",
	KindNamedConstraint: "named_constraint",
	KindReferences:      "references",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Renderer is implemented by anything that renders to a SQL fragment.
type Renderer interface {
	Render() string
}

// Clause is a self-rendering SQL fragment.
// The zero value is an empty clause that renders as "".
type Clause struct {
	kind   Kind
	prefix string
	core   string
	suffix string
}

// New returns a clause with a caller-chosen prefix and suffix.
// Use it for fragments this package has no dedicated constructor for.
func New(prefix, core, suffix string) Clause {
	return Clause{kind: KindCustom, prefix: prefix, core: core, suffix: suffix}
}

// Text returns a clause without prefix or suffix; it renders as core, trimmed.
func Text(core string) Clause {
	return Clause{kind: KindText, core: core}
}

// Compose returns a clause of the given kind whose prefix and suffix are keyword
// sequences. Constructors of other packages (pkg/column) build their kinds with it.
func Compose(kind Kind, prefix Keyword, core string, suffix Keyword) Clause {
	return Clause{kind: kind, prefix: string(prefix), core: core, suffix: string(suffix)}
}

// Render returns "prefix core suffix" with blank segments and their
// separators omitted. It never returns leading or trailing whitespace.
func (c Clause) Render() string {
	return strutil.JoinNonBlank(" ", c.prefix, c.core, c.suffix)
}

// String is equivalent to Render.
func (c Clause) String() string {
	return c.Render()
}

// SetText replaces the core text. Prefix and suffix are left untouched.
func (c *Clause) SetText(core string) {
	c.core = core
}

// Kind returns the family of the clause.
func (c Clause) Kind() Kind { return c.kind }

// Prefix returns the fixed leading keyword sequence.
func (c Clause) Prefix() string { return c.prefix }

// Core returns the mutable core text.
func (c Clause) Core() string { return c.core }

// Suffix returns the fixed trailing keyword sequence.
func (c Clause) Suffix() string { return c.suffix }

// IsEmpty reports whether the clause renders as the empty string.
func (c Clause) IsEmpty() bool {
	return c.Render() == ""
}

// Join renders each part and joins the non-blank results with sep.
func Join(sep string, parts ...Renderer) string {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == nil {
			continue
		}
		texts = append(texts, p.Render())
	}
	return strutil.JoinNonBlank(sep, texts...)
}

// joinClauses is Join for a slice of concrete clauses.
func joinClauses(sep string, cs []Clause) string {
	texts := make([]string, len(cs))
	for i, c := range cs {
		texts[i] = c.Render()
	}
	return strutil.JoinNonBlank(sep, texts...)
}

// parenthesized wraps a comma-separated list in parentheses, or returns "" for an empty list.
func parenthesized(sep string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "(" + strings.Join(items, sep) + ")"
}
