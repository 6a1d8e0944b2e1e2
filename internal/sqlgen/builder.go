// Package sqlgen assembles SQLite DDL statements from rendered columns and
// table constraints.
package sqlgen

import (
	"strings"

	"github.com/hlop3z/osql/internal/strutil"
	"github.com/hlop3z/osql/internal/validate"
	"github.com/hlop3z/osql/pkg/clause"
	"github.com/hlop3z/osql/pkg/column"
)

// TableOption is a CREATE TABLE table-option keyword.
type TableOption int

const (
	// WithoutRowID appends WITHOUT ROWID.
	WithoutRowID TableOption = iota + 1
	// Strict appends STRICT.
	Strict
)

// String returns the SQL keyword of the option.
func (o TableOption) String() string {
	switch o {
	case WithoutRowID:
		return "WITHOUT ROWID"
	case Strict:
		return "STRICT"
	default:
		return ""
	}
}

// Builder provides fluent SQL construction.
// Identifiers are written verbatim unless they need quoting, are SQL keywords,
// or QuoteAll is set.
type Builder struct {
	buf      strings.Builder
	quoteAll bool
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

// QuoteAll makes the builder quote every identifier it writes.
func (b *Builder) QuoteAll() *Builder {
	b.quoteAll = true
	return b
}

// Ident writes an identifier.
func (b *Builder) Ident(name string) *Builder {
	if b.quoteAll || strutil.NeedsQuoting(name) || validate.IsReservedWord(name) {
		b.buf.WriteString(strutil.QuoteIdent(name))
	} else {
		b.buf.WriteString(name)
	}
	return b
}

// ----------------------------------------------------------------------------
// DDL Helpers
// ----------------------------------------------------------------------------

// CreateTable appends "CREATE TABLE [IF NOT EXISTS] <name>" to the buffer.
func (b *Builder) CreateTable(name string, ifNotExists bool) *Builder {
	b.buf.WriteString("CREATE TABLE ")
	if ifNotExists {
		b.buf.WriteString("IF NOT EXISTS ")
	}
	return b.Ident(name)
}

// DropTable appends "DROP TABLE [IF EXISTS] <name>" to the buffer.
func (b *Builder) DropTable(name string, ifExists bool) *Builder {
	b.buf.WriteString("DROP TABLE ")
	if ifExists {
		b.buf.WriteString("IF EXISTS ")
	}
	return b.Ident(name)
}

// Columns appends the parenthesised definition list of a CREATE TABLE, one
// definition per line. Definitions that render empty are skipped.
func (b *Builder) Columns(defs ...clause.Renderer) *Builder {
	b.buf.WriteString(" (")
	first := true
	for _, d := range defs {
		if d == nil {
			continue
		}
		text := d.Render()
		if text == "" {
			continue
		}
		if !first {
			b.buf.WriteString(",")
		}
		first = false
		b.buf.WriteString("\n")
		b.buf.WriteString(strutil.Indent(text, 2))
	}
	if !first {
		b.buf.WriteString("\n")
	}
	b.buf.WriteString(")")
	return b
}

// Options appends the table options, comma separated.
func (b *Builder) Options(opts ...TableOption) *Builder {
	names := make([]string, 0, len(opts))
	for _, o := range opts {
		names = append(names, o.String())
	}
	if s := strutil.JoinNonBlank(", ", names...); s != "" {
		b.buf.WriteString(" ")
		b.buf.WriteString(s)
	}
	return b
}

// ----------------------------------------------------------------------------
// Utilities
// ----------------------------------------------------------------------------

// Raw appends raw SQL to the buffer without any modification.
func (b *Builder) Raw(sql string) *Builder {
	b.buf.WriteString(sql)
	return b
}

// Semicolon appends ";" to the buffer.
func (b *Builder) Semicolon() *Builder {
	b.buf.WriteString(";")
	return b
}

// Newline appends a newline character to the buffer.
func (b *Builder) Newline() *Builder {
	b.buf.WriteString("\n")
	return b
}

// Space appends a space character to the buffer.
func (b *Builder) Space() *Builder {
	b.buf.WriteString(" ")
	return b
}

// String returns the accumulated SQL string.
func (b *Builder) String() string {
	return b.buf.String()
}

// Reset clears the buffer so the builder can be reused.
func (b *Builder) Reset() *Builder {
	b.buf.Reset()
	return b
}

// ----------------------------------------------------------------------------
// Standalone Helpers
// ----------------------------------------------------------------------------

// CreateTableSQL returns a multi-line CREATE TABLE statement without a
// trailing semicolon. Columns come first, then table constraints.
func CreateTableSQL(name string, ifNotExists bool, cols []column.Column, constraints []clause.Clause, opts ...TableOption) string {
	defs := make([]clause.Renderer, 0, len(cols)+len(constraints))
	for _, c := range cols {
		defs = append(defs, c)
	}
	for _, c := range constraints {
		defs = append(defs, c)
	}
	return New().CreateTable(name, ifNotExists).Columns(defs...).Options(opts...).String()
}

// DropTableSQL returns a DROP TABLE statement.
func DropTableSQL(name string, ifExists bool) string {
	return New().DropTable(name, ifExists).String()
}

// Columns returns a comma-separated list of quoted column names.
// Example: Columns("a", "b", "c") -> `"a", "b", "c"`
func Columns(cols ...string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = strutil.QuoteIdent(col)
	}
	return strings.Join(parts, ", ")
}

// Placeholders returns n comma-separated "?" placeholders.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// List returns a comma-separated list of items without quoting.
// Example: List("a", "b", "c") -> "a, b, c"
func List(items ...string) string {
	return strings.Join(items, ", ")
}
