// Package column models a table column definition: a name, an optional type
// name and an ordered list of column constraints.
package column

import (
	"slices"

	"github.com/hlop3z/osql/internal/strutil"
	"github.com/hlop3z/osql/pkg/clause"
)

// Column renders as "name [type] [constraint ...]".
// Constraints render in the order they were supplied; empty ones are skipped.
type Column struct {
	name        string
	typ         clause.Clause
	typed       bool
	constraints []clause.Clause
}

// New returns an untyped column.
func New(name string, constraints ...clause.Clause) Column {
	return Column{name: name, constraints: slices.Clone(constraints)}
}

// Typed returns a column with a type name.
func Typed(name string, typ clause.Clause, constraints ...clause.Clause) Column {
	return Column{name: name, typ: typ, typed: true, constraints: slices.Clone(constraints)}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Type returns the type name and whether the column has one.
func (c Column) Type() (clause.Clause, bool) { return c.typ, c.typed }

// Constraints returns a copy of the constraint list.
func (c Column) Constraints() []clause.Clause { return slices.Clone(c.constraints) }

// With returns a copy of c with extra constraints appended.
func (c Column) With(constraints ...clause.Clause) Column {
	out := c
	out.constraints = append(slices.Clone(c.constraints), constraints...)
	return out
}

// Render returns the column definition text.
func (c Column) Render() string {
	parts := make([]string, 0, len(c.constraints)+2)
	parts = append(parts, c.name)
	if c.typed {
		parts = append(parts, c.typ.Render())
	}
	for _, k := range c.constraints {
		parts = append(parts, k.Render())
	}
	return strutil.JoinNonBlank(" ", parts...)
}

// String is equivalent to Render.
func (c Column) String() string {
	return c.Render()
}

var _ clause.Renderer = Column{}
