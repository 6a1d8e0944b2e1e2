package schema

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/strutil"
	"github.com/hlop3z/osql/internal/validate"
	"github.com/hlop3z/osql/pkg/clause"
	"github.com/hlop3z/osql/pkg/column"
)

var (
	upper = cases.Upper(language.Und)

	conflictOptions = []string{"rollback", "abort", "fail", "ignore", "replace"}
	actionOptions   = []string{"set_null", "set_default", "cascade", "restrict", "no_action"}
	orderOptions    = []string{"asc", "desc"}
	deferOptions    = []string{"deferrable", "deferred", "immediate", "not_deferrable"}
)

// Columns returns the column definitions of t in declaration order.
func (t *Table) Columns() ([]column.Column, error) {
	cols := make([]column.Column, 0, len(t.ColumnSpecs))
	for ci := range t.ColumnSpecs {
		c, err := t.ColumnSpecs[ci].Column()
		if err != nil {
			var ae *alerr.Error
			if asAlerr(err, &ae) {
				ae.WithTable(t.Name).With(keyColumnIndex, ci)
			}
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// Constraints returns the table constraints of t: primary key, unique sets,
// foreign keys and checks, in that order.
func (t *Table) Constraints() ([]clause.Clause, error) {
	var out []clause.Clause

	if len(t.PrimaryKey) > 0 {
		out = append(out, clause.Compose(clause.KindPrimaryKey, clause.KeywordPrimaryKey, columnList(t.PrimaryKey), clause.KeywordNone))
	}
	for i, cols := range t.Unique {
		if len(cols) == 0 {
			return nil, fieldError(alerr.New(alerr.ErrSchemaInvalid, "unique constraint needs at least one column"), "unique", i).WithTable(t.Name)
		}
		out = append(out, clause.Compose(clause.KindUnique, clause.KeywordUnique, columnList(cols), clause.KeywordNone))
	}
	for i, fk := range t.ForeignKeys {
		if len(fk.Columns) == 0 {
			return nil, fieldError(alerr.New(alerr.ErrInvalidReference, "foreign key needs at least one column"), "foreign_keys", i).WithTable(t.Name)
		}
		ref, parts, err := fk.References.clauses()
		if err != nil {
			return nil, prefixField(err, "foreign_keys", i, "references").WithTable(t.Name)
		}
		out = append(out, clause.ForeignKeyColumns(fk.Columns, ref, parts...))
	}
	for _, expr := range t.Checks {
		out = append(out, column.Check(expr))
	}
	return out, nil
}

func (t *Table) validate() error {
	if len(t.ColumnSpecs) == 0 {
		return fieldError(alerr.Newf(alerr.ErrSchemaInvalid, "table %q has no columns", t.Name), "name").WithTable(t.Name)
	}
	seen := make(map[string]bool)
	for ci, c := range t.ColumnSpecs {
		if err := validate.ColumnName(c.Name); err != nil {
			return prefixField(err, "columns", ci, "name").WithTable(t.Name).WithColumn(c.Name)
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return fieldError(alerr.Newf(alerr.ErrSchemaDuplicate, "column %q is defined more than once", c.Name), "columns", ci, "name").
				WithTable(t.Name).
				WithColumn(c.Name)
		}
		seen[key] = true

		if r := c.References; r != nil {
			if err := r.validate(); err != nil {
				return prefixField(err, "columns", ci, "references").WithTable(t.Name).WithColumn(c.Name)
			}
		}
	}
	if err := t.validateNames(); err != nil {
		return err
	}
	if _, err := t.Columns(); err != nil {
		return err
	}
	_, err := t.Constraints()
	return err
}

// validateNames checks the column lists of the table constraints.
func (t *Table) validateNames() error {
	for i, name := range t.PrimaryKey {
		if err := validate.ColumnName(name); err != nil {
			return prefixField(err, "primary_key", i).WithTable(t.Name)
		}
	}
	for i, cols := range t.Unique {
		for j, name := range cols {
			if err := validate.ColumnName(name); err != nil {
				return prefixField(err, "unique", i, j).WithTable(t.Name)
			}
		}
	}
	for i, fk := range t.ForeignKeys {
		for j, name := range fk.Columns {
			if err := validate.ColumnName(name); err != nil {
				return prefixField(err, "foreign_keys", i, "columns", j).WithTable(t.Name)
			}
		}
		if err := fk.References.validate(); err != nil {
			return prefixField(err, "foreign_keys", i, "references").WithTable(t.Name)
		}
	}
	return nil
}

// Column converts the YAML column entry into a column definition.
// Constraints render in this order: PRIMARY KEY, NOT NULL, UNIQUE, CHECK,
// DEFAULT, COLLATE, generated expression, REFERENCES.
func (s *ColumnSpec) Column() (column.Column, error) {
	var cs []clause.Clause

	if pk := s.PrimaryKey; pk != nil && pk.Enabled {
		dir, err := parseOrder(pk.Order)
		if err != nil {
			return column.Column{}, s.fail(err, "primary_key", "order")
		}
		conflict, err := parseConflict(pk.OnConflict)
		if err != nil {
			return column.Column{}, s.fail(err, "primary_key", "on_conflict")
		}
		cs = append(cs, column.PrimaryKeyOf(dir, conflict, pk.Autoincrement))
	}
	if nn := s.NotNull; nn != nil && nn.Enabled {
		conflict, err := parseConflict(nn.OnConflict)
		if err != nil {
			return column.Column{}, s.fail(err, "not_null", "on_conflict")
		}
		cs = append(cs, column.NotNull(conflict))
	}
	if u := s.Unique; u != nil && u.Enabled {
		conflict, err := parseConflict(u.OnConflict)
		if err != nil {
			return column.Column{}, s.fail(err, "unique", "on_conflict")
		}
		cs = append(cs, column.Unique(conflict))
	}
	if s.Check != "" {
		cs = append(cs, column.Check(s.Check))
	}

	switch {
	case s.Default != nil && s.DefaultExpr != "":
		return column.Column{}, s.fail(alerr.New(alerr.ErrSchemaInvalid, "default and default_expr are mutually exclusive"), "default_expr")
	case s.Default != nil:
		lit, err := literal(s.Default)
		if err != nil {
			return column.Column{}, s.fail(err, "default")
		}
		cs = append(cs, column.Default(lit))
	case s.DefaultExpr != "":
		cs = append(cs, column.Default(strutil.Parens(s.DefaultExpr)))
	}

	if s.Collate != "" {
		cs = append(cs, column.Collate(s.Collate))
	}
	if g := s.Generated; g != nil {
		if strings.TrimSpace(g.Expr) == "" {
			return column.Column{}, s.fail(alerr.New(alerr.ErrSchemaInvalid, "generated column needs an expression"), "generated")
		}
		storage := column.Virtual
		if g.Stored {
			storage = column.Stored
		}
		cs = append(cs, column.GeneratedAs(g.Expr, storage))
	}
	if r := s.References; r != nil {
		ref, parts, err := r.clauses()
		if err != nil {
			return column.Column{}, s.fail(err, "references")
		}
		cs = append(cs, column.References(ref, parts...))
	}

	if s.Type == "" {
		if len(s.Args) > 0 {
			return column.Column{}, s.fail(alerr.New(alerr.ErrInvalidType, "type arguments given without a type"), "args")
		}
		return column.New(s.Name, cs...), nil
	}
	if len(s.Args) > 2 {
		return column.Column{}, s.fail(alerr.Newf(alerr.ErrInvalidType, "type %s takes at most two arguments, got %d", s.Type, len(s.Args)), "args")
	}
	for i, a := range s.Args {
		if a < 0 {
			return column.Column{}, s.fail(alerr.Newf(alerr.ErrInvalidType, "type argument %d must not be negative", a), "args", i)
		}
	}
	return column.Typed(s.Name, clause.TypeName(upper.String(strings.TrimSpace(s.Type)), s.Args...), cs...), nil
}

func (s *ColumnSpec) fail(err error, field ...any) *alerr.Error {
	return prefixField(err, field...).WithColumn(s.Name)
}

// validate checks the target names. A missing table is left to clauses.
func (r *ReferenceSpec) validate() error {
	if r.Table != "" {
		if err := validate.TableName(r.Table); err != nil {
			return prefixField(err, "table")
		}
	}
	for i, name := range r.Columns {
		if err := validate.ColumnName(name); err != nil {
			return prefixField(err, "columns", i)
		}
	}
	return nil
}

// clauses returns the REFERENCES clause and its trailing parts.
func (r *ReferenceSpec) clauses() (clause.Clause, []clause.Clause, error) {
	if strings.TrimSpace(r.Table) == "" {
		return clause.Clause{}, nil, fieldError(alerr.New(alerr.ErrInvalidReference, "foreign key target table is required"), "table")
	}
	var parts []clause.Clause

	if r.OnDelete != "" {
		a, err := parseAction(r.OnDelete)
		if err != nil {
			return clause.Clause{}, nil, prefixField(err, "on_delete")
		}
		parts = append(parts, clause.OnDelete(a))
	}
	if r.OnUpdate != "" {
		a, err := parseAction(r.OnUpdate)
		if err != nil {
			return clause.Clause{}, nil, prefixField(err, "on_update")
		}
		parts = append(parts, clause.OnUpdate(a))
	}
	if r.Match != "" {
		parts = append(parts, clause.Match(r.Match))
	}
	if r.Deferrable != "" {
		d, err := parseDeferrable(r.Deferrable)
		if err != nil {
			return clause.Clause{}, nil, prefixField(err, "deferrable")
		}
		parts = append(parts, d)
	}
	return clause.ForeignTable(r.Table, r.Columns...), parts, nil
}

// -----------------------------------------------------------------------------
// Name parsing
// -----------------------------------------------------------------------------

func parseConflict(s string) (clause.ConflictAction, error) {
	a, ok := clause.ParseConflictAction(s)
	if !ok {
		return clause.ConflictNone, fieldError(alerr.NewUnknownNameError(alerr.ErrInvalidConflict, "conflict resolution", s, conflictOptions))
	}
	return a, nil
}

func parseAction(s string) (clause.Action, error) {
	a, ok := clause.ParseAction(s)
	if !ok {
		return clause.ActionUnspecified, fieldError(alerr.NewUnknownNameError(alerr.ErrInvalidAction, "referential action", s, actionOptions))
	}
	return a, nil
}

func parseOrder(s string) (clause.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return clause.Unordered, nil
	case "asc":
		return clause.Asc, nil
	case "desc":
		return clause.Desc, nil
	}
	return clause.Unordered, fieldError(alerr.NewUnknownNameError(alerr.ErrInvalidOrder, "sort order", s, orderOptions))
}

func parseDeferrable(s string) (clause.Clause, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_")) {
	case "deferrable":
		return clause.Deferrable(clause.InitiallyUnspecified), nil
	case "deferred", "initially_deferred":
		return clause.DeferrableDeferred(), nil
	case "immediate", "initially_immediate":
		return clause.DeferrableImmediate(), nil
	case "not_deferrable", "not":
		return clause.NotDeferrable(clause.InitiallyUnspecified), nil
	}
	return clause.Clause{}, fieldError(alerr.NewUnknownNameError(alerr.ErrInvalidReference, "deferrable mode", s, deferOptions))
}

// literal renders a YAML scalar as a SQL literal.
func literal(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return strutil.QuoteLiteral(x), nil
	case bool:
		if x {
			return "1", nil
		}
		return "0", nil
	case int, int64, uint64, float64:
		return fmt.Sprint(x), nil
	default:
		return "", alerr.Newf(alerr.ErrSchemaInvalid, "unsupported default value of type %T", v)
	}
}

func columnList(cols []string) string {
	return "(" + strings.Join(cols, ", ") + ")"
}
