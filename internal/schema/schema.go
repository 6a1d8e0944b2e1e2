// Package schema reads table definitions from YAML schema files and turns
// them into column and clause values.
package schema

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/validate"
)

// File is one decoded schema file.
type File struct {
	Path   string  `yaml:"-"`
	Tables []Table `yaml:"tables"`
}

// Table describes one CREATE TABLE statement.
type Table struct {
	Name         string           `yaml:"name"`
	IfNotExists  bool             `yaml:"if_not_exists"`
	WithoutRowID bool             `yaml:"without_rowid"`
	Strict       bool             `yaml:"strict"`
	ColumnSpecs  []ColumnSpec     `yaml:"columns"`
	PrimaryKey   []string         `yaml:"primary_key"`
	Unique       [][]string       `yaml:"unique"`
	ForeignKeys  []ForeignKeySpec `yaml:"foreign_keys"`
	Checks       []string         `yaml:"checks"`
}

// ColumnSpec describes one column definition.
type ColumnSpec struct {
	Name        string          `yaml:"name"`
	Type        string          `yaml:"type"`
	Args        []int           `yaml:"args"`
	PrimaryKey  *PrimaryKeySpec `yaml:"primary_key"`
	NotNull     *ConflictSpec   `yaml:"not_null"`
	Unique      *ConflictSpec   `yaml:"unique"`
	Default     any             `yaml:"default"`
	DefaultExpr string          `yaml:"default_expr"`
	Check       string          `yaml:"check"`
	Collate     string          `yaml:"collate"`
	Generated   *GeneratedSpec  `yaml:"generated"`
	References  *ReferenceSpec  `yaml:"references"`
}

// ConflictSpec enables a NOT NULL or UNIQUE constraint. It decodes from
// `true` or from a mapping with an optional on_conflict key.
type ConflictSpec struct {
	Enabled    bool
	OnConflict string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ConflictSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		return n.Decode(&c.Enabled)
	}
	var raw struct {
		OnConflict string `yaml:"on_conflict"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	c.Enabled = true
	c.OnConflict = raw.OnConflict
	return nil
}

// PrimaryKeySpec marks a column as the primary key. It decodes from `true` or
// from a mapping.
type PrimaryKeySpec struct {
	Enabled       bool
	Order         string
	Autoincrement bool
	OnConflict    string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PrimaryKeySpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		return n.Decode(&p.Enabled)
	}
	var raw struct {
		Order         string `yaml:"order"`
		Autoincrement bool   `yaml:"autoincrement"`
		OnConflict    string `yaml:"on_conflict"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	*p = PrimaryKeySpec{Enabled: true, Order: raw.Order, Autoincrement: raw.Autoincrement, OnConflict: raw.OnConflict}
	return nil
}

// GeneratedSpec describes a generated column.
type GeneratedSpec struct {
	Expr   string `yaml:"expr"`
	Stored bool   `yaml:"stored"`
}

// ReferenceSpec is the target of a foreign key.
type ReferenceSpec struct {
	Table      string   `yaml:"table"`
	Columns    []string `yaml:"columns"`
	OnDelete   string   `yaml:"on_delete"`
	OnUpdate   string   `yaml:"on_update"`
	Match      string   `yaml:"match"`
	Deferrable string   `yaml:"deferrable"`
}

// ForeignKeySpec is a table-level foreign key.
type ForeignKeySpec struct {
	Columns    []string      `yaml:"columns"`
	References ReferenceSpec `yaml:"references"`
}

// Parse decodes and validates a schema document.
func Parse(r io.Reader) (*File, error) {
	return parse(r, "")
}

// Load reads and parses the schema file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, alerr.Wrap(alerr.ErrSchemaNotFound, err, "schema file not found").WithFile(path, 0)
		}
		return nil, alerr.Wrap(alerr.ErrSchemaInvalid, err, "failed to read schema file").WithFile(path, 0)
	}
	return parse(bytes.NewReader(data), path)
}

// LoadAll loads the given files concurrently. The result keeps the order of paths.
func LoadAll(ctx context.Context, paths ...string) ([]*File, error) {
	files := make([]*File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := Load(p)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Merge flattens the tables of files, rejecting a table name defined twice.
func Merge(files ...*File) ([]Table, error) {
	seen := make(map[string]string)
	var out []Table
	for _, f := range files {
		for _, t := range f.Tables {
			key := strings.ToLower(t.Name)
			if prev, ok := seen[key]; ok {
				return nil, alerr.Newf(alerr.ErrSchemaDuplicate, "table %q is defined more than once", t.Name).
					WithTable(t.Name).
					With("first", prev).
					With("again", f.Path)
			}
			seen[key] = f.Path
			out = append(out, t)
		}
	}
	return out, nil
}

func parse(r io.Reader, path string) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrSchemaInvalid, err, "failed to read schema").WithFile(path, 0)
	}

	f := &File{Path: path}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, alerr.Wrap(alerr.ErrSchemaInvalid, err, "failed to decode schema").WithFile(path, yamlErrorLine(err))
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, alerr.Wrap(alerr.ErrSchemaInvalid, err, "failed to decode schema").WithFile(path, yamlErrorLine(err))
	}

	if err := f.validate(); err != nil {
		var ae *alerr.Error
		if errors.As(err, &ae) {
			locate(ae, &root, path, data)
		}
		return nil, err
	}
	return f, nil
}

// validate builds every table once so that later calls cannot fail.
func (f *File) validate() error {
	seen := make(map[string]bool)
	for ti := range f.Tables {
		t := &f.Tables[ti]
		if err := validate.TableName(t.Name); err != nil {
			return prefixField(err, "name").With(keyTableIndex, ti)
		}
		key := strings.ToLower(t.Name)
		if seen[key] {
			return fieldError(alerr.Newf(alerr.ErrSchemaDuplicate, "table %q is defined more than once", t.Name), "name").
				With(keyTableIndex, ti).
				WithTable(t.Name)
		}
		seen[key] = true

		if err := t.validate(); err != nil {
			var ae *alerr.Error
			if errors.As(err, &ae) {
				ae.With(keyTableIndex, ti)
			}
			return err
		}
	}
	return nil
}
