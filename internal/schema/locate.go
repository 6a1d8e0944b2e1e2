package schema

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hlop3z/osql/internal/alerr"
)

// Context keys used while an error travels up from a column or clause
// builder. locate turns them into a file position and removes them.
const (
	keyField       = "field"
	keyTableIndex  = "table_index"
	keyColumnIndex = "column_index"
)

// fieldError records the path of the offending YAML field on e.
func fieldError(e *alerr.Error, field ...any) *alerr.Error {
	if len(field) > 0 {
		e.With(keyField, field)
	}
	return e
}

// prefixField prepends field to the path already recorded on err.
func prefixField(err error, field ...any) *alerr.Error {
	var ae *alerr.Error
	if !asAlerr(err, &ae) {
		ae = alerr.Wrap(alerr.ErrSchemaInvalid, err, "invalid schema")
	}
	inner, _ := ae.GetContext()[keyField].([]any)
	path := make([]any, 0, len(field)+len(inner))
	path = append(path, field...)
	path = append(path, inner...)
	return fieldError(ae, path...)
}

func asAlerr(err error, target **alerr.Error) bool {
	return errors.As(err, target)
}

// locate attaches file, line, column and the source line of the offending
// YAML node to ae.
func locate(ae *alerr.Error, root *yaml.Node, path string, data []byte) {
	ctx := ae.GetContext()
	var keys []any
	if ti, ok := ctx[keyTableIndex].(int); ok {
		keys = append(keys, "tables", ti)
	}
	if ci, ok := ctx[keyColumnIndex].(int); ok {
		keys = append(keys, "columns", ci)
	}
	if f, ok := ctx[keyField].([]any); ok {
		keys = append(keys, f...)
	}
	ae.Without(keyTableIndex).Without(keyColumnIndex).Without(keyField)

	name := path
	if name == "" {
		name = "<input>"
	}
	n := lookup(root, keys...)
	if n == nil || n.Line == 0 {
		ae.WithFile(name, 0)
		return
	}
	ae.WithLocation(name, n.Line, n.Column)

	lines := strings.Split(string(data), "\n")
	if n.Line-1 >= len(lines) {
		return
	}
	ae.WithSource(strings.TrimRight(lines[n.Line-1], "\r"))
	width := len(n.Value)
	if n.Kind != yaml.ScalarNode || width == 0 {
		width = 1
	}
	ae.WithSpan(n.Column, n.Column+width-1)
}

// lookup follows keys (mapping keys as strings, sequence indexes as ints)
// from root and returns the deepest node reached.
func lookup(root *yaml.Node, keys ...any) *yaml.Node {
	n := root
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, k := range keys {
		next := child(n, k)
		if next == nil {
			break
		}
		n = next
	}
	return n
}

func child(n *yaml.Node, key any) *yaml.Node {
	if n == nil {
		return nil
	}
	switch k := key.(type) {
	case string:
		if n.Kind != yaml.MappingNode {
			return nil
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == k {
				return n.Content[i+1]
			}
		}
	case int:
		if n.Kind == yaml.SequenceNode && k >= 0 && k < len(n.Content) {
			return n.Content[k]
		}
	}
	return nil
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// yamlErrorLine extracts the first line number from a yaml.v3 error message.
func yamlErrorLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}
