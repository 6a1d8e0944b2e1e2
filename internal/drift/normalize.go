package drift

import (
	"regexp"
	"strings"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	ifNotExists = regexp.MustCompile(`(?i)^CREATE\s+TABLE\s+IF\s+NOT\s+EXISTS\s+`)
)

// tableConstraintWords start a table constraint rather than a column definition.
var tableConstraintWords = map[string]bool{
	"CONSTRAINT": true,
	"PRIMARY":    true,
	"UNIQUE":     true,
	"CHECK":      true,
	"FOREIGN":    true,
}

// Normalize rewrites a CREATE TABLE statement the way SQLite stores it in
// sqlite_master: IF NOT EXISTS and a trailing semicolon are dropped. It also
// collapses whitespace so that formatting differences do not count as drift.
func Normalize(sql string) string {
	s := strings.TrimSpace(sql)
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	s = ifNotExists.ReplaceAllString(s, "CREATE TABLE ")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "( ", "(")
	s = strings.ReplaceAll(s, " )", ")")
	return s
}

// Definitions splits the parenthesised body of a CREATE TABLE statement into
// its column definitions and table constraints.
func Definitions(sql string) []string {
	start := strings.IndexByte(sql, '(')
	end := strings.LastIndexByte(sql, ')')
	if start < 0 || end <= start {
		return nil
	}
	body := sql[start+1 : end]

	var (
		defs  []string
		depth int
		quote rune
		last  int
	)
	for i, r := range body {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '[':
			quote = ']'
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ',' && depth == 0:
			defs = appendDef(defs, body[last:i])
			last = i + 1
		}
	}
	return appendDef(defs, body[last:])
}

func appendDef(defs []string, def string) []string {
	if def = strings.TrimSpace(def); def != "" {
		defs = append(defs, def)
	}
	return defs
}

// definitionKey names a definition: the lower-cased column name, or the whole
// text for a table constraint.
func definitionKey(def string) string {
	first := def
	if i := strings.IndexAny(def, " ("); i >= 0 {
		first = def[:i]
	}
	if tableConstraintWords[strings.ToUpper(first)] {
		return def
	}
	return strings.ToLower(strings.Trim(first, "\"`[]"))
}
