// Package strutil provides string utilities for clause rendering, case
// conversion and SQL quoting used throughout the osql codebase.
package strutil

import (
	"strings"
	"unicode"

	"github.com/lib/pq"
)

// -----------------------------------------------------------------------------
// Joining
// -----------------------------------------------------------------------------

// JoinNonBlank trims each part, drops the ones that are empty afterwards and
// joins the rest with sep.
// Example: JoinNonBlank(" ", " ORDER BY", "", "a ") -> "ORDER BY a"
func JoinNonBlank(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Parens wraps s in parentheses, or returns "" when s is blank.
func Parens(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

// -----------------------------------------------------------------------------
// Case Conversion
// -----------------------------------------------------------------------------

// ToSnakeCase splits s into words at '_', '-', ' ', lower-to-upper changes and
// the end of an acronym, then joins them lower-cased with '_'.
// Examples: sqlLength -> sql_length, VDBEOp -> vdbe_op, like-pattern -> like_pattern
func ToSnakeCase(s string) string {
	rs := []rune(s)
	var words []string
	start := 0
	cut := func(end int) {
		if end > start {
			words = append(words, strings.ToLower(string(rs[start:end])))
		}
	}
	for i, r := range rs {
		switch {
		case r == '_' || r == '-' || r == ' ':
			cut(i)
			start = i + 1
		case unicode.IsUpper(r) && i > start:
			prev := rs[i-1]
			acronymEnd := unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || acronymEnd {
				cut(i)
				start = i
			}
		}
	}
	cut(len(rs))
	return strings.Join(words, "_")
}

// -----------------------------------------------------------------------------
// SQL Quoting
// -----------------------------------------------------------------------------

// QuoteIdent quotes a SQL identifier with double quotes, escaping embedded quotes.
// Example: QuoteIdent(`my "table"`) -> `"my ""table"""`
func QuoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

// QuoteLiteral quotes a string literal with single quotes, escaping embedded quotes.
// Backslashes are left alone; SQLite gives them no special meaning.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// NeedsQuoting reports whether name must be quoted to be used as an identifier.
func NeedsQuoting(name string) bool {
	if name == "" {
		return true
	}
	for i, r := range name {
		switch {
		case r == '_', unicode.IsLetter(r) && r < unicode.MaxASCII:
		case unicode.IsDigit(r) && i > 0:
		default:
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// Indent indents each non-empty line of text with the given number of spaces.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
