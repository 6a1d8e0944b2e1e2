package clause

import "strings"

// Action is a referential action of ON DELETE / ON UPDATE.
type Action int

const (
	// ActionUnspecified renders no ON DELETE / ON UPDATE clause.
	ActionUnspecified Action = iota
	SetNull
	SetDefault
	Cascade
	Restrict
	NoAction
)

var actionKeywords = map[Action]Keyword{
	SetNull:    KeywordSetNull,
	SetDefault: KeywordSetDefault,
	Cascade:    KeywordCascade,
	Restrict:   KeywordRestrict,
	NoAction:   KeywordNoAction,
}

// String returns the action keyword, or "" when unspecified.
func (a Action) String() string {
	return string(actionKeywords[a])
}

// ParseAction maps "cascade", "set null", "set_null", "restrict", ... to an Action.
// The empty string maps to ActionUnspecified.
func ParseAction(s string) (Action, bool) {
	norm := strings.ToUpper(strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " "))
	if norm == "" {
		return ActionUnspecified, true
	}
	for a, kw := range actionKeywords {
		if string(kw) == norm {
			return a, true
		}
	}
	return ActionUnspecified, false
}

// OnDelete returns "ON DELETE <action>".
func OnDelete(action Action) Clause {
	return referentialAction(KindOnDelete, KeywordOnDelete, action)
}

// OnUpdate returns "ON UPDATE <action>".
func OnUpdate(action Action) Clause {
	return referentialAction(KindOnUpdate, KeywordOnUpdate, action)
}

func referentialAction(kind Kind, prefix Keyword, action Action) Clause {
	kw, ok := actionKeywords[action]
	if !ok {
		return Clause{kind: kind}
	}
	return Compose(kind, prefix.Join(kw), "", KeywordNone)
}

// Match returns "MATCH name".
func Match(name string) Clause {
	return Compose(KindMatch, KeywordMatch, name, KeywordNone)
}

// ForeignTable returns the REFERENCES part of a foreign key:
// "REFERENCES table(col1, col2)", or "REFERENCES table" without columns.
func ForeignTable(table string, columns ...string) Clause {
	return Compose(KindForeignTable, KeywordReferences, table+parenthesized(", ", columns), KeywordNone)
}

// ForeignKey returns "FOREIGN KEY <ref> <parts...>".
// The parts (ON DELETE, ON UPDATE, MATCH, deferrable) render in the order given;
// empty parts are skipped.
func ForeignKey(ref Clause, parts ...Clause) Clause {
	children := append([]Clause{ref}, parts...)
	return Compose(KindForeignKey, KeywordForeignKey, joinClauses(" ", children), KeywordNone)
}

// ForeignKeyColumns returns the table-constraint form
// "FOREIGN KEY (col1, col2) <ref> <parts...>".
func ForeignKeyColumns(columns []string, ref Clause, parts ...Clause) Clause {
	children := append([]Clause{Text(parenthesized(", ", columns)), ref}, parts...)
	return Compose(KindForeignKey, KeywordForeignKey, joinClauses(" ", children), KeywordNone)
}
