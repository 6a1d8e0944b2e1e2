package clause

import "strings"

// ConflictAction is the resolution algorithm of an ON CONFLICT clause.
type ConflictAction int

const (
	// ConflictNone renders no ON CONFLICT clause at all.
	ConflictNone ConflictAction = iota
	ConflictRollback
	ConflictAbort
	ConflictFail
	ConflictIgnore
	ConflictReplace
)

var conflictKeywords = map[ConflictAction]Keyword{
	ConflictRollback: KeywordRollback,
	ConflictAbort:    KeywordAbort,
	ConflictFail:     KeywordFail,
	ConflictIgnore:   KeywordIgnore,
	ConflictReplace:  KeywordReplace,
}

// String returns the action keyword, or "" for ConflictNone.
func (a ConflictAction) String() string {
	return string(conflictKeywords[a])
}

// ParseConflictAction maps "rollback", "abort", "fail", "ignore", "replace"
// (any case) and "" / "none" to a ConflictAction.
func ParseConflictAction(s string) (ConflictAction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return ConflictNone, true
	case string(KeywordRollback):
		return ConflictRollback, true
	case string(KeywordAbort):
		return ConflictAbort, true
	case string(KeywordFail):
		return ConflictFail, true
	case string(KeywordIgnore):
		return ConflictIgnore, true
	case string(KeywordReplace):
		return ConflictReplace, true
	default:
		return ConflictNone, false
	}
}

// Conflict returns "ON CONFLICT <ACTION>". ConflictNone yields an empty clause.
func Conflict(action ConflictAction) Clause {
	kw, ok := conflictKeywords[action]
	if !ok {
		return Clause{kind: KindConflict}
	}
	return Compose(KindConflict, KeywordOnConflict.Join(kw), "", KeywordNone)
}
