package alerr

import (
	"fmt"
	"strings"
)

// NewUnknownNameError reports a name that is not one of the accepted options,
// with a "did you mean" help when a close option exists.
// Example: NewUnknownNameError(ErrInvalidConflict, "conflict resolution", "abrot", opts)
func NewUnknownNameError(code Code, what, got string, options []string) *Error {
	e := Newf(code, "unknown %s %q", what, got).With("got", got)
	if hint := SuggestSimilar(got, options); hint != "" {
		e.WithHelp(hint)
	} else if len(options) > 0 {
		e.WithNote(fmt.Sprintf("expected one of: %s", strings.Join(options, ", ")))
	}
	return e
}
