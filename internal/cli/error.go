package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/hlop3z/osql/internal/alerr"
)

// layoutKeys are context keys FormatError places itself; the rest are listed
// as "key: value" under the location.
var layoutKeys = map[string]bool{
	"file": true, "line": true, "col": true,
	"source": true, "span_start": true, "span_end": true,
	"notes": true, "helps": true, "label": true,
}

// FormatError renders err for the terminal. The first *alerr.Error in the
// chain supplies code, location, source line and hints; other errors print
// as a single "error: ..." line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var ae *alerr.Error
	if !errors.As(err, &ae) {
		return labelled(Error("error"), err.Error())
	}
	return formatCoded(ae)
}

// diagnostic accumulates the lines of a rustc-style report. The gutter is
// the blank column left of the "|" bar, as wide as the source line number.
type diagnostic struct {
	strings.Builder
	gutter string
}

func (d *diagnostic) bar() {
	d.WriteString(d.gutter + Pipe() + "\n")
}

func (d *diagnostic) barText(text string) {
	d.WriteString(d.gutter + Pipe() + " " + text + "\n")
}

// formatCoded renders:
//
//	error[E2002]: unknown conflict resolution "abrot"
//	  --> schema/users.yaml:5:32
//	  |
//	5 |         unique: { on_conflict: abrot }
//	  |                                ^^^^^
//	  |
//	help: did you mean 'abort'?
func formatCoded(err *alerr.Error) string {
	ctx := err.GetContext()
	file, line, col, hasFile := err.Location()
	source, hasSource := ctx["source"].(string)

	d := &diagnostic{gutter: "   "}
	d.WriteString(Error("error") + "[" + Code(string(err.GetCode())) + "]: " + err.GetMessage() + "\n")
	if hasFile {
		d.WriteString("  " + Arrow() + " " + FilePath(location(file, line, col)) + "\n")
	}

	switch {
	case hasSource && line > 0:
		num := strconv.Itoa(line)
		d.gutter = strings.Repeat(" ", len(num)) + " "
		d.bar()
		d.WriteString(LineNum(num) + " " + Pipe() + " " + source + "\n")
		if caret := caretLine(ctx, col); caret != "" {
			d.barText(caret)
			d.bar()
		}
	case !hasSource:
		if details := contextDetails(ctx); len(details) > 0 {
			d.bar()
			for _, detail := range details {
				d.barText(detail)
			}
		}
	}

	for _, note := range err.Notes() {
		d.bar()
		d.WriteString(labelled(Note("note"), note))
	}
	for _, help := range err.Helps() {
		d.WriteString(labelled(Help("help"), help))
	}
	if cause := err.GetCause(); cause != nil {
		d.bar()
		d.WriteString(labelled(Note("cause"), cause.Error()))
	}
	return d.String()
}

// caretLine underlines span_start..span_end, or the single column col, and
// appends the label. It returns "" when no position is known.
func caretLine(ctx map[string]any, col int) string {
	start, _ := ctx["span_start"].(int)
	end, _ := ctx["span_end"].(int)
	if start == 0 && end == 0 && col <= 0 {
		return ""
	}
	if start == 0 {
		start = col
	}
	start = max(start, 1)
	end = max(end, start)

	caret := strings.Repeat(" ", start-1) + Pointer(strings.Repeat("^", end-start+1))
	if label, _ := ctx["label"].(string); label != "" {
		caret += " " + label
	}
	return caret
}

// contextDetails lists the context not placed by the layout, sorted by key.
func contextDetails(ctx map[string]any) []string {
	var details []string
	for _, k := range slices.Sorted(maps.Keys(ctx)) {
		if !layoutKeys[k] {
			details = append(details, fmt.Sprintf("%s: %v", k, ctx[k]))
		}
	}
	return details
}

// location renders file[:line[:col]], dropping unknown positions.
func location(file string, line, col int) string {
	switch {
	case line <= 0:
		return file
	case col <= 0:
		return fmt.Sprintf("%s:%d", file, line)
	default:
		return fmt.Sprintf("%s:%d:%d", file, line, col)
	}
}

func labelled(label, msg string) string {
	return label + ": " + msg + "\n"
}

func FormatWarning(msg string) string { return labelled(Warning("warning"), msg) }
func FormatNote(msg string) string    { return labelled(Note("note"), msg) }
func FormatHelp(msg string) string    { return labelled(Help("help"), msg) }
func FormatSuccess(msg string) string { return labelled(Success("success"), msg) }
