// Package alerr defines the coded errors used across osql. Codes are stable
// (E{category}{number}) so callers and tests can match on them.
package alerr

import (
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
)

// Code represents a stable, machine-readable error code.
// Format: E{category}{number} where category is 1-9 and number is 001-999.
type Code string

// Error codes organized by category.
const (
	// Schema file errors (E1xxx) - problems reading or decoding schema files
	ErrSchemaInvalid   Code = "E1001" // Schema file is malformed or invalid
	ErrSchemaNotFound  Code = "E1002" // Schema file does not exist
	ErrSchemaDuplicate Code = "E1003" // Table or column defined twice

	// Validation errors (E2xxx) - problems with user input validation
	ErrInvalidIdentifier Code = "E2001" // Table or column name is missing or malformed
	ErrInvalidConflict   Code = "E2002" // Unknown ON CONFLICT resolution
	ErrInvalidAction     Code = "E2003" // Unknown ON DELETE / ON UPDATE action
	ErrInvalidOrder      Code = "E2004" // Unknown primary key or ordering direction
	ErrInvalidType       Code = "E2005" // Type name or arguments are not usable
	ErrInvalidLimit      Code = "E2006" // Unknown limit category or bad value
	ErrInvalidMode       Code = "E2007" // Unknown open mode
	ErrInvalidReference  Code = "E2008" // Foreign key reference is incomplete
	ErrReservedWord      Code = "E2009" // Identifier is an SQL keyword

	// Engine errors (E4xxx) - problems reported by the database engine
	ErrOpen     Code = "E4001" // Database could not be opened
	ErrClose    Code = "E4002" // Database could not be closed
	ErrPrepare  Code = "E4003" // Statement failed to compile
	ErrStep     Code = "E4004" // Statement failed to execute
	ErrFinalize Code = "E4005" // Statement could not be released
	ErrLimit    Code = "E4006" // Limit could not be read or changed
	ErrExec     Code = "E4007" // Statement batch failed
	ErrTx       Code = "E4008" // Transaction operation failed
	ErrInspect  Code = "E4009" // Catalogue could not be read

	// Configuration errors (E5xxx) - problems with config files and flags
	ErrConfigInvalid  Code = "E5001" // Config file is malformed
	ErrConfigNotFound Code = "E5002" // Explicit config file does not exist

	// Drift errors (E6xxx) - database does not match the schema files
	ErrDrift Code = "E6001" // Live schema differs from the schema files

	// Internal errors (E9xxx) - unexpected internal errors
	EInternalError Code = "E9001" // Internal error
)

// Error is a coded error with structured context. Context keys drive the
// rustc-style rendering in internal/cli (file, line, col, source, notes, helps).
type Error struct {
	code    Code
	message string
	context map[string]any
	cause   error
	stack   string
}

// Error renders the code, message, context sorted by key and the cause:
//
//	[E2002] unknown conflict resolution "explode"
//	  column: email
//	  table: users
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.code, e.message)
	for _, k := range slices.Sorted(maps.Keys(e.context)) {
		fmt.Fprintf(&b, "\n  %s: %v", k, e.context[k])
	}
	if e.cause != nil {
		fmt.Fprintf(&b, "\n  cause: %v", e.cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error with the same code, so errors.Is(err, alerr.New(code, ""))
// finds a code anywhere in the chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

func (e *Error) GetCode() Code              { return e.code }
func (e *Error) GetMessage() string         { return e.message }
func (e *Error) SetMessage(msg string)      { e.message = msg }
func (e *Error) GetContext() map[string]any { return e.context }
func (e *Error) GetCause() error            { return e.cause }
func (e *Error) GetStack() string           { return e.stack }

// With sets a context value and returns e for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// Without removes a context key.
func (e *Error) Without(key string) *Error {
	delete(e.context, key)
	return e
}

func (e *Error) WithTable(table string) *Error { return e.With("table", table) }
func (e *Error) WithColumn(name string) *Error { return e.With("column", name) }
func (e *Error) WithSQL(sql string) *Error     { return e.With("sql", sql) }

// WithFile records the file and, when positive, the line.
func (e *Error) WithFile(path string, line int) *Error {
	return e.WithLocation(path, line, 0)
}

// WithLocation records file, line and column; non-positive positions are left out.
func (e *Error) WithLocation(file string, line, col int) *Error {
	e.With("file", file)
	if line > 0 {
		e.With("line", line)
	}
	if col > 0 {
		e.With("col", col)
	}
	return e
}

// WithSource attaches the offending source line.
func (e *Error) WithSource(source string) *Error { return e.With("source", source) }

// WithSpan marks the columns to underline in the source line.
func (e *Error) WithSpan(start, end int) *Error {
	return e.With("span_start", start).With("span_end", end)
}

// WithLabel sets the text printed under the span.
func (e *Error) WithLabel(label string) *Error { return e.With("label", label) }

// WithNote appends a "note:" line.
func (e *Error) WithNote(note string) *Error { return e.appendText("notes", note) }

// WithHelp appends a "help:" line.
func (e *Error) WithHelp(help string) *Error { return e.appendText("helps", help) }

func (e *Error) appendText(key, text string) *Error {
	list, _ := e.context[key].([]string)
	return e.With(key, append(list, text))
}

// Location returns the recorded file position; ok is false without a file.
func (e *Error) Location() (file string, line, col int, ok bool) {
	file, _ = e.context["file"].(string)
	line, _ = e.context["line"].(int)
	col, _ = e.context["col"].(int)
	return file, line, col, file != ""
}

func (e *Error) Notes() []string {
	notes, _ := e.context["notes"].([]string)
	return notes
}

func (e *Error) Helps() []string {
	helps, _ := e.context["helps"].([]string)
	return helps
}

// captureStack formats up to 32 caller frames, skipping runtime internals.
func captureStack(skip int) string {
	var pcs [32]uintptr
	frames := runtime.CallersFrames(pcs[:runtime.Callers(skip, pcs[:])])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			return b.String()
		}
	}
}

// newError skips runtime.Callers, captureStack, newError and the exported
// constructor so the stack starts at the caller.
func newError(code Code, msg string, cause error) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		cause:   cause,
		stack:   captureStack(4),
	}
}

func New(code Code, msg string) *Error {
	return newError(code, msg, nil)
}

func Newf(code Code, format string, args ...any) *Error {
	return newError(code, fmt.Sprintf(format, args...), nil)
}

// Wrap keeps err as the cause; a nil err behaves like New.
func Wrap(code Code, err error, msg string) *Error {
	return newError(code, msg, err)
}

func Wrapf(code Code, err error, format string, args ...any) *Error {
	return newError(code, fmt.Sprintf(format, args...), err)
}

// WrapSQL wraps err with the statement that failed.
func WrapSQL(code Code, err error, sql string) *Error {
	return newError(code, "failed to run statement", err).WithSQL(sql)
}

// GetErrorCode returns the code of the outermost *Error in the chain, or "".
func GetErrorCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return GetErrorCode(err) == code
}

// HasCode reports whether err's chain holds any coded error.
func HasCode(err error) bool {
	return GetErrorCode(err) != ""
}
