// Package osql is the public entry point for rendering schema files into
// SQLite DDL, applying it to a database and checking a database for drift.
package osql

import (
	"errors"
	"fmt"

	"github.com/hlop3z/osql/pkg/dbconn"
)

// Sentinel errors for common error conditions.
// Use errors.Is() to check for these errors.
var (
	// ErrMissingDatabase is returned when no database path is configured.
	ErrMissingDatabase = errors.New("osql: database path required")

	// ErrSchemaOnly is returned by operations that need a database when the
	// client was created with WithSchemaOnly.
	ErrSchemaOnly = errors.New("osql: client has no database connection")

	// ErrConnectionFailed is returned when the database cannot be opened.
	ErrConnectionFailed = errors.New("osql: connection failed")

	// ErrApplyFailed is returned when a statement fails during Apply.
	ErrApplyFailed = errors.New("osql: apply failed")
)

// ConnectionError provides detailed information about a failed open.
type ConnectionError struct {
	// Path is the database path.
	Path string

	// Mode is the open mode.
	Mode dbconn.Mode

	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted error message.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("osql: failed to open %q (mode %s): %v", e.Path, e.Mode, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnectionFailed
}

// ApplyError provides detailed information about a failed statement.
// The transaction has been rolled back when it is returned.
type ApplyError struct {
	// Table is the table whose statement failed.
	Table string

	// SQL is the statement that failed.
	SQL string

	// Code is the engine result code.
	Code int

	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted error message.
func (e *ApplyError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("osql: %s failed (%s): %v", e.SQL, dbconn.CodeName(e.Code), e.Cause)
	}
	return fmt.Sprintf("osql: creating table %s failed (%s): %v", e.Table, dbconn.CodeName(e.Code), e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ApplyError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
func (e *ApplyError) Is(target error) bool {
	return target == ErrApplyFailed
}
