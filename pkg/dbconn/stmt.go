package dbconn

import (
	"context"
	"database/sql"
	"errors"

	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hlop3z/osql/internal/alerr"
)

// Stmt is a compiled statement owned by a Conn.
type Stmt struct {
	conn    *Conn
	stmt    *sql.Stmt
	query   string
	lastErr error
	done    bool
}

// Prepare compiles query. The statement stays registered with c until it is
// finalized; Close finalizes any that are still open.
func (c *Conn) Prepare(ctx context.Context, query string) (*Stmt, error) {
	if err := c.usable(ctx); err != nil {
		return nil, err
	}
	st, err := c.conn.PrepareContext(ctx, query)
	c.lastErr = err
	if err != nil {
		return nil, alerr.WrapSQL(alerr.ErrPrepare, err, query)
	}
	s := &Stmt{conn: c, stmt: st, query: query}
	c.stmts[s] = struct{}{}
	return s, nil
}

// Step executes the statement once to completion with the given bindings and
// returns SQLITE_DONE. The statement may be stepped again. On a finalized
// statement or closed Conn it returns SQLITE_MISUSE with ErrClosed.
func (s *Stmt) Step(ctx context.Context, args ...any) (int, error) {
	if err := s.usable(ctx); err != nil {
		return Code(err), err
	}
	_, err := s.stmt.ExecContext(ctx, args...)
	s.record(err)
	if err != nil {
		return Code(err), alerr.WrapSQL(alerr.ErrStep, err, s.query)
	}
	return sqlite3.SQLITE_DONE, nil
}

// Query executes the statement and returns its rows.
func (s *Stmt) Query(ctx context.Context, args ...any) (*sql.Rows, error) {
	if err := s.usable(ctx); err != nil {
		return nil, err
	}
	rows, err := s.stmt.QueryContext(ctx, args...)
	s.record(err)
	if err != nil {
		return nil, alerr.WrapSQL(alerr.ErrStep, err, s.query)
	}
	return rows, nil
}

// Finalize releases the statement. Calling it more than once is a no-op.
func (s *Stmt) Finalize() error {
	if s.done {
		return nil
	}
	err := s.finalize()
	if s.conn.stmts != nil {
		delete(s.conn.stmts, s)
	}
	return err
}

func (s *Stmt) finalize() error {
	s.done = true
	err := s.stmt.Close()
	s.record(err)
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return alerr.WrapSQL(alerr.ErrFinalize, err, s.query)
	}
	return nil
}

// usable fails with ErrClosed once s is finalized, otherwise as its Conn does.
// Either way the failure becomes the statement's last error.
func (s *Stmt) usable(ctx context.Context) error {
	if s.done {
		s.record(ErrClosed)
		return ErrClosed
	}
	err := s.conn.usable(ctx)
	s.lastErr = err
	return err
}

func (s *Stmt) record(err error) {
	s.lastErr = err
	s.conn.lastErr = err
}

// ErrCode returns the result code of the most recent operation on s.
func (s *Stmt) ErrCode() int {
	return Code(s.lastErr)
}

// SQL returns the statement text.
func (s *Stmt) SQL() string {
	return s.query
}

// Finalized reports whether the statement has been released.
func (s *Stmt) Finalized() bool {
	return s.done
}
