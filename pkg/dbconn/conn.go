// Package dbconn wraps one embedded SQLite database handle: opening it in a
// chosen mode, reading and adjusting its run-time limits, compiling and
// stepping statements and closing it with every outstanding statement released.
//
// A Conn pins a single engine connection. It performs no internal locking;
// drive it from one goroutine at a time.
package dbconn

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"slices"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hlop3z/osql/internal/alerr"
)

// ErrClosed is returned by operations on a closed Conn or Stmt.
var ErrClosed = errors.New("dbconn: use of closed connection")

// Conn is an open database connection.
type Conn struct {
	db      *sql.DB
	conn    *sql.Conn
	path    string
	mode    Mode
	logger  *slog.Logger
	stmts   map[*Stmt]struct{}
	lastErr error
	closed  bool
}

// Open opens the database at path in the given mode.
// Open fails when ReadOnly or ReadWrite is asked for a file that does not exist.
// A file: URI path gets mode appended unless it already names the same mode.
func Open(ctx context.Context, path string, mode Mode, opts ...Option) (*Conn, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if _, ok := modeNames[mode]; !ok {
		return nil, alerr.Newf(alerr.ErrInvalidMode, "unknown open mode %d", int(mode))
	}
	if uri, ok := uriMode(path); ok && uri != mode.String() {
		return nil, alerr.Newf(alerr.ErrInvalidMode, "uri mode %q conflicts with open mode %q", uri, mode.String()).
			With("path", path)
	}

	dsn := mode.DSN(path, cfg.params()...)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, openError(err, path, mode)
	}
	// One pooled connection keeps limits, pragmas and in-memory data on a single handle.
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, openError(err, path, mode)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, openError(err, path, mode)
	}

	c := &Conn{
		db:     db,
		conn:   conn,
		path:   path,
		mode:   mode,
		logger: cfg.logger,
		stmts:  make(map[*Stmt]struct{}),
	}
	c.logger.Debug("database opened", "path", path, "mode", mode.String())
	return c, nil
}

// OpenMemory opens a private in-memory database.
func OpenMemory(ctx context.Context, opts ...Option) (*Conn, error) {
	return Open(ctx, "", Memory, opts...)
}

func openError(err error, path string, mode Mode) error {
	return alerr.Wrap(alerr.ErrOpen, err, "failed to open database").
		With("path", path).
		With("mode", mode.String())
}

// Path returns the path the connection was opened with.
func (c *Conn) Path() string { return c.path }

// Mode returns the open mode.
func (c *Conn) Mode() Mode { return c.mode }

// DB returns the underlying pool. It holds exactly one connection, which c
// keeps checked out until Close; use the Conn methods instead.
func (c *Conn) DB() *sql.DB { return c.db }

// Raw returns the pinned connection for use with database/sql helpers.
func (c *Conn) Raw() *sql.Conn { return c.conn }

// Close finalizes every outstanding statement, then releases the engine handle.
// Calling Close more than once is a no-op.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if n := len(c.stmts); n > 0 {
		queries := make([]string, 0, n)
		for st := range c.stmts {
			queries = append(queries, st.query)
		}
		slices.Sort(queries)
		c.logger.Warn("finalizing statements left open at close", "count", n, "sql", queries)
	}

	var errs []error
	for st := range c.stmts {
		if err := st.finalize(); err != nil {
			errs = append(errs, err)
		}
	}
	c.stmts = nil

	if err := c.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		errs = append(errs, err)
	}
	if err := c.db.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		c.lastErr = err
		return alerr.Wrap(alerr.ErrClose, err, "failed to close database").With("path", c.path)
	}
	c.logger.Debug("database closed", "path", c.path)
	return nil
}

// ErrCode returns the result code of the most recent operation on c,
// SQLITE_OK if it succeeded.
func (c *Conn) ErrCode() int {
	return Code(c.lastErr)
}

// ErrMsg returns the message of the most recent operation on c,
// "not an error" if it succeeded.
func (c *Conn) ErrMsg() string {
	return Message(c.lastErr)
}

// Exec runs a statement (or a batch of them) that returns no rows.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if err := c.usable(ctx); err != nil {
		return nil, err
	}
	res, err := c.conn.ExecContext(ctx, query, args...)
	c.lastErr = err
	if err != nil {
		return nil, alerr.WrapSQL(alerr.ErrExec, err, query)
	}
	return res, nil
}

// QueryContext runs a query on the pinned connection.
func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if err := c.usable(ctx); err != nil {
		return nil, err
	}
	rows, err := c.conn.QueryContext(ctx, query, args...)
	c.lastErr = err
	if err != nil {
		return nil, alerr.WrapSQL(alerr.ErrStep, err, query)
	}
	return rows, nil
}

// ExecContext is Exec under the name database/sql helpers expect.
func (c *Conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.Exec(ctx, query, args...)
}

// usable records the failure as the last error so ErrCode reports it.
func (c *Conn) usable(ctx context.Context) error {
	err := ctx.Err()
	if c.closed {
		err = ErrClosed
	}
	if err != nil {
		c.lastErr = err
	}
	return err
}

// -----------------------------------------------------------------------------
// Result codes
// -----------------------------------------------------------------------------

// Code returns the engine result code carried by err: SQLITE_OK for nil,
// SQLITE_MISUSE for ErrClosed, SQLITE_INTERRUPT for a canceled or expired
// context and SQLITE_ERROR for anything else that did not come from the
// engine. Extended codes are returned as the engine reported them.
func Code(err error) int {
	if err == nil {
		return sqlite3.SQLITE_OK
	}
	var se *sqlite.Error
	switch {
	case errors.As(err, &se):
		return se.Code()
	case errors.Is(err, ErrClosed):
		return sqlite3.SQLITE_MISUSE
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return sqlite3.SQLITE_INTERRUPT
	}
	return sqlite3.SQLITE_ERROR
}

// PrimaryCode returns the primary result code of err, stripping any extended bits.
// Example: SQLITE_CONSTRAINT_UNIQUE (2067) -> SQLITE_CONSTRAINT (19)
func PrimaryCode(err error) int {
	return Code(err) & 0xff
}

// Message returns the engine message for err, "not an error" for nil.
func Message(err error) string {
	if err == nil {
		return "not an error"
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}

// CodeName returns the engine's description of a result code.
func CodeName(code int) string {
	if code == sqlite3.SQLITE_OK {
		return "not an error (SQLITE_OK)"
	}
	if s, ok := sqlite.ErrorCodeString[code]; ok {
		return s
	}
	if s, ok := sqlite.ErrorCodeString[code&0xff]; ok {
		return s
	}
	return "unknown result code"
}
