package osql

import (
	"context"
	"log/slog"
	"time"

	"github.com/hlop3z/osql/pkg/dbconn"
)

// Client renders schema files and applies or verifies them against one
// SQLite database.
//
// Create a client with New() and close it with Close() when done.
//
// Example:
//
//	client, err := osql.New(
//	    osql.WithDatabase("app.db"),
//	    osql.WithLimits(map[dbconn.LimitID]int{dbconn.LimitAttached: 2}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if _, err := client.Apply(ctx, []string{"schema/users.yaml"}); err != nil {
//	    log.Fatal(err)
//	}
type Client struct {
	conn   *dbconn.Conn
	config *Config
}

// New creates a new Client with the given options.
// Unless WithSchemaOnly is given it opens the database and applies the
// configured limits.
func New(opts ...Option) (*Client, error) {
	cfg := &Config{
		Mode:        dbconn.Create,
		Timeout:     30 * time.Second,
		Logger:      slog.Default(),
		ForeignKeys: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.SchemaOnly {
		return &Client{config: cfg}, nil
	}
	if cfg.Database == "" && cfg.Mode != dbconn.Memory {
		return nil, ErrMissingDatabase
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	connOpts := []dbconn.Option{dbconn.WithLogger(cfg.Logger)}
	if cfg.ForeignKeys {
		connOpts = append(connOpts, dbconn.WithForeignKeys())
	}
	if cfg.BusyTimeout > 0 {
		connOpts = append(connOpts, dbconn.WithBusyTimeout(int(cfg.BusyTimeout.Milliseconds())))
	}
	for _, p := range cfg.Pragmas {
		connOpts = append(connOpts, dbconn.WithPragma(p))
	}
	conn, err := dbconn.Open(ctx, cfg.Database, cfg.Mode, connOpts...)
	if err != nil {
		return nil, &ConnectionError{Path: cfg.Database, Mode: cfg.Mode, Cause: err}
	}

	for _, id := range dbconn.SortedLimitIDs(cfg.Limits) {
		if _, err := conn.SetLimit(ctx, id, cfg.Limits[id]); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return &Client{conn: conn, config: cfg}, nil
}

// Close closes the database connection. It is safe to call on a
// schema-only client and more than once.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Conn returns the underlying connection, or nil in schema-only mode.
func (c *Client) Conn() *dbconn.Conn {
	return c.conn
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return *c.config
}

// Limits returns the current value of every run-time limit.
func (c *Client) Limits(ctx context.Context) (map[dbconn.LimitID]int, error) {
	if c.conn == nil {
		return nil, ErrSchemaOnly
	}
	return c.conn.Limits(ctx)
}

// SetLimit changes one run-time limit and returns its previous value.
func (c *Client) SetLimit(ctx context.Context, id dbconn.LimitID, value int) (int, error) {
	if c.conn == nil {
		return 0, ErrSchemaOnly
	}
	return c.conn.SetLimit(ctx, id, value)
}
