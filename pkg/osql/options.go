package osql

import (
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/hlop3z/osql/pkg/dbconn"
)

// Config holds all configuration options for the Client.
type Config struct {
	// Database is the path of the SQLite database file.
	// It may be empty only in Memory mode.
	Database string

	// Mode is the open mode.
	// Default: dbconn.Create
	Mode dbconn.Mode

	// Limits are applied to the connection right after it opens.
	Limits map[dbconn.LimitID]int

	// Timeout bounds opening the database and applying limits.
	// Default: 30s
	Timeout time.Duration

	// Logger receives lifecycle events.
	// Default: slog.Default()
	Logger *slog.Logger

	// ForeignKeys enables foreign key enforcement.
	// Default: true
	ForeignKeys bool

	// BusyTimeout is how long the engine waits on a locked database.
	// Zero keeps the engine default.
	BusyTimeout time.Duration

	// Pragmas run on open, e.g. "journal_mode(WAL)".
	Pragmas []string

	// SchemaOnly skips the database connection. Render works; operations
	// that need a database return ErrSchemaOnly.
	SchemaOnly bool
}

// Option is a functional option for configuring the Client.
type Option func(*Config)

// WithDatabase sets the database path.
func WithDatabase(path string) Option {
	return func(c *Config) {
		c.Database = path
	}
}

// WithMode sets the open mode.
func WithMode(mode dbconn.Mode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithLimits sets run-time limits to apply on open. Later calls add to or
// override earlier ones.
func WithLimits(limits map[dbconn.LimitID]int) Option {
	return func(c *Config) {
		if c.Limits == nil {
			c.Limits = make(map[dbconn.LimitID]int, len(limits))
		}
		maps.Copy(c.Limits, limits)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithTimeout sets the timeout for opening the database.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithForeignKeys turns foreign key enforcement on or off.
func WithForeignKeys(on bool) Option {
	return func(c *Config) {
		c.ForeignKeys = on
	}
}

// WithBusyTimeout sets how long the engine waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.BusyTimeout = d
	}
}

// WithPragmas adds pragmas to run when the connection opens.
func WithPragmas(pragmas ...string) Option {
	return func(c *Config) {
		c.Pragmas = append(c.Pragmas, pragmas...)
	}
}

// WithSchemaOnly enables schema-only mode, which skips the database connection.
func WithSchemaOnly() Option {
	return func(c *Config) {
		c.SchemaOnly = true
	}
}

// ApplyConfig holds options for Apply.
type ApplyConfig struct {
	// DryRun writes the statements to Output instead of executing them.
	DryRun bool

	// Output receives dry-run SQL. Defaults to io.Discard if nil.
	Output io.Writer

	// Progress is told about each statement as it runs.
	Progress Progress
}

// Progress observes Apply one statement at a time.
type Progress interface {
	Start(index int)
	Complete()
	Failed()
}

// ApplyOption is a functional option for Apply.
type ApplyOption func(*ApplyConfig)

// DryRunTo enables dry-run mode and writes the statements to w.
func DryRunTo(w io.Writer) ApplyOption {
	return func(c *ApplyConfig) {
		c.DryRun = true
		c.Output = w
	}
}

// WithProgress reports each statement to p.
func WithProgress(p Progress) ApplyOption {
	return func(c *ApplyConfig) {
		c.Progress = p
	}
}

func applyApplyOptions(opts []ApplyOption) *ApplyConfig {
	cfg := &ApplyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}
	return cfg
}
