package dbconn

import (
	"log/slog"
	"strconv"
)

// Option configures Open.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	foreignKeys bool
	busyTimeout int
	pragmas     []string
}

func defaultConfig() *config {
	return &config{logger: slog.Default()}
}

// WithLogger sets the logger used for lifecycle events.
// Default: slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithForeignKeys turns on foreign key enforcement for the connection.
func WithForeignKeys() Option {
	return func(c *config) {
		c.foreignKeys = true
	}
}

// WithBusyTimeout sets how long, in milliseconds, the engine waits on a locked
// database before returning SQLITE_BUSY.
func WithBusyTimeout(ms int) Option {
	return func(c *config) {
		c.busyTimeout = ms
	}
}

// WithPragma runs "PRAGMA <pragma>" when the connection opens.
// Example: WithPragma("journal_mode(WAL)")
func WithPragma(pragma string) Option {
	return func(c *config) {
		c.pragmas = append(c.pragmas, pragma)
	}
}

func (c *config) params() []string {
	var ps []string
	if c.busyTimeout > 0 {
		ps = append(ps, pragmaParam("busy_timeout("+strconv.Itoa(c.busyTimeout)+")"))
	}
	if c.foreignKeys {
		ps = append(ps, pragmaParam("foreign_keys(1)"))
	}
	for _, p := range c.pragmas {
		ps = append(ps, pragmaParam(p))
	}
	return ps
}
