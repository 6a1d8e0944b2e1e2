package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/cli"
	"github.com/hlop3z/osql/pkg/dbconn"
	"github.com/hlop3z/osql/pkg/osql"
)

const (
	defaultConfigFile = "osql.yaml"
	envDatabase       = "OSQL_DATABASE"
)

// Config represents the osql.yaml configuration file.
type Config struct {
	Database    string         `yaml:"database"`
	Mode        string         `yaml:"mode"`
	LogLevel    string         `yaml:"log_level"`
	BusyTimeout time.Duration  `yaml:"busy_timeout"`
	Pragmas     []string       `yaml:"pragmas"`
	Limits      map[string]int `yaml:"limits"`
}

// loadConfig loads configuration from file, env vars, and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults
func (a *app) loadConfig() (*Config, error) {
	cfg := &Config{
		Mode:     dbconn.Create.String(),
		LogLevel: "warn",
	}

	data, err := os.ReadFile(a.configFile)
	switch {
	case err == nil:
		if err := decodeConfig(data, cfg); err != nil {
			return nil, alerr.Wrap(alerr.ErrConfigInvalid, err, "failed to parse config file").
				WithFile(a.configFile, yamlLine(err))
		}
		// Handle env var interpolation in database
		cfg.Database = expandEnvVars(cfg.Database)
	case errors.Is(err, os.ErrNotExist):
		if a.configFile != defaultConfigFile {
			return nil, alerr.Wrap(alerr.ErrConfigNotFound, err, "config file not found").
				WithFile(a.configFile, 0).
				WithHelp("omit --config to run without a config file")
		}
	default:
		return nil, alerr.Wrap(alerr.ErrConfigInvalid, err, "failed to read config file").WithFile(a.configFile, 0)
	}

	// Override with env vars
	if env := a.getenv(envDatabase); env != "" {
		cfg.Database = env
	}

	// Override with CLI flags (highest priority)
	if a.database != "" {
		cfg.Database = a.database
	}
	if a.mode != "" {
		cfg.Mode = a.mode
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// yamlLine extracts the first line number from a yaml.v3 error, or 0.
func yamlLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}

// expandEnvVars expands ${VAR} patterns in a string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

// parseLevel maps a level name to a slog.Level.
func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, alerr.Newf(alerr.ErrConfigInvalid, "unknown log level %q", s).
			WithHelp("use debug, info, warn or error")
	}
	return lvl, nil
}

// options turns the config into client options.
func (c *Config) options() ([]osql.Option, error) {
	mode, err := dbconn.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	limits := make(map[dbconn.LimitID]int, len(c.Limits))
	for name, v := range c.Limits {
		id, err := dbconn.ParseLimit(name)
		if err != nil {
			return nil, err
		}
		limits[id] = v
	}

	opts := []osql.Option{
		osql.WithDatabase(c.Database),
		osql.WithMode(mode),
	}
	if len(limits) > 0 {
		opts = append(opts, osql.WithLimits(limits))
	}
	if c.BusyTimeout > 0 {
		opts = append(opts, osql.WithBusyTimeout(c.BusyTimeout))
	}
	if len(c.Pragmas) > 0 {
		opts = append(opts, osql.WithPragmas(c.Pragmas...))
	}
	return opts, nil
}

// setup loads the config and installs the logger.
func (a *app) setup() (*Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	lvl, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: lvl}))
	cli.SetDefault(cli.Detect(a.stdout, a.getenv))
	return cfg, nil
}

// newClient creates a client connected to the configured database.
func (a *app) newClient() (*osql.Client, error) {
	cfg, err := a.setup()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	client, err := osql.New(append(opts, osql.WithLogger(a.logger))...)
	if errors.Is(err, osql.ErrMissingDatabase) {
		return nil, alerr.Wrap(alerr.ErrConfigInvalid, err, "no database configured").
			WithHelp("pass --database, set " + envDatabase + " or add 'database:' to " + defaultConfigFile)
	}
	return client, err
}

// newSchemaOnlyClient creates a client that only reads schema files.
// It does not require a database connection.
func (a *app) newSchemaOnlyClient() (*osql.Client, error) {
	if _, err := a.setup(); err != nil {
		return nil, err
	}
	return osql.New(osql.WithSchemaOnly(), osql.WithLogger(a.logger))
}
