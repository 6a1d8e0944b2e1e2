// Package cli provides rustc-style terminal output for osql: colored
// diagnostics for coded errors, aligned tables, lists and step progress.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// OutputMode selects colored or plain rendering.
type OutputMode int

const (
	ModeTTY OutputMode = iota
	ModePlain
)

// Config is the output configuration the style helpers consult.
type Config struct {
	Mode   OutputMode
	Writer io.Writer
}

// fder is implemented by *os.File and other terminal-backed writers.
type fder interface {
	Fd() uintptr
}

// DefaultConfig detects the mode for os.Stdout from the process environment.
func DefaultConfig() *Config {
	return Detect(os.Stdout, os.Getenv)
}

// Detect picks ModeTTY only when w is a terminal and neither NO_COLOR
// (https://no-color.org/) nor TERM=dumb is set. Writers without a file
// descriptor, such as buffers, are always plain.
func Detect(w io.Writer, getenv func(string) string) *Config {
	cfg := &Config{Mode: ModePlain, Writer: w}
	if getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return cfg
	}
	if f, ok := w.(fder); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		cfg.Mode = ModeTTY
	}
	return cfg
}

func (c *Config) IsTTY() bool   { return c.Mode == ModeTTY }
func (c *Config) IsPlain() bool { return c.Mode == ModePlain }

// defaultCfg is detected on first use unless SetDefault ran earlier.
var defaultCfg *Config

// Default returns the process-wide configuration.
func Default() *Config {
	if defaultCfg == nil {
		defaultCfg = DefaultConfig()
	}
	return defaultCfg
}

// SetDefault replaces the process-wide configuration.
func SetDefault(cfg *Config) {
	defaultCfg = cfg
}

// EnableColors reports whether the style helpers emit ANSI sequences.
func EnableColors() bool {
	return Default().IsTTY()
}
