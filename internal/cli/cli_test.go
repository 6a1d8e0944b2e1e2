package cli

import (
	"bytes"
	"io"
	"os"
	"testing"
)

func init() {
	// Force plain mode in tests so style functions return raw text (no ANSI codes).
	SetDefault(&Config{Mode: ModePlain})
}

func TestOutputMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		tty   bool
		plain bool
	}{
		{"ModeTTY", ModeTTY, true, false},
		{"ModePlain", ModePlain, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsTTY(); got != tt.tty {
				t.Errorf("IsTTY() = %v, want %v", got, tt.tty)
			}
			if got := cfg.IsPlain(); got != tt.plain {
				t.Errorf("IsPlain() = %v, want %v", got, tt.plain)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}
	if cfg.Writer == nil {
		t.Error("Writer should not be nil")
	}
}

func TestDetect(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name string
		w    io.Writer
		env  map[string]string
	}{
		{"regular file", f, nil},
		{"no_color", f, map[string]string{"NO_COLOR": "1"}},
		{"dumb_term", f, map[string]string{"TERM": "dumb"}},
		{"buffer", &bytes.Buffer{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Detect(tt.w, func(k string) string { return tt.env[k] })
			// Neither a regular file nor a buffer is a terminal.
			if !cfg.IsPlain() {
				t.Errorf("Detect() mode = %v, want ModePlain", cfg.Mode)
			}
			if cfg.Writer != tt.w {
				t.Error("Detect() should keep the given writer")
			}
		})
	}
}

func TestSetDefault(t *testing.T) {
	original := defaultCfg
	defer func() { defaultCfg = original }()

	SetDefault(&Config{Mode: ModeTTY})
	if !EnableColors() {
		t.Error("EnableColors() = false with ModeTTY default")
	}
	SetDefault(&Config{Mode: ModePlain})
	if EnableColors() {
		t.Error("EnableColors() = true with ModePlain default")
	}
}

func TestDefaultLazyInit(t *testing.T) {
	original := defaultCfg
	defer func() { defaultCfg = original }()

	defaultCfg = nil
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
	if Default() != defaultCfg {
		t.Error("Default() should cache the detected config")
	}
}
