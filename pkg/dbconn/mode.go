package dbconn

import (
	"net/url"
	"strings"

	"github.com/hlop3z/osql/internal/alerr"
)

// Mode selects how the database file is opened.
type Mode int

const (
	// ReadOnly opens an existing database for reading.
	ReadOnly Mode = iota
	// ReadWrite opens an existing database for reading and writing.
	ReadWrite
	// Create opens a database for reading and writing, creating it if needed.
	Create
	// Memory opens a private in-memory database.
	Memory
)

var modeNames = map[Mode]string{
	ReadOnly:  "ro",
	ReadWrite: "rw",
	Create:    "rwc",
	Memory:    "memory",
}

var modeAliases = map[string]Mode{
	"ro":         ReadOnly,
	"readonly":   ReadOnly,
	"read-only":  ReadOnly,
	"rw":         ReadWrite,
	"readwrite":  ReadWrite,
	"read-write": ReadWrite,
	"rwc":        Create,
	"create":     Create,
	"memory":     Memory,
	"mem":        Memory,
}

// String returns the URI mode parameter for m.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode maps "ro", "rw", "rwc", "memory" and their long forms to a Mode.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return ReadOnly, alerr.NewUnknownNameError(alerr.ErrInvalidMode, "open mode", s,
		[]string{"ro", "rw", "rwc", "memory"})
}

var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// DSN returns the driver data source name for opening path in mode m.
// Extra query parameters (such as _pragma) are appended in the order given.
//
//	Create.DSN("app.db")       == "file:app.db?mode=rwc"
//	Memory.DSN("")             == ":memory:"
//	Memory.DSN("shared")       == "file:shared?mode=memory&cache=shared"
//	ReadOnly.DSN("file:a.db")  == "file:a.db?mode=ro"
//
// A file: URI keeps its own mode parameter; Open rejects one that differs
// from m.
func (m Mode) DSN(path string, params ...string) string {
	var q []string
	var base string

	switch {
	case m == Memory && (path == "" || path == ":memory:"):
		base = ":memory:"
	case strings.HasPrefix(path, "file:"):
		base = path
		if _, ok := uriMode(path); !ok {
			q = append(q, "mode="+m.String())
		}
	case m == Memory:
		base = "file:" + uriPathEscaper.Replace(path)
		q = append(q, "mode=memory", "cache=shared")
	default:
		base = "file:" + uriPathEscaper.Replace(path)
		q = append(q, "mode="+m.String())
	}
	q = append(q, params...)

	if len(q) == 0 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + strings.Join(q, "&")
}

// uriMode returns the mode query parameter of a file: URI path.
func uriMode(path string) (string, bool) {
	if !strings.HasPrefix(path, "file:") {
		return "", false
	}
	_, rawQuery, ok := strings.Cut(path, "?")
	if !ok {
		return "", false
	}
	rawQuery, _, _ = strings.Cut(rawQuery, "#")
	values, err := url.ParseQuery(rawQuery)
	if err != nil || !values.Has("mode") {
		return "", false
	}
	return values.Get("mode"), true
}

// pragmaParam renders a PRAGMA as a driver _pragma query parameter.
func pragmaParam(pragma string) string {
	return "_pragma=" + url.QueryEscape(pragma)
}
