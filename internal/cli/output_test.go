package cli

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	tbl := NewTable("LIMIT", "VALUE")
	tbl.AddRow("length", "1000000000")
	tbl.AddRow("column")
	tbl.AddRow("attached", "10", "ignored")

	want := strings.Join([]string{
		"LIMIT     VALUE",
		"────────  ──────────",
		"length    1000000000",
		"column",
		"attached  10",
		"",
	}, "\n")
	if got := tbl.String(); got != want {
		t.Errorf("Table.String() =\n%s\nwant:\n%s", got, want)
	}
	if tbl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tbl.Len())
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable().String(); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}

func TestList(t *testing.T) {
	l := NewList()
	l.Add("plain")
	l.AddSuccess("ok")
	l.AddError("bad")
	l.AddWarning("careful")
	l.AddInfo("fyi")

	want := "  • plain\n  ✓ ok\n  ✗ bad\n  ! careful\n  → fyi\n"
	if got := l.String(); got != want {
		t.Errorf("List.String() = %q, want %q", got, want)
	}
}

func TestSection(t *testing.T) {
	got := Section("Limits", "body\n")
	if got != "Limits\n──────\nbody\n" {
		t.Errorf("Section() = %q", got)
	}
}

func TestFormatKeyValue(t *testing.T) {
	if got := FormatKeyValue("mode", "rwc"); got != "mode: rwc" {
		t.Errorf("FormatKeyValue() = %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 tables"},
		{1, "1 table"},
		{2, "2 tables"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.n, "table", "tables"); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
