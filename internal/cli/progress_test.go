package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTaskProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewTaskProgress(&buf, []string{"users", "posts"})
	p.now = fakeClock(2 * time.Millisecond)

	p.Start(0)
	p.Complete()
	p.Start(1)
	p.Failed()
	p.Summary()

	out := buf.String()
	checks := []string{
		"  [1/2] users " + strings.Repeat(".", 35) + " done (2ms)\n",
		"  [2/2] posts " + strings.Repeat(".", 35) + " failed (2ms)\n",
		"Completed 2 tasks in 4ms\n",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("progress output missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestDotsMinimum(t *testing.T) {
	if got := dots(strings.Repeat("x", 60)); got != "..." {
		t.Errorf("dots() = %q, want %q", got, "...")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{15 * time.Millisecond, "15ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
