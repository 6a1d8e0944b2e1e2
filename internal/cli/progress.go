package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TaskProgress prints step-by-step progress for a known list of tasks:
//
//	[1/3] users ........................... done (2ms)
type TaskProgress struct {
	tasks   []string
	current int
	writer  io.Writer
	times   []time.Duration
	start   time.Time
	now     func() time.Time
}

// NewTaskProgress creates a progress tracker writing to w.
func NewTaskProgress(w io.Writer, tasks []string) *TaskProgress {
	return &TaskProgress{
		tasks:  tasks,
		writer: w,
		times:  make([]time.Duration, len(tasks)),
		now:    time.Now,
	}
}

// Start starts tracking the task at index.
func (t *TaskProgress) Start(index int) {
	t.current = index
	t.start = t.now()
	fmt.Fprintf(t.writer, "  [%d/%d] %s ", index+1, len(t.tasks), t.tasks[index])
}

// Complete marks the current task as complete.
func (t *TaskProgress) Complete() {
	t.finish(Done("done"))
}

// Failed marks the current task as failed.
func (t *TaskProgress) Failed() {
	t.finish(Failed("failed"))
}

func (t *TaskProgress) finish(status string) {
	elapsed := t.now().Sub(t.start)
	t.times[t.current] = elapsed
	fmt.Fprintf(t.writer, "%s %s (%s)\n", dots(t.tasks[t.current]), status, formatDuration(elapsed))
}

// Summary prints the task count and total time.
func (t *TaskProgress) Summary() {
	var total time.Duration
	for _, d := range t.times {
		total += d
	}
	fmt.Fprintf(t.writer, "\nCompleted %s in %s\n", FormatCount(len(t.tasks), "task", "tasks"), formatDuration(total))
}

// dots pads a task name to a fixed column with a dot leader.
func dots(task string) string {
	n := 40 - len(task)
	if n < 3 {
		n = 3
	}
	return Dim(strings.Repeat(".", n))
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
