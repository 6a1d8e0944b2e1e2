package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// Table renders rows under a header with columns padded to the widest cell.
// Widths are display widths, so styled or non-ASCII cells still line up.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

func NewTable(headers ...string) *Table {
	t := &Table{headers: headers, widths: make([]int, len(headers))}
	t.measure(headers)
	return t
}

// AddRow appends a row. Missing cells render blank; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.measure(row)
	t.rows = append(t.rows, row)
}

func (t *Table) measure(cells []string) {
	for i, c := range cells {
		t.widths[i] = max(t.widths[i], lipgloss.Width(c))
	}
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}

	rules := make([]string, len(t.widths))
	for i, w := range t.widths {
		rules[i] = strings.Repeat("─", w)
	}

	var b strings.Builder
	b.WriteString(Header(t.line(t.headers)) + "\n")
	b.WriteString(Dim(strings.Join(rules, columnGap)) + "\n")
	for _, row := range t.rows {
		b.WriteString(t.line(row) + "\n")
	}
	return b.String()
}

// line pads each cell to its column and trims the trailing blanks.
func (t *Table) line(cells []string) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", t.widths[i]-lipgloss.Width(c))
	}
	return strings.TrimRight(strings.Join(padded, columnGap), " ")
}

// List renders one marked item per line, indented by two spaces.
type List struct {
	lines []string
}

func NewList() *List { return &List{} }

func (l *List) add(marker string, content string) {
	l.lines = append(l.lines, "  "+marker+" "+content+"\n")
}

func (l *List) Add(content string)        { l.add("•", content) }
func (l *List) AddSuccess(content string) { l.add(Success("✓"), content) }
func (l *List) AddError(content string)   { l.add(Failed("✗"), content) }
func (l *List) AddWarning(content string) { l.add(Warning("!"), content) }
func (l *List) AddInfo(content string)    { l.add(Info("→"), content) }

func (l *List) String() string { return strings.Join(l.lines, "") }

// Section prints title over a rule of the same width, followed by content.
func Section(title string, content string) string {
	return Header(title) + "\n" + Dim(strings.Repeat("─", lipgloss.Width(title))) + "\n" + content
}

// FormatKeyValue renders "key: value" with a dimmed key.
func FormatKeyValue(key, value string) string {
	return Dim(key) + ": " + value
}

// FormatCount renders "1 table" or "3 tables".
func FormatCount(count int, singular, plural string) string {
	noun := plural
	if count == 1 {
		noun = singular
	}
	return fmt.Sprintf("%d %s", count, noun)
}
