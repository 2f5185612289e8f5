// Package cli holds the terminal presentation helpers used by the todo commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jacksmith/todo/internal/model"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// colorEnabled is set from terminal detection on stdout.
var colorEnabled = IsTerminal(os.Stdout)

// SetColorEnabled overrides terminal detection.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled reports whether ANSI colors are written.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s in green when colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s in red when colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Gray returns s in gray when colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// DefaultMaxTitleWidth caps the title column in task tables.
const DefaultMaxTitleWidth = 60

// Table lays out rows in space-padded columns.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{maxWidths: make(map[int]int)}
}

// SetMaxWidth truncates column col to maxWidth visible characters.
func (t *Table) SetMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// AddRow appends a row.
func (t *Table) AddRow(cols ...string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		w := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok && w > maxW {
			w = maxW
		}
		t.colWidths[i] = max(t.colWidths[i], w)
	}
	t.rows = append(t.rows, cols)
}

// Render writes the table to w, separating columns by two spaces.
// The last column is never padded.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		parts := make([]string, len(row))
		for i, col := range row {
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			if i < len(row)-1 {
				col += strings.Repeat(" ", t.colWidths[i]-visibleWidth(col))
			}
			parts[i] = col
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

// Truncate shortens s to maxWidth visible characters, ending in "..." when
// there is room for it. ANSI sequences are kept and closed with a reset.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "..."
	limit := maxWidth
	if maxWidth > len(ellipsis) {
		limit = maxWidth - len(ellipsis)
	}

	var b strings.Builder
	visible := 0
	inEscape, hasANSI := false, false
scan:
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape, hasANSI = true, true
		case inEscape:
			inEscape = r != 'm'
		case visible >= limit:
			break scan
		default:
			visible++
		}
		b.WriteRune(r)
	}

	if maxWidth > len(ellipsis) {
		b.WriteString(ellipsis)
	}
	if hasANSI {
		b.WriteString(colorReset)
	}
	return b.String()
}

// visibleWidth counts runes outside ANSI escape sequences.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			inEscape = r != 'm'
		default:
			width++
		}
	}
	return width
}

// Checkbox renders a completion flag.
func Checkbox(completed bool) string {
	if completed {
		return Green("[x]")
	}
	return "[ ]"
}

// RenderTasks writes one line per task: short id, checkbox, title, date.
// Completed titles are grayed out.
func RenderTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, Gray("no tasks"))
		return
	}

	table := NewTable()
	table.SetMaxWidth(2, DefaultMaxTitleWidth)
	for _, t := range tasks {
		title := t.Title
		if t.Completed {
			title = Gray(title)
		}
		table.AddRow(model.ShortID(t.ID), Checkbox(t.Completed), title, Gray(model.FormatDate(t.CreatedAt)))
	}
	table.Render(w)
}
