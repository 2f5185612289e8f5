// Package export renders a task list for sharing outside todo. Exports are
// one-way: nothing here can be read back in.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jacksmith/todo/internal/model"
)

// Supported export formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Formats returns the supported format names in sorted order.
func Formats() []string {
	names := []string{FormatText, FormatCSV, FormatPDF}
	sort.Strings(names)
	return names
}

// Options controls an export.
type Options struct {
	// Title heads the document. Defaults to "Tasks".
	Title string
	// Now stamps the export date. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) title() string {
	if o.Title == "" {
		return "Tasks"
	}
	return o.Title
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Write renders tasks to w in format. Tasks are written in the order given.
func Write(w io.Writer, format string, tasks []model.Task, opts Options) error {
	switch strings.ToLower(format) {
	case FormatText:
		return writeText(w, tasks, opts)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks, opts)
	default:
		return fmt.Errorf("unknown export format %q (expected one of: %s)", format, strings.Join(Formats(), ", "))
	}
}

func summary(tasks []model.Task) string {
	done := len(model.FilterByState(tasks, model.TaskStateCompleted))
	return fmt.Sprintf("%d tasks, %d completed, %d pending", len(tasks), done, len(tasks)-done)
}

func checkbox(t model.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func writeText(w io.Writer, tasks []model.Task, opts Options) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", opts.title())
	fmt.Fprintf(&b, "# Exported: %s\n", opts.now().Format("January 02, 2006"))
	fmt.Fprintf(&b, "# %s\n", summary(tasks))

	for _, t := range tasks {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", checkbox(t), t.Title)
		fmt.Fprintf(&b, "    id: %s\n", t.ID)
		fmt.Fprintf(&b, "    created: %s\n", model.FormatDate(t.CreatedAt))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeCSV(w io.Writer, tasks []model.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "completed", "createdAt"}); err != nil {
		return err
	}
	for _, t := range tasks {
		row := []string{t.ID, t.Title, strconv.FormatBool(t.Completed), strconv.FormatInt(t.CreatedAt, 10)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []model.Task, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.title(), true)
	pdf.SetCreator("todo", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(opts.title()))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, fmt.Sprintf("Exported %s - %s", opts.now().Format("January 02, 2006"), summary(tasks)))
	pdf.Ln(10)

	pdf.SetTextColor(0, 0, 0)
	for _, t := range tasks {
		pdf.SetFont("Arial", "", 11)
		if t.Completed {
			pdf.SetTextColor(120, 120, 120)
		}
		pdf.MultiCell(0, 6, tr(checkbox(t)+" "+t.Title), "0", "L", false)

		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.MultiCell(0, 5, fmt.Sprintf("%s  |  %s", model.ShortID(t.ID), model.FormatDate(t.CreatedAt)), "0", "L", false)
		pdf.Ln(2)
		pdf.SetTextColor(0, 0, 0)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf.Output(w)
}
