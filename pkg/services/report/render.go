package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/ads-atlas/pkg/models/domain"
)

// Renderer writes flattened report tables to the console or to CSV files.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer; nil writer defaults to stdout.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// Console prints an aligned text table. Zero rows short-circuits to a "no
// data" message before any header or separator is attempted.
func (r *Renderer) Console(table *domain.ReportTable) error {
	if len(table.Rows) == 0 {
		_, err := fmt.Fprintln(r.out, "No data found matching the criteria.")
		return err
	}

	widths := make([]int, len(table.Columns))
	for i, header := range table.Columns {
		widths[i] = len(header)
	}
	for _, row := range table.Rows {
		for i, v := range row.Values {
			if l := len(FormatValue(v)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	cells := make([]string, len(table.Columns))
	for i, header := range table.Columns {
		cells[i] = pad(header, widths[i])
	}
	headerLine := strings.Join(cells, " | ")

	if _, err := fmt.Fprintln(r.out, headerLine); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.out, strings.Repeat("-", len(headerLine))); err != nil {
		return err
	}

	for _, row := range table.Rows {
		for i, v := range row.Values {
			cells[i] = pad(FormatValue(v), widths[i])
		}
		if _, err := fmt.Fprintln(r.out, strings.Join(cells, " | ")); err != nil {
			return err
		}
	}
	return nil
}

// CSV writes the table to path, replacing any previous content, and prints a
// confirmation line on success. Open and write failures propagate to the
// caller, which decides whether they are fatal.
func (r *Renderer) CSV(table *domain.ReportTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, v := range row.Values {
			record[i] = FormatValue(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(r.out, "Results successfully written to %s\n", path)
	return err
}

// FormatValue renders a scalar cell value.
func FormatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
