package print

import (
	"fmt"
	"io"
	"strings"
)

type Options struct {
	MaxWidth int // max width for each column, 0 = default
}

// RenderTable writes rows as an ASCII table with a header line. Cells wider
// than MaxWidth are truncated with an ellipsis.
func RenderTable(w io.Writer, columns []string, rows [][]string, opts Options) {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 40
	}

	if len(columns) == 0 {
		fmt.Fprintln(w, "(no columns)")
		return
	}

	widths := make([]int, len(columns))
	for i, column := range columns {
		widths[i] = len(column)
	}
	for _, row := range rows {
		for i, cell := range row {
			if l := len(cell); l > widths[i] {
				if l > opts.MaxWidth {
					l = opts.MaxWidth
				}
				widths[i] = l
			}
		}
	}

	sep := func(ch string) string {
		var b strings.Builder
		b.WriteString("+")
		for i := range widths {
			b.WriteString(strings.Repeat(ch, widths[i]+2))
			b.WriteString("+")
		}
		return b.String()
	}

	writeRow := func(cells []string) {
		var b strings.Builder
		b.WriteString("|")
		for i, cell := range cells {
			b.WriteString(" ")
			b.WriteString(padRight(truncate(cell, widths[i]), widths[i]))
			b.WriteString(" |")
		}
		fmt.Fprintln(w, b.String())
	}

	fmt.Fprintln(w, sep("-"))
	writeRow(columns)
	fmt.Fprintln(w, sep("="))
	for _, row := range rows {
		writeRow(row)
	}
	fmt.Fprintln(w, sep("-"))
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-3] + "..."
}
