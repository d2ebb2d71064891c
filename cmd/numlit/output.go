package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"numlit/internal/diag"
	"numlit/internal/diagfmt"
	"numlit/internal/ui"
)

const maxCellWidth = 48

type tableStyles struct {
	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	muted  lipgloss.Style
}

func newTableStyles(color bool) tableStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return tableStyles{title: plain, header: plain, cell: plain, muted: plain}
	}
	return tableStyles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		header: lipgloss.NewStyle().Bold(true).Underline(true),
		cell:   lipgloss.NewStyle(),
		muted:  lipgloss.NewStyle().Faint(true),
	}
}

// renderTable prints rows as aligned columns. Widths are measured with
// runewidth before styling so escapes never skew the layout.
func renderTable(w io.Writer, st tableStyles, title string, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := range headers {
			if i < len(row) {
				widths[i] = max(widths[i], min(runewidth.StringWidth(row[i]), maxCellWidth))
			}
		}
	}

	if title != "" {
		fmt.Fprintln(w, st.title.Render(title))
	}
	line := func(style lipgloss.Style, cells []string) {
		parts := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = ui.Truncate(cells[i], maxCellWidth)
			}
			if i == len(headers)-1 {
				parts[i] = style.Render(cell)
				continue
			}
			parts[i] = style.Render(ui.PadRight(cell, widths[i]))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	line(st.header, headers)
	for _, row := range rows {
		line(st.cell, row)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printDiagnostics renders bag to w honouring --format, --max-diagnostics
// and --color.
func printDiagnostics(w io.Writer, bag *diag.Bag, s *settings, withNotes bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	if s.format == formatJSON {
		return diagfmt.JSON(w, bag, diagfmt.JSONOpts{Max: s.maxDiags, IncludeNotes: withNotes})
	}
	return diagfmt.Pretty(w, bag, diagfmt.PrettyOpts{Color: s.color, ShowNotes: withNotes, Max: s.maxDiags})
}
