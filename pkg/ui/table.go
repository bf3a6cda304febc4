package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn describes one column of a Table
type TableColumn struct {
	Header string
	Width  int    // minimum width
	Max    int    // cells wider than this are shortened from the left; 0 = no limit
	Align  string // "left", "right", "center"
}

// Table is a plain text table for terminal reports
type Table struct {
	Columns []TableColumn
	Rows    [][]string
	Footer  []string
}

func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]string{},
	}
}

func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// SetFooter adds a totals line under a second separator
func (t *Table) SetFooter(cells []string) {
	t.Footer = cells
}

// Render lays out header, rows and optional footer
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rows[r] = t.fit(row)
	}
	footer := t.fit(t.Footer)

	widths := t.widths(rows, footer)

	var b strings.Builder
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Header
	}
	b.WriteString(StyleTableHeader.Render(t.line(headers, widths)))
	b.WriteString("\n")
	b.WriteString(t.separator(widths))
	b.WriteString("\n")

	for idx, row := range rows {
		style := StyleTableRow
		if idx%2 == 1 {
			style = StyleTableRowAlt
		}
		b.WriteString(style.Render(t.line(row, widths)))
		b.WriteString("\n")
	}

	if len(t.Footer) > 0 {
		b.WriteString(t.separator(widths))
		b.WriteString("\n")
		b.WriteString(StyleTableFooter.Render(t.line(footer, widths)))
		b.WriteString("\n")
	}

	return b.String()
}

// fit shortens cells to their column's Max
func (t *Table) fit(row []string) []string {
	if row == nil {
		return nil
	}
	out := make([]string, len(row))
	for i, cell := range row {
		if i < len(t.Columns) && t.Columns[i].Max > 0 {
			cell = TruncateLeft(cell, t.Columns[i].Max)
		}
		out[i] = cell
	}
	return out
}

func (t *Table) widths(rows [][]string, footer []string) []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = max(lipgloss.Width(col.Header), col.Width)
	}
	grow := func(row []string) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	for _, row := range rows {
		grow(row)
	}
	grow(footer)
	return widths
}

func (t *Table) line(cells []string, widths []int) string {
	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padString(cell, widths[i], col.Align)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func (t *Table) separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return StyleTableBorder.Render(strings.Join(parts, "  "))
}

// padString pads a string to the specified display width with alignment
func padString(s string, width int, align string) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}

	padding := width - w

	switch align {
	case "right":
		return strings.Repeat(" ", padding) + s
	case "center":
		leftPad := padding / 2
		rightPad := padding - leftPad
		return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
	default:
		return s + strings.Repeat(" ", padding)
	}
}

// TruncateLeft keeps the end of s, where image paths carry the file name:
// "images/pools/a.jpg" at width 10 becomes "…ols/a.jpg".
func TruncateLeft(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[1:]
	}
	return "…" + string(runes)
}

// RenderSimpleList renders a simple bulleted list
func RenderSimpleList(items []string) string {
	var builder strings.Builder
	for _, item := range items {
		builder.WriteString(StyleInfo.Render("  • "))
		builder.WriteString(item)
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}
