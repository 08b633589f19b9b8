package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a non-focused Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorGlassBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorNeonCyan)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Unfocused tables still mark the cursor row; keep it indistinguishable.
	s.Selected = s.Selected.
		Foreground(ColorPrimary).
		Bold(false)

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string for CLI output.
// Cells wider than their column are truncated with an ellipsis.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// KeyValue is one line of a RenderKeyValues block.
type KeyValue struct {
	Key   string
	Value string
	// Muted renders the value in the secondary color.
	Muted bool
}

// RenderKeyValues renders aligned "key  value" lines.
func RenderKeyValues(pairs []KeyValue) string {
	if len(pairs) == 0 {
		return ""
	}

	width := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p.Key); w > width {
			width = w
		}
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorSecondary)
	var b strings.Builder
	for _, p := range pairs {
		value := p.Value
		if p.Muted {
			value = MutedStyle().Render(value)
		}
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(padRight(p.Key, width)))
		b.WriteString("  ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	return b.String()
}

// padRight pads a string to the specified visible width.
func padRight(s string, width int) string {
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
