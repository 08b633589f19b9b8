package watch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/rtad/internal/rtad"
)

// columnHeaderLine is the screen row of the column titles, used to map
// mouse clicks to columns.
const columnHeaderLine = 3

// minColumnWidth is the narrowest a column is squeezed to.
const minColumnWidth = 4

// Summary holds the header counters.
type Summary struct {
	TotalEvents  int
	DistinctIPs  int
	FailedLogins int
	Updated      time.Time
}

// Summarize computes the header counters across feeds.
func Summarize(feeds []*rtad.Feed) Summary {
	var s Summary
	ips := make(map[string]struct{})
	for _, f := range feeds {
		st := f.Stats()
		s.TotalEvents += st.Rows
		if f.Kind() == rtad.KindLastb {
			s.FailedLogins = st.Rows
		}
		if st.Updated.After(s.Updated) {
			s.Updated = st.Updated
		}
		f.CollectIPs(ips)
	}
	s.DistinctIPs = len(ips)
	return s
}

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if len(m.feeds) == 0 {
		b.WriteString(LabelStyle.Render("No tables configured"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable(m.feeds[m.active]))
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title with the summary counters.
func (m Model) renderHeader() string {
	s := Summarize(m.feeds)

	updated := "waiting for data"
	if !s.Updated.IsZero() {
		updated = "updated " + humanize.RelTime(s.Updated, m.now(), "ago", "from now")
	}

	title := TitleStyle.Render("rtad watch")
	stats := StatsStyle.Render(fmt.Sprintf(" | %s events | %s IPs | %s failed logins | %s",
		humanize.Comma(int64(s.TotalEvents)),
		humanize.Comma(int64(s.DistinctIPs)),
		humanize.Comma(int64(s.FailedLogins)),
		updated,
	))
	return HeaderStyle.Render(title + stats)
}

// renderTabs renders one tab per table, marking loading and failing feeds.
func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.feeds))
	for i, f := range m.feeds {
		label := fmt.Sprintf("%s (%s)", f.Kind().Title(), humanize.Comma(int64(f.Len())))
		if st := m.status[f.Kind()]; st != nil {
			switch {
			case st.loading:
				label += " " + m.spinner.View()
			case st.err != "":
				label += " " + ErrorStyle.Render("✗")
			}
		}

		style := TabStyle
		if i == m.active {
			style = TabActiveStyle
		}
		tabs = append(tabs, style.Render(label))
	}
	if m.baseURL != "" {
		tabs = append(tabs, LabelStyle.Render(" "+m.baseURL))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTable renders the column header, a separator and the visible rows.
func (m Model) renderTable(feed *rtad.Feed) string {
	cols := feed.Kind().Columns()
	widths := fitWidths(cols, m.width)
	sortState, sorted := feed.SortState()
	focus := m.focus[m.active]

	var b strings.Builder

	headers := make([]string, len(cols))
	for i, c := range cols {
		title := c.Title
		if sorted && sortState.Column == i {
			title += " " + sortState.Direction.Arrow()
		}
		style := ColumnHeaderStyle
		if i == focus {
			style = ColumnFocusedStyle
		}
		headers[i] = style.Render(fit(title, widths[i]))
	}
	b.WriteString(strings.Join(headers, " "))
	b.WriteString("\n")
	b.WriteString(SeparatorStyle.Render(strings.Repeat("─", lineWidth(widths))))
	b.WriteString("\n")

	rows := feed.Snapshot()
	visible := m.visibleRows()
	if len(rows) == 0 {
		msg := "no rows yet"
		if st := m.status[feed.Kind()]; st != nil && st.loading {
			msg = m.spinner.View() + " loading " + feed.Kind().Path()
		}
		b.WriteString(LabelStyle.Render(msg))
		b.WriteString("\n")
		return b.String()
	}

	start := m.offset[m.active]
	if start > len(rows) {
		start = len(rows)
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	cells := make([]string, len(cols))
	for _, r := range rows[start:end] {
		for i := range cols {
			v := r.Cell(i)
			if i == rtad.TimestampColumn {
				v = rtad.FormatTimestamp(v)
			}
			cells[i] = fit(v, widths[i])
		}
		b.WriteString(rowStyle(r.Class).Render(strings.Join(cells, " ")))
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatus renders the fetch error of the active feed, the last notice,
// or the scroll position.
func (m Model) renderStatus() string {
	if len(m.feeds) == 0 {
		return ""
	}
	feed := m.feeds[m.active]
	st := m.status[feed.Kind()]

	if st != nil && st.err != "" {
		retry := ""
		if m.interval > 0 {
			retry = fmt.Sprintf("; retrying every %s", m.interval)
		}
		return ErrorStyle.Render(fmt.Sprintf("✗ %s (%d failures)%s", st.err, st.failures, retry))
	}
	if m.notice != "" {
		return NoticeStyle.Render(m.notice)
	}

	n := feed.Len()
	first, last := 0, 0
	if n > 0 {
		first = m.offset[m.active] + 1
		last = m.offset[m.active] + m.visibleRows()
		if last > n {
			last = n
		}
	}
	pos := fmt.Sprintf("rows %d-%d of %s | cursor %s", first, last, humanize.Comma(int64(n)), feed.Cursor())
	if s, ok := feed.SortState(); ok {
		pos += fmt.Sprintf(" | sort %s %s", feed.Kind().Columns()[s.Column].Title, s.Direction.Arrow())
	}
	return LabelStyle.Render(pos)
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.View(m.keys))
}

// columnAt maps a screen x position to a column of the active table, or -1
// for the gaps and beyond the last column.
func (m Model) columnAt(x int) int {
	widths := fitWidths(m.feeds[m.active].Kind().Columns(), m.width)
	pos := 0
	for i, w := range widths {
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}

// fitWidths squeezes the widest columns until the row fits width, or grows
// the last column to fill it. A zero width keeps the natural widths.
func fitWidths(cols []rtad.Column, width int) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = c.Width
	}
	if width <= 0 || len(widths) == 0 {
		return widths
	}

	total := lineWidth(widths)
	if total < width {
		widths[len(widths)-1] += width - total
		return widths
	}
	for total > width {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
		total--
	}
	return widths
}

func lineWidth(widths []int) int {
	if len(widths) == 0 {
		return 0
	}
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	return total
}

// fit truncates s with an ellipsis or pads it to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := lipgloss.Width(s); w <= width {
		return s + strings.Repeat(" ", width-w)
	}

	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if used+rw > width-1 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	b.WriteString("…")
	used++
	return b.String() + strings.Repeat(" ", width-used)
}
