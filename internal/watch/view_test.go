package watch

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/rtad/internal/rtad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	feeds := newTestFeeds(t)
	feeds[0].Apply(lastbEntries(1, 6)) // IPs 192.0.2.0-3
	feeds[1].Apply([]rtad.Entry{
		rtad.ProxyEntry{ID: 1, IPAddress: "192.0.2.1", ErrorCode: 404},
		rtad.ProxyEntry{ID: 2, IPAddress: "198.51.100.7", ErrorCode: 500},
	})

	s := Summarize(feeds)
	assert.Equal(t, 8, s.TotalEvents)
	assert.Equal(t, 6, s.FailedLogins)
	assert.Equal(t, 5, s.DistinctIPs)
	assert.False(t, s.Updated.IsZero())
}

func TestRenderHeader(t *testing.T) {
	feeds := newTestFeeds(t)
	m := NewModel(feeds, ModelOptions{})
	assert.Contains(t, m.renderHeader(), "waiting for data")

	feeds[0].Apply(lastbEntries(1, 2))
	m.now = func() time.Time { return time.Now().Add(3 * time.Minute) }
	header := m.renderHeader()
	assert.Contains(t, header, "rtad watch")
	assert.Contains(t, header, "2 events")
	assert.Contains(t, header, "2 failed logins")
	assert.Contains(t, header, "updated 3 minutes ago")
}

func TestRenderTable_SortArrowAndRows(t *testing.T) {
	feeds := newTestFeeds(t)
	feeds[0].Apply(lastbEntries(1, 3))
	require.NoError(t, feeds[0].SetSort(rtad.SortState{Column: 4, Direction: rtad.Desc}))

	m := NewModel(feeds, ModelOptions{})
	out := m.renderTable(feeds[0])
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5, "header, separator and three rows")

	assert.Contains(t, lines[0], "User ▼")
	assert.True(t, strings.Index(lines[2], "user3") >= 0, "descending by user puts user3 first")
	assert.NotContains(t, out, "T10:", "timestamps are rendered in display form")
}

func TestRenderTable_Empty(t *testing.T) {
	feeds := newTestFeeds(t)
	m := NewModel(feeds, ModelOptions{})
	assert.Contains(t, m.renderTable(feeds[0]), "loading /rtad_lastb")

	m, _ = update(t, m, FeedUpdatedMsg{Kind: rtad.KindLastb, At: time.Now()})
	assert.Contains(t, m.renderTable(feeds[0]), "no rows yet")
}

func TestRenderTable_FitsWidth(t *testing.T) {
	feeds := newTestFeeds(t)
	feeds[1].Apply([]rtad.Entry{rtad.ProxyEntry{
		ID:        1,
		Domain:    "a-very-long-domain-name.example.com",
		URL:       "/" + strings.Repeat("x", 200),
		ErrorCode: 502,
		Timestamp: "2024-03-01T10:00:00+00:00",
	}})

	m := NewModel(feeds, ModelOptions{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	for _, line := range strings.Split(m.renderTable(feeds[1]), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}
}

func TestRenderStatus(t *testing.T) {
	feeds := newTestFeeds(t)
	feeds[0].Apply(lastbEntries(1, 3))
	m := NewModel(feeds, ModelOptions{})

	status := m.renderStatus()
	assert.Contains(t, status, "rows 1-3 of 3")
	assert.Contains(t, status, "cursor 3")

	require.NoError(t, feeds[0].SetSort(rtad.SortState{Column: 1, Direction: rtad.Asc}))
	assert.Contains(t, m.renderStatus(), "sort IP ▲")
}

func TestFitWidths(t *testing.T) {
	cols := []rtad.Column{{Title: "A", Width: 10}, {Title: "B", Width: 20}, {Title: "C", Width: 5}}

	assert.Equal(t, []int{10, 20, 5}, fitWidths(cols, 0))
	assert.Equal(t, []int{10, 20, 15}, fitWidths(cols, 47), "last column grows")

	narrow := fitWidths(cols, 25)
	assert.Equal(t, 25, lineWidth(narrow))
	for _, w := range narrow {
		assert.GreaterOrEqual(t, w, minColumnWidth)
	}

	tiny := fitWidths(cols, 3)
	assert.Equal(t, []int{minColumnWidth, minColumnWidth, minColumnWidth}, tiny)
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 3, "abc"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}

	for _, tt := range tests {
		got := fit(tt.in, tt.width)
		assert.Equal(t, tt.want, got, "%q/%d", tt.in, tt.width)
		if tt.width > 0 {
			assert.Equal(t, tt.width, lipgloss.Width(got))
		}
	}
}

func TestColumnAt(t *testing.T) {
	m := NewModel(newTestFeeds(t), ModelOptions{})
	assert.Equal(t, 0, m.columnAt(0))
	assert.Equal(t, 0, m.columnAt(19))
	assert.Equal(t, -1, m.columnAt(20), "gap between columns")
	assert.Equal(t, 1, m.columnAt(21))
	assert.Equal(t, -1, m.columnAt(500))
}

func TestRowStyle(t *testing.T) {
	// Every class renders its text; colors are stripped under the Ascii profile.
	for _, class := range []rtad.StatusClass{rtad.StatusNone, rtad.StatusOK, rtad.StatusRedirect, rtad.StatusClientError, rtad.StatusServerError} {
		assert.Equal(t, "x", rowStyle(class).Render("x"))
	}
}
