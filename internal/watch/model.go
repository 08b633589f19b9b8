package watch

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/rtad"
)

// clockInterval is how often relative times in the header are redrawn.
const clockInterval = time.Second

// chromeLines is every rendered line that is not a table row: header,
// blank, tabs, column header, separator, status and footer.
const chromeLines = 7

// defaultVisibleRows is used before the first WindowSizeMsg.
const defaultVisibleRows = 20

// ModelOptions configures a Model.
type ModelOptions struct {
	// Refresh asks the poller to reload every feed. Nil disables the key.
	Refresh  func()
	Interval time.Duration
	BaseURL  string
}

// feedStatus is the dashboard's view of one feed's polling.
type feedStatus struct {
	loading  bool
	updated  time.Time
	err      string
	failures int
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	feeds  []*rtad.Feed
	status map[rtad.TableKind]*feedStatus
	active int
	focus  []int // focused column per feed
	offset []int // first visible row per feed

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	refresh  func()
	interval time.Duration
	baseURL  string

	width    int
	height   int
	showHelp bool
	quitting bool
	notice   string
	now      func() time.Time
}

// NewModel creates a dashboard over feeds, in display order.
func NewModel(feeds []*rtad.Feed, opts ModelOptions) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"◐", "◓", "◑", "◒"},
		FPS:    time.Second / 8,
	}
	sp.Style = SpinnerStyle

	status := make(map[rtad.TableKind]*feedStatus, len(feeds))
	for _, f := range feeds {
		status[f.Kind()] = &feedStatus{loading: true}
	}

	h := help.New()
	h.ShortSeparator = " | "

	return Model{
		feeds:    feeds,
		status:   status,
		focus:    make([]int, len(feeds)),
		offset:   make([]int, len(feeds)),
		keys:     defaultKeyMap(),
		help:     h,
		spinner:  sp,
		refresh:  opts.Refresh,
		interval: opts.Interval,
		baseURL:  opts.BaseURL,
		now:      time.Now,
	}
}

// Init starts the spinner and the header clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, clockCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffsets()

	case FeedResetMsg:
		if st := m.status[msg.Kind]; st != nil {
			st.loading = true
			st.err = ""
		}
		m.clampOffsets()

	case FeedUpdatedMsg:
		if st := m.status[msg.Kind]; st != nil {
			st.loading = false
			st.updated = msg.At
			st.err = ""
		}
		m.clampOffsets()
		if msg.Added > 0 {
			return m, resortCmd(msg.Kind)
		}

	case FetchFailedMsg:
		if st := m.status[msg.Kind]; st != nil {
			st.loading = false
			st.err = errors.Summary(msg.Err)
			st.failures++
		}

	case resortMsg:
		if f := m.feed(msg.kind); f != nil {
			if err := f.Resort(); err != nil {
				m.notice = errors.Summary(err)
			}
		}

	case clockMsg:
		return m, clockCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Close) {
			m.showHelp = false
		}
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	if len(m.feeds) == 0 {
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	feed := m.feeds[m.active]
	cols := len(feed.Kind().Columns())

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTable):
		m.active = (m.active + 1) % len(m.feeds)
		m.notice = ""

	case key.Matches(msg, m.keys.PrevTable):
		m.active = (m.active + len(m.feeds) - 1) % len(m.feeds)
		m.notice = ""

	case key.Matches(msg, m.keys.Left):
		if m.focus[m.active] > 0 {
			m.focus[m.active]--
		}

	case key.Matches(msg, m.keys.Right):
		if m.focus[m.active] < cols-1 {
			m.focus[m.active]++
		}

	case key.Matches(msg, m.keys.Sort):
		m.sortBy(m.focus[m.active])

	case key.Matches(msg, m.keys.SortN):
		col := int(msg.Runes[0] - '1')
		if col < cols {
			m.focus[m.active] = col
			m.sortBy(col)
		}

	case key.Matches(msg, m.keys.ClearSort):
		if err := feed.ClearSort(); err != nil {
			m.notice = errors.Summary(err)
		} else {
			m.notice = "sort cleared"
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.refresh != nil {
			m.refresh()
			for _, st := range m.status {
				st.loading = true
			}
			m.notice = "refreshing"
		}

	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(m.visibleRows())
	case key.Matches(msg, m.keys.Top):
		m.offset[m.active] = 0
	case key.Matches(msg, m.keys.Bottom):
		m.offset[m.active] = m.maxOffset(feed)
	}

	return m, nil
}

// handleMouse sorts on a left click in the column header row and scrolls on
// the wheel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || len(m.feeds) == 0 {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroll(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scroll(3)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == columnHeaderLine:
		if col := m.columnAt(msg.X); col >= 0 {
			m.focus[m.active] = col
			m.sortBy(col)
		}
	}
	return m, nil
}

// sortBy applies a header click on col of the active feed.
func (m *Model) sortBy(col int) {
	feed := m.feeds[m.active]
	st, err := feed.ClickColumn(col)
	title := feed.Kind().Columns()[st.Column].Title
	if err != nil {
		m.notice = fmt.Sprintf("sorted by %s %s (not saved: %s)", title, st.Direction.Arrow(), errors.Summary(err))
		return
	}
	m.notice = fmt.Sprintf("sorted by %s %s", title, st.Direction.Arrow())
}

func (m *Model) scroll(delta int) {
	feed := m.feeds[m.active]
	off := m.offset[m.active] + delta
	if limit := m.maxOffset(feed); off > limit {
		off = limit
	}
	if off < 0 {
		off = 0
	}
	m.offset[m.active] = off
}

func (m *Model) clampOffsets() {
	for i, f := range m.feeds {
		if limit := m.maxOffset(f); m.offset[i] > limit {
			m.offset[i] = limit
		}
	}
}

func (m Model) maxOffset(f *rtad.Feed) int {
	if n := f.Len() - m.visibleRows(); n > 0 {
		return n
	}
	return 0
}

func (m Model) visibleRows() int {
	if m.height == 0 {
		return defaultVisibleRows
	}
	if n := m.height - chromeLines; n > 1 {
		return n
	}
	return 1
}

func (m Model) feed(kind rtad.TableKind) *rtad.Feed {
	for _, f := range m.feeds {
		if f.Kind() == kind {
			return f
		}
	}
	return nil
}

// Active returns the kind of the table on screen.
func (m Model) Active() rtad.TableKind {
	if len(m.feeds) == 0 {
		return ""
	}
	return m.feeds[m.active].Kind()
}

// resortCmd defers the sort to the next message cycle so rows render once
// in arrival order before being reordered.
func resortCmd(kind rtad.TableKind) tea.Cmd {
	return func() tea.Msg {
		return resortMsg{kind: kind}
	}
}

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}
