package watch

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every dashboard binding. It implements help.KeyMap.
type keyMap struct {
	NextTable key.Binding
	PrevTable key.Binding
	Left      key.Binding
	Right     key.Binding
	Sort      key.Binding
	SortN     key.Binding
	ClearSort key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTable: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next table")),
		PrevTable: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous table")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "focus left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "focus right")),
		Sort:      key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "sort focused column")),
		SortN: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "sort by column N"),
		),
		ClearSort: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear sort")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("pgdn", "page down")),
		Top:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is the footer line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTable, k.Sort, k.Refresh, k.Help, k.Quit}
}

// FullHelp is the help overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTable, k.PrevTable, k.Refresh, k.Quit},
		{k.Left, k.Right, k.Sort, k.SortN, k.ClearSort},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Help, k.Close},
	}
}
