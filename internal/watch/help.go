package watch

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Help overlay styles
var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Background(ColorSurfaceBg).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)
)

// renderHelpOverlay renders a centered box with every key binding.
func (m Model) renderHelpOverlay() string {
	full := m.help
	full.ShowAll = true

	lines := []string{
		helpTitleStyle.Render("Keyboard Shortcuts"),
		full.View(m.keys),
		"",
		LabelStyle.Render("Click a column header to sort by it. Press ? to close"),
	}
	box := helpBoxStyle.Render(strings.Join(lines, "\n"))

	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorDarkBg),
	)
}
