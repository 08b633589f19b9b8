package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // e.g. "v0.4.0"
	Title   string // e.g. "Failed logins"
	Source  string // optional backend URL
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the "rtad <version>" banner used above CLI tables.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorNeonPink).
		Bold(true)

	versionStyle := lipgloss.NewStyle().
		Foreground(ColorNeonCyan)

	dividerStyle := lipgloss.NewStyle().
		Foreground(ColorGlassBorder)

	var output strings.Builder

	output.WriteString(titleStyle.Render("rtad"))
	if info.Version != "" {
		output.WriteString(" ")
		output.WriteString(versionStyle.Render(info.Version))
	}
	if info.Title != "" {
		output.WriteString("  ")
		output.WriteString(lipgloss.NewStyle().Foreground(ColorSecondary).Render(info.Title))
	}
	output.WriteString("\n")

	if info.Source != "" {
		output.WriteString(MutedStyle().Render(info.Source))
		output.WriteString("\n")
	}

	output.WriteString(dividerStyle.Render(strings.Repeat("━", HeaderWidth)))
	output.WriteString("\n")

	return output.String()
}
