package watch

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/rtad/internal/rtad"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Row classes
	ColorHealthy  = lipgloss.Color("#39FF14") // 200
	ColorRedirect = lipgloss.Color("#00FFFF") // 3xx
	ColorWarning  = lipgloss.Color("#FFAA00") // 4xx
	ColorCritical = lipgloss.Color("#FF0055") // 500

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorAccentDim).
			Bold(true).
			Padding(0, 1)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Bold(true)

	ColumnFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Underline(true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	CellStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDim)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// rowStyle colors a row by its status class.
func rowStyle(class rtad.StatusClass) lipgloss.Style {
	switch class {
	case rtad.StatusOK:
		return CellStyle.Foreground(ColorHealthy)
	case rtad.StatusRedirect:
		return CellStyle.Foreground(ColorRedirect)
	case rtad.StatusClientError:
		return CellStyle.Foreground(ColorWarning)
	case rtad.StatusServerError:
		return CellStyle.Foreground(ColorCritical)
	default:
		return CellStyle
	}
}
