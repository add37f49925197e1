package widget

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorSurface lipgloss.Color = "#313244"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSuccess).
			Padding(0, 1)
	summaryNameStyle    = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	summaryAddressStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	changeStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	modalTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	modalCardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	rowStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorBorder)
	rowActiveStyle = rowStyle.
			BorderForeground(colorAccent).
			Background(colorSurface)
	rowNameStyle    = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	rowAddressStyle = lipgloss.NewStyle().Foreground(colorMuted)
	badgeStyle      = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	centeredMutedStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(1, 0)
	noticeStyle        = lipgloss.NewStyle().Foreground(colorError)
	helpStyle          = lipgloss.NewStyle().Foreground(colorMuted)
)
