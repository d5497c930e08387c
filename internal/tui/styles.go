package tui

import "github.com/charmbracelet/lipgloss"

// Palette of the active theme. applyTheme rewrites these and rebuilds the
// styles below.
var (
	colorBase      lipgloss.Color
	colorSurface   lipgloss.Color
	colorText      lipgloss.Color
	colorSubtext   lipgloss.Color
	colorDim       lipgloss.Color
	colorAccent    lipgloss.Color
	colorUnder     lipgloss.Color
	colorOver      lipgloss.Color
	colorHighlight lipgloss.Color
	colorMean      lipgloss.Color
)

var (
	titleStyle     lipgloss.Style
	subtitleStyle  lipgloss.Style
	dimStyle       lipgloss.Style
	helpStyle      lipgloss.Style
	helpKeyStyle   lipgloss.Style
	axisStyle      lipgloss.Style
	axisLabelStyle lipgloss.Style
	sideLabelStyle lipgloss.Style

	underBarStyle     lipgloss.Style
	overBarStyle      lipgloss.Style
	highlightBarStyle lipgloss.Style
	meanStyle         lipgloss.Style

	tooltipStyle      lipgloss.Style
	tooltipTitleStyle lipgloss.Style
	tooltipTextStyle  lipgloss.Style
	gaugeTrackStyle   lipgloss.Style
	gaugeFillStyle    lipgloss.Style

	overlayStyle lipgloss.Style
)

func applyTheme(t Theme) {
	colorBase = t.Base
	colorSurface = t.Surface
	colorText = t.Text
	colorSubtext = t.Subtext
	colorDim = t.Dim
	colorAccent = t.Accent
	colorUnder = t.Under
	colorOver = t.Over
	colorHighlight = t.Highlight
	colorMean = t.Mean

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	axisStyle = lipgloss.NewStyle().Foreground(colorDim)
	axisLabelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	sideLabelStyle = lipgloss.NewStyle().Foreground(colorSubtext).Italic(true)

	underBarStyle = lipgloss.NewStyle().Foreground(colorUnder)
	overBarStyle = lipgloss.NewStyle().Foreground(colorOver)
	highlightBarStyle = lipgloss.NewStyle().Foreground(colorHighlight)
	meanStyle = lipgloss.NewStyle().Foreground(colorMean).Bold(true)

	tooltipStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorBase).
		Padding(0, 1)
	tooltipTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorBase)
	tooltipTextStyle = lipgloss.NewStyle().Foreground(colorSubtext).Background(colorBase)
	gaugeTrackStyle = lipgloss.NewStyle().Foreground(colorSurface).Background(colorBase)
	gaugeFillStyle = lipgloss.NewStyle().Foreground(colorAccent).Background(colorBase)

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2)
}

func barStyle(x0 float64) lipgloss.Style {
	if x0 < 0 {
		return underBarStyle
	}
	return overBarStyle
}
