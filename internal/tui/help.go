package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpKeys = []struct{ key, desc string }{
	{"mouse", "hover a bar for its tasks and developer share"},
	{"esc", "clear the hovered bar"},
	{"t", "cycle color theme (saved to config)"},
	{"?", "toggle this help"},
	{"q", "quit"},
}

// renderHelpOverlay draws a centered key reference. Any key dismisses it.
func renderHelpOverlay(f frame, w, h int) {
	lines := []string{titleStyle.Render("hourslens help"), ""}
	for _, k := range helpKeys {
		lines = append(lines, helpKeyStyle.Render(padRight(k.key, 7))+subtitleStyle.Render(k.desc))
	}
	lines = append(lines, "", dimStyle.Italic(true).Render("Bars left of zero took longer than estimated."))

	box := overlayStyle.Render(strings.Join(lines, "\n"))
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	f.putBlock(max(0, (w-bw)/2), max(0, (h-bh)/2), box)
}

func renderHelpLine(width int, status string) string {
	parts := []string{
		helpKeyStyle.Render("q") + helpStyle.Render(" quit"),
		helpKeyStyle.Render("t") + helpStyle.Render(" theme: "+ThemeName()),
		helpKeyStyle.Render("?") + helpStyle.Render(" help"),
	}
	line := " " + strings.Join(parts, helpStyle.Render("  ·  "))
	if status != "" {
		line += helpStyle.Render("  ·  ") + dimStyle.Render(status)
	}
	return fitAnsiWidth(line, width)
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
