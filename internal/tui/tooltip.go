package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/janekbaraniewski/hourslens/internal/hover"
	"github.com/janekbaraniewski/hourslens/internal/logging"
)

const (
	maxExampleWidth = 36
	shareGaugeWidth = 10
)

// tooltipSurface is the hover.Surface of the terminal chart. It only records
// state; View draws from it.
type tooltipSurface struct {
	tip         hover.Tooltip
	highlighted int
}

func newTooltipSurface() *tooltipSurface {
	return &tooltipSurface{highlighted: -1}
}

func (s *tooltipSurface) ShowTooltip(t hover.Tooltip) {
	s.tip = t
	logging.Global().Debug().Int("bin", t.Index).Str("range", t.Range).Msg("hover enter")
}

func (s *tooltipSurface) HideTooltip() {
	logging.Global().Debug().Int("bin", s.tip.Index).Msg("hover leave")
	s.tip = hover.Tooltip{}
}

func (s *tooltipSurface) HighlightBar(i int) { s.highlighted = i }
func (s *tooltipSurface) ClearHighlight()    { s.highlighted = -1 }

func renderTooltip(t hover.Tooltip) string {
	lines := []string{tooltipTitleStyle.Render(t.Range)}
	for _, ex := range t.Examples {
		lines = append(lines, tooltipTextStyle.Render("• "+ansi.Truncate(ex, maxExampleWidth, "…")))
	}
	if t.Count > 0 {
		lines = append(lines, tooltipTextStyle.Render(fmt.Sprintf("  +%d more", t.Count)))
	}
	lines = append(lines, "")
	lines = append(lines, tooltipTextStyle.Render("Developer share ")+
		RenderShareGauge(t.Fill, shareGaugeWidth)+
		tooltipTitleStyle.Render(" "+t.ShareText))
	return tooltipStyle.Render(strings.Join(lines, "\n"))
}

// placeTooltip anchors the box's bottom-center on the tooltip position, kept
// inside the frame.
func placeTooltip(f frame, t hover.Tooltip, frameWidth int) {
	box := renderTooltip(t)
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x := int(math.Round(t.Position.X)) - w/2
	y := int(math.Round(t.Position.Y)) - h
	f.putBlock(clamp(x, 0, max(0, frameWidth-w)), max(y, 0), box)
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
