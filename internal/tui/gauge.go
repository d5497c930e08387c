package tui

import (
	"math"
	"strings"
)

// RenderShareGauge draws a fraction as a left-to-right bar of the given width.
// The fraction is clamped to [0, 1]; NaN draws an empty track.
func RenderShareGauge(fraction float64, width int) string {
	if width < 3 {
		width = 3
	}
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(math.Round(fraction * float64(width)))
	return gaugeFillStyle.Render(strings.Repeat("━", filled)) +
		gaugeTrackStyle.Render(strings.Repeat("─", width-filled))
}
