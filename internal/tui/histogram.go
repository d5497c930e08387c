package tui

import (
	"math"
	"slices"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/janekbaraniewski/hourslens/internal/chart"
)

const (
	meanGlyph = "┊"
	tickGlyph = "┬"
)

// plotArea converts layout units into terminal cells. The layout is built in
// cells already, so this only rounds.
type plotArea struct {
	left, top int
	width     int
	height    int
}

func newPlotArea(d chart.Dimensions) plotArea {
	return plotArea{
		left:   int(math.Round(d.Margin.Left)),
		top:    int(math.Round(d.Margin.Top)),
		width:  int(math.Round(d.BoundedWidth())),
		height: int(math.Round(d.BoundedHeight())),
	}
}

func (p plotArea) col(x float64) int { return p.left + int(math.Round(x)) }
func (p plotArea) row(y float64) int { return p.top + int(math.Round(y)) }

// textRow is the row a label with baseline y sits on.
func (p plotArea) textRow(y float64) int { return p.row(y) - 1 }

// renderHistogram draws bars, axes, labels and the mean marker of l onto f.
// The bar at index highlighted, if any, uses the highlight style.
func renderHistogram(f frame, l chart.Layout, highlighted int) {
	p := newPlotArea(l.Dimensions)
	if p.width <= 0 || p.height <= 0 {
		return
	}

	// One extra column and row hold the axes.
	c := canvas.New(p.width+1, p.height+1,
		canvas.WithViewWidth(p.width+1), canvas.WithViewHeight(p.height+1))
	graph.DrawXYAxis(&c, canvas.Point{X: 0, Y: p.height}, axisStyle)
	for i, bar := range l.Bars {
		style := barStyle(l.Bins[i].X0)
		if i == highlighted {
			style = highlightBarStyle
		}
		drawBar(&c, bar, p, style)
	}
	f.putBlock(p.left-1, p.top, c.View())

	renderTicks(f, l, p)
	renderLabels(f, l, p)
	if l.HasMean {
		renderMean(f, l, p)
	}
}

func drawBar(c *canvas.Model, bar chart.Rect, p plotArea, style lipgloss.Style) {
	if bar.Height <= 0 || bar.Width <= 0 {
		return
	}
	c0 := int(math.Round(bar.X))
	c1 := int(math.Round(bar.X + bar.Width))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	c0, c1 = max(c0, 0), min(c1, p.width)
	if c1 <= c0 {
		return
	}
	heights := slices.Repeat([]float64{bar.Height}, c1-c0)
	graph.DrawColumns(c, canvas.Point{X: c0 + 1, Y: p.height - 1}, heights, style)
}

func renderTicks(f frame, l chart.Layout, p plotArea) {
	axisRow := p.top + p.height
	labelRow := axisRow + 1
	nextFree := math.MinInt
	for _, t := range l.Ticks {
		x := p.col(t.X)
		f.put(x, axisRow, axisStyle.Render(tickGlyph))

		w := ansi.StringWidth(t.Label)
		start := x - w/2
		if start < nextFree {
			continue
		}
		f.put(start, labelRow, axisLabelStyle.Render(t.Label))
		nextFree = start + w + 1
	}
}

func renderLabels(f frame, l chart.Layout, p plotArea) {
	under, over := l.SideLabels[0], l.SideLabels[1]
	f.put(p.col(under.X), p.textRow(under.Y), sideLabelStyle.Foreground(colorUnder).Render(under.Text))
	f.put(p.col(over.X)-ansi.StringWidth(over.Text), p.textRow(over.Y), sideLabelStyle.Foreground(colorOver).Render(over.Text))

	a := l.AxisLabel
	f.put(p.col(a.X)-ansi.StringWidth(a.Text)/2, p.textRow(a.Y), axisLabelStyle.Render(a.Text))
}

func renderMean(f frame, l chart.Layout, p plotArea) {
	x := p.col(l.MeanLine.X1)
	for y := p.row(l.MeanLine.Y1); y < p.row(l.MeanLine.Y2); y++ {
		f.put(x, y, meanStyle.Render(meanGlyph))
	}
	label := l.MeanLabel
	f.put(x-ansi.StringWidth(label.Text)/2, p.textRow(label.Y), meanStyle.Render(label.Text))
}
