// Package chart computes the geometry of the estimate histogram: bars, axis
// ticks, the mean marker, background halves and per-bin hover regions. Units
// are whatever the renderer draws in (pixels for images, cells in a terminal).
package chart

import (
	"github.com/samber/lo"

	"github.com/janekbaraniewski/hourslens/internal/binning"
	"github.com/janekbaraniewski/hourslens/internal/core"
	"github.com/janekbaraniewski/hourslens/internal/records"
	"github.com/janekbaraniewski/hourslens/internal/scale"
)

const (
	AxisTickCount = 10

	AxisLabelText      = "Hours over-estimated"
	MeanLabelText      = "mean"
	UnderEstimatedText = "Under-estimated"
	OverEstimatedText  = "Over-estimated"
)

type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

type Dimensions struct {
	Width  float64
	Height float64
	Margin Margin
}

func (d Dimensions) BoundedWidth() float64 {
	return d.Width - d.Margin.Left - d.Margin.Right
}

func (d Dimensions) BoundedHeight() float64 {
	return d.Height - d.Margin.Top - d.Margin.Bottom
}

// Options configures Build. Overhang is how far the mean line and background
// extend above the plot, LabelGap separates the mean label from the line and
// LabelInset pulls side and axis labels in from the edges.
type Options struct {
	Dimensions Dimensions
	Thresholds int
	BarPadding float64
	Overhang   float64
	LabelGap   float64
	LabelInset float64
	Filter     records.Thresholds
}

// DefaultOptions is the pixel layout of a 600x300 chart.
func DefaultOptions() Options {
	return Options{
		Dimensions: Dimensions{
			Width:  600,
			Height: 300,
			Margin: Margin{Top: 35, Right: 10, Bottom: 50, Left: 50},
		},
		Thresholds: 30,
		BarPadding: 1.5,
		Overhang:   20,
		LabelGap:   5,
		LabelInset: 10,
		Filter:     records.DefaultThresholds(),
	}
}

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

type Line struct {
	X1, Y1 float64
	X2, Y2 float64
}

type Label struct {
	X    float64
	Y    float64
	Text string
}

type Tick struct {
	Value float64
	X     float64
	Label string
}

// Layout is everything a renderer needs. Coordinates are relative to the
// top-left corner of the bounded plot area; add the margins for absolute
// positions.
type Layout struct {
	Dimensions Dimensions
	Records    []core.TaskRecord
	Stats      records.Stats
	Bins       []binning.Bin
	X          scale.Linear
	Y          scale.Linear

	Bars      []Rect
	Listeners []Rect

	Mean      float64
	HasMean   bool
	MeanLine  Line
	MeanLabel Label

	Ticks       []Tick
	AxisLabel   Label
	Backgrounds [2]Rect
	SideLabels  [2]Label
}

// Build filters raw records and lays out the histogram of their difference
// metric. An empty analysis set yields a layout with no bins.
func Build(raw []core.TaskRecord, opts Options) Layout {
	dims := opts.Dimensions
	bw, bh := dims.BoundedWidth(), dims.BoundedHeight()

	recs, stats := records.FilterWithStats(raw, opts.Filter)
	l := Layout{
		Dimensions: dims,
		Records:    recs,
		Stats:      stats,
		AxisLabel:  Label{X: bw / 2, Y: bh + dims.Margin.Bottom - opts.LabelInset, Text: AxisLabelText},
		Backgrounds: [2]Rect{
			{X: 0, Y: -opts.Overhang, Width: bw / 2, Height: bh + opts.Overhang},
			{X: bw/2 + 1, Y: -opts.Overhang, Width: bw/2 - 1, Height: bh + opts.Overhang},
		},
		SideLabels: [2]Label{
			{X: opts.LabelInset, Y: 0, Text: UnderEstimatedText},
			{X: bw - opts.LabelInset, Y: 0, Text: OverEstimatedText},
		},
	}

	values := lo.Map(recs, func(r core.TaskRecord, _ int) float64 { return r.Diff() })
	lowest, highest, ok := scale.Extent(values)
	if !ok {
		l.X = scale.NewLinear([2]float64{0, 0}, [2]float64{0, bw}, false)
		l.Y = scale.NewLinear([2]float64{0, 0}, [2]float64{bh, 0}, false)
		return l
	}

	l.X = scale.NewLinear([2]float64{lowest, highest}, [2]float64{0, bw}, true)
	l.Bins = binning.Compute(recs, core.DiffOf, l.X.Domain(), opts.Thresholds)
	l.Y = scale.NewLinear([2]float64{0, float64(binning.MaxLen(l.Bins))}, [2]float64{bh, 0}, true)

	for _, b := range l.Bins {
		x0, x1 := l.X.Map(b.X0), l.X.Map(b.X1)
		top := l.Y.Map(float64(b.Len()))
		l.Bars = append(l.Bars, Rect{
			X:      x0 + opts.BarPadding,
			Y:      top,
			Width:  max(0, x1-x0-opts.BarPadding),
			Height: bh - top,
		})
		l.Listeners = append(l.Listeners, Rect{
			X:      x0,
			Y:      -dims.Margin.Top,
			Width:  max(0, x1-x0),
			Height: bh + dims.Margin.Top,
		})
	}

	if mean, ok := scale.Mean(values); ok {
		mx := l.X.Map(mean)
		l.Mean = mean
		l.HasMean = true
		l.MeanLine = Line{X1: mx, Y1: -opts.Overhang, X2: mx, Y2: bh}
		l.MeanLabel = Label{X: mx, Y: -opts.Overhang - opts.LabelGap, Text: MeanLabelText}
	}

	format := l.X.TickFormat(AxisTickCount)
	for _, v := range l.X.Ticks(AxisTickCount) {
		l.Ticks = append(l.Ticks, Tick{Value: v, X: l.X.Map(v), Label: format(v)})
	}
	return l
}

// Empty reports whether there is nothing to plot.
func (l Layout) Empty() bool { return len(l.Bins) == 0 }

// ListenerAt returns the bin whose hover region contains (x, y), in plot
// coordinates.
func (l Layout) ListenerAt(x, y float64) (int, bool) {
	for i, r := range l.Listeners {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}
