// Package export renders the histogram to a static SVG or PNG image.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/janekbaraniewski/hourslens/internal/chart"
)

var ErrNoBins = errors.New("no tasks in range to export")

type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

const yTickCount = 5

var (
	underColor = drawing.ColorFromHex("E06C75")
	overColor  = drawing.ColorFromHex("98C379")
)

type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: 1024, Height: 512}
}

// FormatFor picks the image format from the output file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return SVG, nil
	case ".png":
		return PNG, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want .svg or .png)", filepath.Ext(path))
}

// BarChart converts a layout into a go-chart bar chart. Only bars that start on
// an axis tick are labeled.
func BarChart(l chart.Layout, opts Options) (gochart.BarChart, error) {
	if l.Empty() {
		return gochart.BarChart{}, ErrNoBins
	}

	ticks := make(map[float64]string, len(l.Ticks))
	for _, t := range l.Ticks {
		ticks[t.Value] = t.Label
	}

	bars := make([]gochart.Value, len(l.Bins))
	for i, b := range l.Bins {
		fill := overColor
		if b.X0 < 0 {
			fill = underColor
		}
		bars[i] = gochart.Value{
			Value: float64(b.Len()),
			Label: ticks[b.X0],
			Style: gochart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		}
	}

	yMax := l.Y.Domain()[1]
	format := l.Y.TickFormat(yTickCount)
	var yTicks []gochart.Tick
	for _, v := range l.Y.Ticks(yTickCount) {
		if v == math.Trunc(v) {
			yTicks = append(yTicks, gochart.Tick{Value: v, Label: format(v)})
		}
	}

	title := chart.AxisLabelText
	if l.HasMean {
		title = fmt.Sprintf("%s (mean %.2f)", chart.AxisLabelText, l.Mean)
	}

	return gochart.BarChart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarSpacing: 2,
		BarWidth:   max(1, opts.Width/(2*len(bars))),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: yTicks,
		},
		Bars: bars,
	}, nil
}

// Render writes the chart image to w.
func Render(w io.Writer, l chart.Layout, f Format, opts Options) error {
	bc, err := BarChart(l, opts)
	if err != nil {
		return err
	}

	provider := gochart.SVG
	if f == PNG {
		provider = gochart.PNG
	}
	if err := bc.Render(provider, w); err != nil {
		return fmt.Errorf("rendering %s: %w", f, err)
	}
	return nil
}

// WriteFile renders into path, choosing the format from its extension.
func WriteFile(path string, l chart.Layout, opts Options) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Render(&buf, l, f, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
