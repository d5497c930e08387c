package hover

import (
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/janekbaraniewski/hourslens/internal/binning"
	"github.com/janekbaraniewski/hourslens/internal/core"
)

const (
	MaxExamples = 3

	UnderEstimatedBy = "Under-estimated by"
	OverEstimatedBy  = "Over-estimated by"
)

var sharePrinter = message.NewPrinter(language.English)

type Point struct {
	X float64
	Y float64
}

// Tooltip is the payload shown while a bin is hovered.
type Tooltip struct {
	Index     int
	Direction string
	Range     string
	Examples  []string
	// Count is how many records the example list leaves out.
	Count     int
	Share     float64
	ShareText string
	// Fill is the developer-hours share as a fraction of the tooltip bar.
	Fill     float64
	Position Point
	Visible  bool
}

// ExamplesHTML joins the escaped example summaries with line breaks.
func (t Tooltip) ExamplesHTML() string {
	escaped := lo.Map(t.Examples, func(s string, _ int) string { return html.EscapeString(s) })
	return strings.Join(escaped, "<br />")
}

// Summarize builds the tooltip for bin i. ok is false for an out-of-range index.
func Summarize(ctx Context, i int) (Tooltip, bool) {
	if i < 0 || i >= len(ctx.Bins) {
		return Tooltip{}, false
	}
	b := ctx.Bins[i]

	direction := OverEstimatedBy
	if b.X0 < 0 {
		direction = UnderEstimatedBy
	}

	share := DeveloperShare(b)
	x0, x1 := ctx.X.Map(b.X0), ctx.X.Map(b.X1)

	return Tooltip{
		Index:     i,
		Direction: direction,
		Range:     strings.Join([]string{direction, formatHours(b.X0), "to", formatHours(b.X1), "hours"}, " "),
		Examples:  Examples(b),
		Count:     max(0, b.Len()-MaxExamples),
		Share:     share,
		ShareText: sharePrinter.Sprintf("%.2f", math.Abs(share)),
		Fill:      share,
		Position: Point{
			X: x0 + (x1-x0)/2 + ctx.Margin.Left,
			Y: ctx.Y.Map(float64(b.Len())) + ctx.Margin.Top,
		},
		Visible: true,
	}, true
}

// Examples returns the summaries of the first records in bin order.
func Examples(b binning.Bin) []string {
	first := b.Records
	if len(first) > MaxExamples {
		first = first[:MaxExamples]
	}
	return lo.Map(first, func(r core.TaskRecord, _ int) string { return r.Summary })
}

// DeveloperShare averages DeveloperHoursActual/HoursActual over the bin.
// Degenerate ratios count as 0 and an empty bin has a share of 0.
func DeveloperShare(b binning.Bin) float64 {
	if b.Len() == 0 {
		return 0
	}
	total := lo.SumBy(b.Records, func(r core.TaskRecord) float64 { return r.DeveloperShare() })
	return total / float64(b.Len())
}

func formatHours(v float64) string {
	return strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
}
