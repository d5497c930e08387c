// Package binning partitions task records into contiguous histogram buckets.
package binning

import (
	"math"
	"sort"

	"github.com/janekbaraniewski/hourslens/internal/core"
	"github.com/janekbaraniewski/hourslens/internal/scale"
)

// Bin covers [X0, X1). The last bin of a histogram also includes X1.
type Bin struct {
	X0      float64
	X1      float64
	Records []core.TaskRecord
}

func (b Bin) Len() int { return len(b.Records) }

// Width is X1 - X0.
func (b Bin) Width() float64 { return b.X1 - b.X0 }

// Compute splits domain into roughly bucketCount buckets whose inner edges fall on
// round 1/2/5 steps, then assigns each record by valueOf. Buckets stay in the
// result even when empty. Records whose value is NaN or outside the domain are
// skipped.
func Compute(recs []core.TaskRecord, valueOf func(core.TaskRecord) float64, domain [2]float64, bucketCount int) []Bin {
	if len(recs) == 0 {
		return nil
	}

	x0, x1 := domain[0], domain[1]
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	thresholds := Thresholds(x0, x1, bucketCount)

	bins := make([]Bin, len(thresholds)+1)
	for i := range bins {
		bins[i].X0 = x0
		if i > 0 {
			bins[i].X0 = thresholds[i-1]
		}
		bins[i].X1 = x1
		if i < len(thresholds) {
			bins[i].X1 = thresholds[i]
		}
	}

	for _, r := range recs {
		v := valueOf(r)
		if math.IsNaN(v) || v < x0 || v > x1 {
			continue
		}
		idx := sort.Search(len(thresholds), func(i int) bool { return thresholds[i] > v })
		bins[idx].Records = append(bins[idx].Records, r)
	}
	return bins
}

// Thresholds returns the inner bucket edges for [x0, x1], strictly inside the
// domain. An empty result means a single bucket.
func Thresholds(x0, x1 float64, bucketCount int) []float64 {
	step := scale.TickStep(x0, x1, bucketCount)
	if !(step > 0) || math.IsInf(step, 0) {
		return nil
	}

	start := math.Ceil(x0/step) * step
	n := int(math.Max(0, math.Ceil((x1-start)/step)))
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t := start + float64(i)*step
		if t <= x0 || t > x1 {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MaxLen returns the size of the largest bin.
func MaxLen(bins []Bin) int {
	most := 0
	for _, b := range bins {
		most = max(most, b.Len())
	}
	return most
}
