package binning

import (
	"fmt"
	"testing"

	"github.com/janekbaraniewski/hourslens/internal/core"
	"github.com/janekbaraniewski/hourslens/internal/scale"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func diffRecords(diffs ...float64) []core.TaskRecord {
	out := make([]core.TaskRecord, 0, len(diffs))
	for i, d := range diffs {
		out = append(out, core.TaskRecord{
			Summary:       fmt.Sprintf("task-%d", i),
			HoursActual:   20,
			HoursEstimate: 20 + d,
		})
	}
	return out
}

func TestBinEdges(t *testing.T) {
	bins := Compute(diffRecords(-50, 0, 49), core.DiffOf, [2]float64{-50, 50}, 30)

	if len(bins) != 20 {
		t.Fatalf("len(bins) = %d, want 20", len(bins))
	}
	if bins[0].X0 != -50 || bins[len(bins)-1].X1 != 50 {
		t.Fatalf("bins span [%v, %v], want [-50, 50]", bins[0].X0, bins[len(bins)-1].X1)
	}
	for i := 1; i < len(bins); i++ {
		if bins[i].X0 != bins[i-1].X1 {
			t.Fatalf("bin %d starts at %v, previous ends at %v", i, bins[i].X0, bins[i-1].X1)
		}
		if bins[i].Width() != 5 {
			t.Errorf("bin %d width = %v, want 5", i, bins[i].Width())
		}
	}
}

func TestBinAssignment(t *testing.T) {
	bins := Compute(diffRecords(-50, 0, 50, 4.999, 5), core.DiffOf, [2]float64{-50, 50}, 30)

	tests := []struct {
		summary string
		bin     int
	}{
		{summary: "task-0", bin: 0},
		{summary: "task-1", bin: 10},
		{summary: "task-2", bin: 19},
		{summary: "task-3", bin: 10},
		{summary: "task-4", bin: 11},
	}
	for _, tt := range tests {
		found := -1
		for i, b := range bins {
			for _, r := range b.Records {
				if r.Summary == tt.summary {
					found = i
				}
			}
		}
		if found != tt.bin {
			t.Errorf("%s landed in bin %d, want %d", tt.summary, found, tt.bin)
		}
	}
}

func TestBinKeepsEmptyBuckets(t *testing.T) {
	bins := Compute(diffRecords(-50, 50), core.DiffOf, [2]float64{-50, 50}, 30)
	empty := 0
	for _, b := range bins {
		if b.Len() == 0 {
			empty++
		}
	}
	if empty != len(bins)-2 {
		t.Fatalf("empty bins = %d, want %d", empty, len(bins)-2)
	}
}

func TestBinKeepsRecordOrderWithinBucket(t *testing.T) {
	bins := Compute(diffRecords(1, 2, 3), core.DiffOf, [2]float64{0, 10}, 2)
	if len(bins) != 2 || bins[0].Len() != 3 {
		t.Fatalf("bins = %+v, want two bins with all records in the first", bins)
	}
	for i, r := range bins[0].Records {
		if want := fmt.Sprintf("task-%d", i); r.Summary != want {
			t.Errorf("record %d = %s, want %s", i, r.Summary, want)
		}
	}
}

func TestBinEmptyInput(t *testing.T) {
	if bins := Compute(nil, core.DiffOf, [2]float64{0, 0}, 30); len(bins) != 0 {
		t.Fatalf("Compute(nil) = %+v, want no bins", bins)
	}
}

func TestBinSinglePointDomain(t *testing.T) {
	bins := Compute(diffRecords(3, 3, 3), core.DiffOf, [2]float64{3, 3}, 30)
	if len(bins) != 1 {
		t.Fatalf("len(bins) = %d, want 1", len(bins))
	}
	if bins[0].X0 != 3 || bins[0].X1 != 3 || bins[0].Len() != 3 {
		t.Fatalf("bin = %+v, want [3,3] holding 3 records", bins[0])
	}
}

func TestBinNonPositiveBucketCount(t *testing.T) {
	bins := Compute(diffRecords(-2, 7), core.DiffOf, [2]float64{-10, 10}, 0)
	if len(bins) != 1 || bins[0].Len() != 2 {
		t.Fatalf("bins = %+v, want a single bin with both records", bins)
	}
}

func TestMaxLen(t *testing.T) {
	bins := Compute(diffRecords(1, 1.5, 8), core.DiffOf, [2]float64{0, 10}, 5)
	if got := MaxLen(bins); got != 2 {
		t.Fatalf("MaxLen() = %d, want 2", got)
	}
	if got := MaxLen(nil); got != 0 {
		t.Fatalf("MaxLen(nil) = %d, want 0", got)
	}
}

func TestBinCompleteness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 60

	properties := gopter.NewProperties(parameters)

	properties.Property("every record lands in exactly one covering bin", prop.ForAll(
		func(diffs []float64, buckets int) bool {
			recs := diffRecords(diffs...)
			values := make([]float64, len(recs))
			for i, r := range recs {
				values[i] = r.Diff()
			}
			lo, hi, _ := scale.Extent(values)
			domain := scale.NewLinear([2]float64{lo, hi}, [2]float64{0, 1}, true).Domain()

			bins := Compute(recs, core.DiffOf, domain, buckets)
			seen := map[string]int{}
			for i, b := range bins {
				last := i == len(bins)-1
				for _, r := range b.Records {
					d := r.Diff()
					if d < b.X0 || d > b.X1 || (!last && d == b.X1) {
						return false
					}
					seen[r.Summary]++
				}
			}
			if len(seen) != len(recs) {
				return false
			}
			for _, n := range seen {
				if n != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(40, gen.Float64Range(-50, 50)).SuchThat(func(v []float64) bool { return len(v) > 0 }),
		gen.IntRange(1, 60),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
