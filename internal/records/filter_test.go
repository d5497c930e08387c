package records

import (
	"math"
	"testing"

	"github.com/janekbaraniewski/hourslens/internal/core"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func rec(summary string, actual float64) core.TaskRecord {
	return core.TaskRecord{Summary: summary, HoursActual: actual, HoursEstimate: actual}
}

func TestFilterDuplicatePrecedence(t *testing.T) {
	in := []core.TaskRecord{rec("S", 5), rec("S", 3), rec("S", 8)}

	out, stats := FilterWithStats(in, Thresholds{MinHoursActual: 0, MaxAbsDiff: 50})
	if len(out) != 2 {
		t.Fatalf("kept %d records, want 2: %+v", len(out), out)
	}
	if out[0].HoursActual != 5 || out[1].HoursActual != 8 {
		t.Fatalf("kept %+v, want hours 5 then 8", out)
	}
	if stats.Duplicates != 1 {
		t.Errorf("duplicates = %d, want 1", stats.Duplicates)
	}
}

func TestFilterDuplicatePrecedenceWithDefaultThreshold(t *testing.T) {
	in := []core.TaskRecord{rec("S", 5), rec("S", 3), rec("S", 8)}
	if out := Filter(in); len(out) != 0 {
		t.Fatalf("Filter() = %+v, want nothing above 10 hours", out)
	}

	// The lower duplicate passes the hours threshold on its own and is still
	// dropped because it does not beat the running maximum.
	in = []core.TaskRecord{rec("S", 15), rec("S", 13), rec("S", 18)}
	out, stats := FilterWithStats(in, DefaultThresholds())
	if len(out) != 2 || out[0].HoursActual != 15 || out[1].HoursActual != 18 {
		t.Fatalf("Filter() = %+v, want hours 15 and 18", out)
	}
	if stats.Duplicates != 1 || stats.ShortTasks != 0 {
		t.Errorf("stats = %+v, want 1 duplicate and no short tasks", stats)
	}
}

func TestFilterZeroRunningMaxCountsAsUnseen(t *testing.T) {
	// A blank HoursActual reads as 0; the next record for that summary is not
	// a duplicate of it.
	out, stats := FilterWithStats([]core.TaskRecord{rec("S", 0), rec("S", 0), rec("S", 12)}, DefaultThresholds())
	if len(out) != 1 || out[0].HoursActual != 12 {
		t.Fatalf("kept %+v, want only the 12h record", out)
	}
	if stats.Duplicates != 0 || stats.ShortTasks != 2 {
		t.Errorf("stats = %+v, want 0 duplicates and 2 short tasks", stats)
	}
}

func TestFilterWithCustomThresholds(t *testing.T) {
	in := []core.TaskRecord{
		{Summary: "a", HoursEstimate: 4, HoursActual: 6},
		{Summary: "b", HoursEstimate: 30, HoursActual: 8},
		{Summary: "c", HoursEstimate: 2, HoursActual: 3},
		{Summary: "d", HoursEstimate: 25, HoursActual: 5},
	}
	th := Thresholds{MinHoursActual: 4, MaxAbsDiff: 20}

	out := FilterWith(in, th)
	if len(out) != 2 || out[0].Summary != "a" || out[1].Summary != "d" {
		t.Fatalf("FilterWith() = %+v, want a and d", out)
	}
	if got := Filter(in); len(got) != 0 {
		t.Fatalf("Filter() = %+v, want nothing with default thresholds", got)
	}
}

func TestFilterTieWithRunningMaxIsDropped(t *testing.T) {
	out := Filter([]core.TaskRecord{rec("S", 20), rec("S", 20)})
	if len(out) != 1 {
		t.Fatalf("kept %d records, want 1", len(out))
	}
}

func TestFilterShortDuplicateStillRaisesRunningMax(t *testing.T) {
	// 9 is below the threshold but becomes the running max, so 8 is a duplicate.
	out, stats := FilterWithStats([]core.TaskRecord{rec("S", 9), rec("S", 8), rec("S", 12)}, DefaultThresholds())
	if len(out) != 1 || out[0].HoursActual != 12 {
		t.Fatalf("Filter() = %+v, want only the 12h record", out)
	}
	if stats.ShortTasks != 1 || stats.Duplicates != 1 {
		t.Errorf("stats = %+v, want 1 short task and 1 duplicate", stats)
	}
}

func TestFilterNaNRunningMaxDoesNotBlockLaterRecord(t *testing.T) {
	out := Filter([]core.TaskRecord{rec("S", math.NaN()), rec("S", 20)})
	if len(out) != 1 || out[0].HoursActual != 20 {
		t.Fatalf("Filter() = %+v, want the 20h record", out)
	}
}

func TestFilterRangeBoundary(t *testing.T) {
	tests := []struct {
		name     string
		estimate float64
		keep     bool
	}{
		{name: "over by exactly 50", estimate: 70, keep: true},
		{name: "under by exactly 50", estimate: -30, keep: true},
		{name: "over by 50.0001", estimate: 70.0001, keep: false},
		{name: "under by 50.0001", estimate: -30.0001, keep: false},
		{name: "nan estimate", estimate: math.NaN(), keep: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.TaskRecord{Summary: tt.name, HoursActual: 20, HoursEstimate: tt.estimate}
			out := Filter([]core.TaskRecord{r})
			if got := len(out) == 1; got != tt.keep {
				t.Errorf("kept = %v, want %v (diff %v)", got, tt.keep, r.Diff())
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	in := []core.TaskRecord{rec("c", 30), rec("a", 11), rec("b", 5), rec("d", 40)}
	out := Filter(in)
	want := []string{"c", "a", "d"}
	if len(out) != len(want) {
		t.Fatalf("len = %d, want %d", len(out), len(want))
	}
	for i, w := range want {
		if out[i].Summary != w {
			t.Errorf("out[%d] = %q, want %q", i, out[i].Summary, w)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	out, stats := FilterWithStats(nil, DefaultThresholds())
	if len(out) != 0 || stats.Input != 0 || stats.Kept != 0 {
		t.Fatalf("FilterWithStats(nil) = %v, %+v", out, stats)
	}
}

func TestFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 40

	properties := gopter.NewProperties(parameters)

	genRecord := gopter.CombineGens(
		gen.OneConstOf("a", "b", "c", "d", "e"),
		gen.Float64Range(-80, 120),
		gen.Float64Range(0, 120),
	).Map(func(v []interface{}) core.TaskRecord {
		return core.TaskRecord{
			Summary:       v[0].(string),
			HoursEstimate: v[1].(float64),
			HoursActual:   v[2].(float64),
		}
	})

	properties.Property("retained records satisfy the thresholds", prop.ForAll(
		func(in []core.TaskRecord) bool {
			for _, r := range Filter(in) {
				if !(r.HoursActual > 10) || r.Diff() < -50 || r.Diff() > 50 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genRecord),
	))

	properties.Property("each summary keeps strictly increasing actual hours", prop.ForAll(
		func(in []core.TaskRecord) bool {
			last := map[string]float64{}
			for _, r := range Filter(in) {
				if prev, ok := last[r.Summary]; ok && !(r.HoursActual > prev) {
					return false
				}
				last[r.Summary] = r.HoursActual
			}
			return true
		},
		gen.SliceOf(genRecord),
	))

	properties.Property("stats add up", prop.ForAll(
		func(in []core.TaskRecord) bool {
			out, s := FilterWithStats(in, DefaultThresholds())
			return s.Kept == len(out) && s.Input == s.Duplicates+s.ShortTasks+s.OutOfRange+s.Kept
		},
		gen.SliceOf(genRecord),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
