// Package records turns raw task records into the analysis set: one record per
// task summary, long enough to be meaningful, and within the plotted range.
package records

import (
	"math"

	"github.com/janekbaraniewski/hourslens/internal/core"
)

const (
	DefaultMinHoursActual = 10
	DefaultMaxAbsDiff     = 50
)

// Thresholds bounds the analysis set. MinHoursActual is exclusive and
// MaxAbsDiff is inclusive on both sides of zero.
type Thresholds struct {
	MinHoursActual float64
	MaxAbsDiff     float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinHoursActual: DefaultMinHoursActual,
		MaxAbsDiff:     DefaultMaxAbsDiff,
	}
}

// Stats counts what each filtering step removed.
type Stats struct {
	Input      int
	Duplicates int
	ShortTasks int
	OutOfRange int
	Kept       int
}

// Filter applies the default thresholds.
func Filter(recs []core.TaskRecord) []core.TaskRecord {
	out, _ := FilterWithStats(recs, DefaultThresholds())
	return out
}

func FilterWith(recs []core.TaskRecord, th Thresholds) []core.TaskRecord {
	out, _ := FilterWithStats(recs, th)
	return out
}

// FilterWithStats keeps, per summary, only records whose HoursActual beats the
// running maximum seen so far for that summary. The duplicate check runs before
// the HoursActual threshold, so a lower duplicate is dropped even when it would
// pass the threshold on its own. Ties with the running maximum are dropped.
// A stored 0 or NaN (blank or unparseable hours) does not count as a previous
// occurrence.
func FilterWithStats(recs []core.TaskRecord, th Thresholds) ([]core.TaskRecord, Stats) {
	stats := Stats{Input: len(recs)}
	if len(recs) == 0 {
		return nil, stats
	}

	maxActual := make(map[string]float64, len(recs))
	unique := make([]core.TaskRecord, 0, len(recs))
	for _, r := range recs {
		hours := r.HoursActual
		if prev, seen := maxActual[r.Summary]; seen && prev != 0 && !math.IsNaN(prev) && !(hours > prev) {
			stats.Duplicates++
			continue
		}
		maxActual[r.Summary] = hours
		if !(hours > th.MinHoursActual) {
			stats.ShortTasks++
			continue
		}
		unique = append(unique, r)
	}

	out := unique[:0]
	for _, r := range unique {
		d := r.Diff()
		if d >= -th.MaxAbsDiff && d <= th.MaxAbsDiff {
			out = append(out, r)
			continue
		}
		stats.OutOfRange++
	}
	stats.Kept = len(out)
	return out, stats
}
