package core

import "math"

// TaskRecord is one raw observation loaded from a record source.
// Numeric fields may be NaN when the source text could not be parsed.
type TaskRecord struct {
	Summary              string  `json:"summary" parquet:"summary"`
	HoursEstimate        float64 `json:"hours_estimate" parquet:"hours_estimate"`
	HoursActual          float64 `json:"hours_actual" parquet:"hours_actual"`
	DeveloperHoursActual float64 `json:"developer_hours_actual" parquet:"developer_hours_actual"`
}

// Diff is the difference metric: positive when the task was over-estimated.
func (r TaskRecord) Diff() float64 {
	return r.HoursEstimate - r.HoursActual
}

// DeveloperShare is DeveloperHoursActual / HoursActual, with NaN, Inf and
// zero-duration results collapsed to 0.
func (r TaskRecord) DeveloperShare() float64 {
	v := r.DeveloperHoursActual / r.HoursActual
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// DiffOf is the value accessor used when binning by the difference metric.
func DiffOf(r TaskRecord) float64 { return r.Diff() }
