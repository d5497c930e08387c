package scale

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// TickIncrement returns the tick spacing for roughly count ticks between start
// and stop. A positive result is the step itself; a negative result -k means
// the step is 1/k, which keeps sub-unit steps exact. Zero means no step exists
// (empty span, non-positive count or non-finite input).
func TickIncrement(start, stop float64, count int) float64 {
	if count <= 0 || !(stop > start) || math.IsInf(start, 0) || math.IsInf(stop, 0) {
		return 0
	}
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// TickStep is the absolute 1/2/5 × 10^k step for roughly count intervals
// between start and stop. It is negative when stop < start and zero when the
// span is empty.
func TickStep(start, stop float64, count int) float64 {
	if count <= 0 || start == stop || math.IsNaN(start) || math.IsNaN(stop) {
		return 0
	}
	step0 := math.Abs(stop-start) / float64(count)
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	errRatio := step0 / step1
	switch {
	case errRatio >= e10:
		step1 *= 10
	case errRatio >= e5:
		step1 *= 5
	case errRatio >= e2:
		step1 *= 2
	}
	if stop < start {
		return -step1
	}
	return step1
}

// Ticks returns nicely rounded values between start and stop inclusive.
func Ticks(start, stop float64, count int) []float64 {
	if start == stop && count > 0 {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	step := TickIncrement(start, stop, count)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}

	var ticks []float64
	if step > 0 {
		lo, hi := math.Ceil(start/step), math.Floor(stop/step)
		n := int(math.Ceil(hi - lo + 1))
		ticks = make([]float64, 0, max(n, 0))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo+float64(i))*step)
		}
	} else {
		inv := -step
		lo, hi := math.Ceil(start*inv), math.Floor(stop*inv)
		n := int(math.Ceil(hi - lo + 1))
		ticks = make([]float64, 0, max(n, 0))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo+float64(i))/inv)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// Extent returns the minimum and maximum of the non-NaN values.
func Extent(values []float64) (lo, hi float64, ok bool) {
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}

// Mean averages the non-NaN values. ok is false when there are none.
func Mean(values []float64) (mean float64, ok bool) {
	var sum float64
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
