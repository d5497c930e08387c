// Package scale maps numeric data domains onto screen ranges.
package scale

import (
	"math"
	"strconv"
	"strings"
)

const defaultNiceCount = 10

// Linear is an unclamped linear mapping from a domain onto a range. It is
// immutable once built; a nice domain is fixed at construction.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a scale. With nice set, the domain is first extended
// outward to round tick boundaries.
func NewLinear(domain, rng [2]float64, nice bool) Linear {
	if nice {
		domain = Nice(domain, defaultNiceCount)
	}
	return Linear{d0: domain[0], d1: domain[1], r0: rng[0], r1: rng[1]}
}

func (s Linear) Domain() [2]float64 { return [2]float64{s.d0, s.d1} }
func (s Linear) Range() [2]float64  { return [2]float64{s.r0, s.r1} }

// Map extrapolates for values outside the domain. A single-point domain maps
// every input to the start of the range.
func (s Linear) Map(x float64) float64 {
	span := s.d1 - s.d0
	if span == 0 {
		return s.r0
	}
	return s.r0 + (x-s.d0)/span*(s.r1-s.r0)
}

// Invert is the inverse of Map.
func (s Linear) Invert(y float64) float64 {
	span := s.r1 - s.r0
	if span == 0 || s.d1 == s.d0 {
		return s.d0
	}
	return s.d0 + (y-s.r0)/span*(s.d1-s.d0)
}

func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.d0, s.d1, count)
}

// TickFormat returns a formatter with just enough decimals for the tick step.
func (s Linear) TickFormat(count int) func(float64) string {
	step := math.Abs(TickStep(s.d0, s.d1, count))
	precision := 0
	if step > 0 && step < 1 {
		digits := strconv.FormatFloat(step, 'f', -1, 64)
		if dot := strings.IndexByte(digits, '.'); dot >= 0 {
			precision = len(digits) - dot - 1
		}
	}
	return func(v float64) string {
		if v == 0 {
			v = 0 // normalise -0
		}
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}

// Nice extends domain outward so both ends fall on a tick step. Running it on
// an already nice domain returns the same domain.
func Nice(domain [2]float64, count int) [2]float64 {
	start, stop := domain[0], domain[1]
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	var prev float64
	for i := 0; i < 10; i++ {
		step := TickIncrement(start, stop, count)
		if step == prev {
			break
		}
		if step > 0 {
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		} else {
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		}
		prev = step
	}

	if reverse {
		return [2]float64{stop, start}
	}
	return [2]float64{start, stop}
}
