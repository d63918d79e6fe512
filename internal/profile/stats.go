package profile

import (
	"math"
	"sort"
)

// Stat is an optional statistic. Undefined results (for example the standard
// deviation of fewer than two samples) carry Valid=false rather than zero or
// NaN, so downstream serialization stays unambiguous.
type Stat struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Defined wraps a computed value.
func Defined(v float64) Stat { return Stat{Value: v, Valid: true} }

// Undefined is the explicit not-applicable / not-computable marker.
func Undefined() Stat { return Stat{} }

func sortedCopy(vals []float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp
}

// Quantile returns the q-th quantile of an ascending-sorted slice using
// linear interpolation between order statistics at the (n+1)q plotting
// position, clamped to the extremes. With this method the quartiles of
// [1 2 2 3 4 5 100] are Q1=2 and Q3=5.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	pos := q*float64(n+1) - 1
	if pos <= 0 {
		return sorted[0]
	}
	if pos >= float64(n-1) {
		return sorted[n-1]
	}
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Median returns the median of an ascending-sorted slice.
func Median(sorted []float64) float64 {
	return Quantile(sorted, 0.5)
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// SampleStd returns the sample standard deviation (N-1 denominator), or an
// undefined Stat when fewer than two values are given.
func SampleStd(vals []float64) Stat {
	if len(vals) < 2 {
		return Undefined()
	}
	m := mean(vals)
	var sum float64
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return Defined(math.Sqrt(sum / float64(len(vals)-1)))
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
