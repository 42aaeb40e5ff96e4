package analysis

import (
	"math"
	"sort"
)

// Quantile returns the q-quantile of an ascending slice using linear
// interpolation between the closest ranks at position q*(n-1).
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Quantiles sorts a copy of vals and returns one quantile per q.
func Quantiles(vals []float64, qs ...float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	out := make([]float64, len(qs))
	for i, q := range qs {
		out[i] = Quantile(cp, q)
	}
	return out
}
