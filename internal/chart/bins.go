package chart

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

// MaxBins caps the number of bins BinEdges will build.
const MaxBins = 1_000_000

// BinEdges returns xmin, xmin+width, ... up to the first edge at or beyond upper.
func BinEdges(xmin, upper, width float64) ([]float64, error) {
	if !(width > 0) || math.IsInf(width, 0) {
		return nil, &analysis.InvalidInputError{Param: "bin width", Reason: fmt.Sprintf("%v must be positive", width)}
	}
	if math.IsInf(xmin, 0) || math.IsNaN(xmin) || math.IsInf(upper, 0) || math.IsNaN(upper) {
		return nil, &analysis.InvalidInputError{Param: "range", Reason: fmt.Sprintf("[%v, %v] is not finite", xmin, upper)}
	}
	if !(upper > xmin) {
		return nil, &analysis.InvalidInputError{Param: "range", Reason: fmt.Sprintf("upper bound %v is not above minimum %v", upper, xmin)}
	}
	span := math.Ceil((upper - xmin) / width)
	if span > MaxBins {
		return nil, &analysis.InvalidInputError{
			Param:  "bin width",
			Reason: fmt.Sprintf("%v over [%v, %v] gives more than %d bins", width, xmin, upper, MaxBins),
		}
	}
	n := int(span)
	edges := make([]float64, n+1)
	for k := range edges {
		edges[k] = xmin + float64(k)*width
	}
	// Guard against (upper-xmin)/width rounding down by one ulp.
	if edges[n] < upper {
		edges = append(edges, xmin+float64(n+1)*width)
	}
	return edges, nil
}

// RangeUpper returns the right end of the shared x range: the larger of the
// two 99th percentiles when clip99 is set, otherwise one unit above the
// larger of the two integer-truncated maxima.
func RangeUpper(regular, super []float64, clip99 bool) float64 {
	if clip99 {
		r := analysis.Quantiles(regular, 0.99)[0]
		s := analysis.Quantiles(super, 0.99)[0]
		return math.Max(r, s)
	}
	return math.Max(math.Floor(floats.Max(regular))+1, math.Floor(floats.Max(super))+1)
}

// binCounts counts vals per bin. Bins are half-open except the last, which
// includes its right edge; values outside the edges are ignored.
func binCounts(vals, edges []float64) []float64 {
	counts := make([]float64, len(edges)-1)
	last := len(edges) - 1
	for _, v := range vals {
		if v < edges[0] || v > edges[last] {
			continue
		}
		i := sort.SearchFloat64s(edges, v)
		switch {
		case i == last:
			i = last - 1
		case edges[i] != v:
			i--
		}
		counts[i]++
	}
	return counts
}

// groupValues loads the numeric values of column for both groups.
func groupValues(regular, super *dataset.Dataset, column string) (reg, sup []float64, err error) {
	reg, err = regular.Floats(column)
	if err != nil {
		return nil, nil, fmt.Errorf("regular group: %w", err)
	}
	if len(reg) == 0 {
		return nil, nil, fmt.Errorf("regular group: %w", &analysis.EmptyColumnError{Column: column})
	}
	sup, err = super.Floats(column)
	if err != nil {
		return nil, nil, fmt.Errorf("super group: %w", err)
	}
	if len(sup) == 0 {
		return nil, nil, fmt.Errorf("super group: %w", &analysis.EmptyColumnError{Column: column})
	}
	return reg, sup, nil
}

// sharedEdges computes the bins both groups are drawn on.
func sharedEdges(reg, sup []float64, xmin, width float64, clip99 bool) ([]float64, error) {
	return BinEdges(xmin, RangeUpper(reg, sup, clip99), width)
}
