package chart

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

// HistogramOptions controls OverlaidHistogram.
type HistogramOptions struct {
	BinWidth float64
	// Clip99 ends the x range at the larger 99th percentile instead of the maximum.
	Clip99 bool
	// Percentiles adds quartile markers for both groups.
	Percentiles bool
	XMin        float64
	Style       Style
}

// DefaultHistogramOptions enables quartile markers with the default style.
func DefaultHistogramOptions(binWidth float64) HistogramOptions {
	return HistogramOptions{BinWidth: binWidth, Percentiles: true, Style: DefaultStyle()}
}

var quartiles = []float64{0.25, 0.5, 0.75}

const (
	markerStep = 0.01
	headroom   = 1.05
)

// OverlaidHistogram builds a histogram of column for both groups on shared
// bins. Each group is normalised by its own size, so bar heights are
// within-group fractions.
func OverlaidHistogram(regular, super *dataset.Dataset, column string, opt HistogramOptions) (*Figure, error) {
	reg, sup, err := groupValues(regular, super, column)
	if err != nil {
		return nil, err
	}
	edges, err := sharedEdges(reg, sup, opt.XMin, opt.BinWidth, opt.Clip99)
	if err != nil {
		return nil, err
	}
	style := opt.Style.orDefault()

	fig := &Figure{
		ID:      uuid.NewString(),
		Kind:    KindHistogram,
		Title:   titleFor(column),
		XLabel:  capitalize(column),
		YLabel:  "Percentage of listings (%)",
		Edges:   edges,
		XTicks:  edges,
		Legend:  legendFor(style),
		Opacity: 0.5,
	}
	top := 0.0
	for _, g := range []struct {
		group Group
		vals  []float64
	}{{Regular, reg}, {Super, sup}} {
		h := binCounts(g.vals, edges)
		floats.Scale(1/float64(len(g.vals)), h)
		if m := floats.Max(h); m > top {
			top = m
		}
		gs := style.For(g.group)
		fig.Series = append(fig.Series, Series{Group: g.group, Label: gs.Label, Color: gs.Color, Heights: h})
	}
	if top == 0 {
		top = 1
	}
	fig.YMax = top * headroom

	if opt.Percentiles {
		delta := markerStep
		for _, g := range []struct {
			group Group
			vals  []float64
		}{{Regular, reg}, {Super, sup}} {
			gs := style.For(g.group)
			for i, q := range analysis.Quantiles(g.vals, quartiles...) {
				fig.Markers = append(fig.Markers, Marker{
					Group:  g.group,
					X:      q,
					Color:  gs.Color,
					Label:  fmt.Sprintf("%d. Quartile: %.2f", i+1, q),
					LabelX: q + opt.BinWidth,
					LabelY: fig.YMax - delta,
				})
				delta += markerStep
			}
		}
	}
	return fig, nil
}
