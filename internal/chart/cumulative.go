package chart

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

// CumulativeOptions controls CumulativeHistogram.
type CumulativeOptions struct {
	BinWidth float64
	Clip99   bool
	XMin     float64
	Style    Style
}

// CumulativeHistogram builds step-line cumulative distributions of column
// for both groups on shared bins. Each curve is normalised over the group's
// values inside the bins, so it ends at 100%.
func CumulativeHistogram(regular, super *dataset.Dataset, column string, opt CumulativeOptions) (*Figure, error) {
	reg, sup, err := groupValues(regular, super, column)
	if err != nil {
		return nil, err
	}
	edges, err := sharedEdges(reg, sup, opt.XMin, opt.BinWidth, opt.Clip99)
	if err != nil {
		return nil, err
	}
	style := opt.Style.orDefault()

	var series []Series
	for _, g := range []struct {
		group Group
		vals  []float64
	}{{Regular, reg}, {Super, sup}} {
		counts := binCounts(g.vals, edges)
		total := floats.Sum(counts)
		if total == 0 {
			return nil, &analysis.InvalidInputError{
				Param:  "range",
				Reason: fmt.Sprintf("no %s values of %q fall in [%v, %v]", g.group, column, edges[0], edges[len(edges)-1]),
			}
		}
		cum := floats.CumSum(make([]float64, len(counts)), counts)
		floats.Scale(1/total, cum)
		gs := style.For(g.group)
		series = append(series, Series{Group: g.group, Label: gs.Label, Color: gs.Color, Heights: cum})
	}

	return &Figure{
		ID:     uuid.NewString(),
		Kind:   KindCumulative,
		Title:  titleFor(column),
		XLabel: capitalize(column),
		YLabel: "Percentage of listings - Cumulative (%)",
		Edges:  edges,
		XTicks: edges,
		YMax:   headroom,
		Series: series,
		Legend: legendFor(style),
		Grid:   true,
	}, nil
}
