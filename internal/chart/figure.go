package chart

import (
	"image/color"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind selects how a Figure's series are drawn.
type Kind int

const (
	// KindHistogram draws series as overlaid translucent bars.
	KindHistogram Kind = iota
	// KindCumulative draws series as step lines.
	KindCumulative
)

// Series is one group's bar heights or cumulative levels, one per bin.
// Heights are fractions of one; the y axis renders them as percentages.
type Series struct {
	Group   Group
	Label   string
	Color   color.RGBA
	Heights []float64
}

// Marker is a labelled vertical line at a group percentile.
type Marker struct {
	Group  Group
	X      float64
	Color  color.RGBA
	Label  string
	LabelX float64
	LabelY float64
}

// LegendEntry pairs a label with the color it is drawn in.
type LegendEntry struct {
	Label string
	Color color.RGBA
}

// Figure is a complete, backend-independent description of a chart.
// Every value needed to draw it is computed before the Figure is returned.
type Figure struct {
	ID      string
	Kind    Kind
	Title   string
	XLabel  string
	YLabel  string
	Edges   []float64
	XTicks  []float64
	YMax    float64
	Series  []Series
	Markers []Marker
	Legend  []LegendEntry
	Grid    bool
	// Opacity of histogram bar fills in [0,1].
	Opacity float64
}

// BinWidth returns the spacing of the Figure's edges.
func (f *Figure) BinWidth() float64 {
	if len(f.Edges) < 2 {
		return 0
	}
	return f.Edges[1] - f.Edges[0]
}

// SeriesFor returns the series of g, if present.
func (f *Figure) SeriesFor(g Group) (Series, bool) {
	for _, s := range f.Series {
		if s.Group == g {
			return s, true
		}
	}
	return Series{}, false
}

func legendFor(style Style) []LegendEntry {
	return []LegendEntry{
		{Label: style.Regular.Label, Color: style.Regular.Color},
		{Label: style.Super.Label, Color: style.Super.Color},
	}
}

// capitalize upper-cases the first letter and lower-cases the rest, so
// "review_scores_rating" becomes "Review_scores_rating".
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[n:])
}

func titleFor(column string) string {
	return capitalize(column) + ": Superhosts vs. Regular hosts"
}
