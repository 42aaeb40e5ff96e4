package chart

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

func group(t *testing.T, column string, xs ...float64) *dataset.Dataset {
	t.Helper()
	vals := make([]dataset.Value, len(xs))
	for i, x := range xs {
		vals[i] = dataset.Num(x)
	}
	d, err := dataset.New(dataset.Column{Name: column, Values: vals})
	require.NoError(t, err)
	return d
}

func TestBinEdges(t *testing.T) {
	edges, err := BinEdges(0, 100, 10)
	require.NoError(t, err)
	assert.Len(t, edges, 11)
	assert.Equal(t, 100.0, edges[10])

	edges, err = BinEdges(0, 101, 10)
	require.NoError(t, err)
	assert.Equal(t, 110.0, edges[len(edges)-1])

	edges, err = BinEdges(5, 6, 0.25)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5.25, 5.5, 5.75, 6}, edges)
}

func TestBinEdges_Invalid(t *testing.T) {
	var inv *analysis.InvalidInputError
	_, err := BinEdges(0, 10, 0)
	assert.True(t, errors.As(err, &inv))
	_, err = BinEdges(0, 10, -1)
	assert.True(t, errors.As(err, &inv))
	_, err = BinEdges(10, 10, 1)
	assert.True(t, errors.As(err, &inv))
	_, err = BinEdges(0, 10, math.NaN())
	assert.True(t, errors.As(err, &inv))
}

func TestBinEdges_SpanAndSpacingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		reg := make([]float64, 1+rng.Intn(50))
		sup := make([]float64, 1+rng.Intn(50))
		for j := range reg {
			reg[j] = rng.Float64() * 500
		}
		for j := range sup {
			sup[j] = rng.Float64() * 800
		}
		w := 0.5 + rng.Float64()*40
		clip := i%2 == 0
		upper := RangeUpper(reg, sup, clip)
		edges, err := BinEdges(0, upper, w)
		require.NoError(t, err)
		assert.Equal(t, 0.0, edges[0])
		assert.GreaterOrEqual(t, edges[len(edges)-1], upper)
		for k := 1; k < len(edges); k++ {
			assert.InDelta(t, w, edges[k]-edges[k-1], 1e-9)
		}
	}
}

func TestRangeUpper(t *testing.T) {
	reg := []float64{1, 2, 100.5}
	sup := []float64{3, 80}
	assert.Equal(t, 101.0, RangeUpper(reg, sup, false))

	many := make([]float64, 101)
	for i := range many {
		many[i] = float64(i)
	}
	assert.InDelta(t, 99.0, RangeUpper(many, []float64{5}, true), 1e-9)
}

func TestBinCounts(t *testing.T) {
	counts := binCounts([]float64{0, 5, 10, 20, 25, -1, 19.999}, []float64{0, 10, 20})
	assert.Equal(t, []float64{2, 3}, counts)
}

func TestOverlaidHistogram(t *testing.T) {
	reg := group(t, "price", 10, 20, 30, 40)
	sup := group(t, "price", 15, 25)

	fig, err := OverlaidHistogram(reg, sup, "price", DefaultHistogramOptions(10))
	require.NoError(t, err)

	assert.Equal(t, KindHistogram, fig.Kind)
	assert.Equal(t, "Price: Superhosts vs. Regular hosts", fig.Title)
	assert.Equal(t, "Price", fig.XLabel)
	assert.Equal(t, "Percentage of listings (%)", fig.YLabel)
	assert.Equal(t, []float64{0, 10, 20, 30, 40, 50}, fig.Edges)
	assert.NotEmpty(t, fig.ID)

	r, ok := fig.SeriesFor(Regular)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.25, 0.25, 0.25}, r.Heights, 1e-12)
	s, ok := fig.SeriesFor(Super)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0, 0.5, 0.5, 0, 0}, s.Heights, 1e-12)
	assert.InDelta(t, 0.525, fig.YMax, 1e-12)

	require.Len(t, fig.Markers, 6)
	assert.Equal(t, "1. Quartile: 17.50", fig.Markers[0].Label)
	assert.Equal(t, Regular, fig.Markers[0].Group)
	assert.Equal(t, "2. Quartile: 20.00", fig.Markers[4].Label)
	assert.Equal(t, Super, fig.Markers[4].Group)
	assert.Equal(t, ColorSuper, fig.Markers[4].Color)
	for i := 1; i < len(fig.Markers); i++ {
		assert.InDelta(t, 0.01, fig.Markers[i-1].LabelY-fig.Markers[i].LabelY, 1e-12)
	}
}

func TestOverlaidHistogram_ClipAndNoPercentiles(t *testing.T) {
	vals := make([]float64, 0, 101)
	for i := 0; i <= 100; i++ {
		vals = append(vals, float64(i))
	}
	vals[100] = 10000 // outlier
	reg := group(t, "price", vals...)
	sup := group(t, "price", 1, 2, 3)

	fig, err := OverlaidHistogram(reg, sup, "price", HistogramOptions{BinWidth: 10, Clip99: true})
	require.NoError(t, err)
	assert.Empty(t, fig.Markers)
	assert.Less(t, fig.Edges[len(fig.Edges)-1], 10000.0)
	r, _ := fig.SeriesFor(Regular)
	var sum float64
	for _, h := range r.Heights {
		sum += h
	}
	// the clipped outlier still counts toward the group size
	assert.Less(t, sum, 1.0)
}

func TestLegendMatchesSeriesColors(t *testing.T) {
	reg := group(t, "price", 10, 20, 30)
	sup := group(t, "price", 15, 25, 35)
	custom := Style{
		Regular: GroupStyle{Label: "Hosts", Color: ColorSuper},
		Super:   GroupStyle{Label: "Stars", Color: ColorRegular},
	}

	for _, style := range []Style{DefaultStyle(), custom} {
		h, err := OverlaidHistogram(reg, sup, "price", HistogramOptions{BinWidth: 5, Style: style})
		require.NoError(t, err)
		c, err := CumulativeHistogram(reg, sup, "price", CumulativeOptions{BinWidth: 5, Style: style})
		require.NoError(t, err)
		for _, fig := range []*Figure{h, c} {
			require.Len(t, fig.Legend, 2)
			for _, e := range fig.Legend {
				found := false
				for _, s := range fig.Series {
					if s.Label == e.Label {
						found = true
						assert.Equal(t, e.Color, s.Color, "legend %q", e.Label)
					}
				}
				assert.True(t, found, "legend %q has no series", e.Label)
			}
			r, _ := fig.SeriesFor(Regular)
			assert.Equal(t, style.Regular.Label, r.Label)
		}
	}
}

func TestCumulativeHistogram(t *testing.T) {
	reg := group(t, "review_scores_rating", 60, 70, 80, 90, 100)
	sup := group(t, "review_scores_rating", 90, 95, 100, 100)

	fig, err := CumulativeHistogram(reg, sup, "review_scores_rating", CumulativeOptions{BinWidth: 5})
	require.NoError(t, err)
	assert.Equal(t, KindCumulative, fig.Kind)
	assert.True(t, fig.Grid)
	assert.Equal(t, "Review_scores_rating: Superhosts vs. Regular hosts", fig.Title)
	assert.Equal(t, "Percentage of listings - Cumulative (%)", fig.YLabel)

	for _, s := range fig.Series {
		assert.InDelta(t, 1.0, s.Heights[len(s.Heights)-1], 1e-12)
		for i := 1; i < len(s.Heights); i++ {
			assert.GreaterOrEqual(t, s.Heights[i], s.Heights[i-1])
		}
	}
	s, _ := fig.SeriesFor(Super)
	// 90 falls in [90,95), the first non-zero bin for superhosts
	assert.InDelta(t, 0.25, s.Heights[18], 1e-12)
}

func TestCharts_FailBeforeBuilding(t *testing.T) {
	reg := group(t, "price", 10, 20)
	empty, err := dataset.New(dataset.Column{Name: "price", Values: []dataset.Value{dataset.Null()}})
	require.NoError(t, err)

	fig, err := OverlaidHistogram(reg, empty, "price", DefaultHistogramOptions(10))
	assert.Nil(t, fig)
	var ec *analysis.EmptyColumnError
	assert.True(t, errors.As(err, &ec))
	assert.Contains(t, err.Error(), "super group")

	_, err = CumulativeHistogram(empty, reg, "price", CumulativeOptions{BinWidth: 10})
	require.True(t, errors.As(err, &ec))
	assert.Contains(t, err.Error(), "regular group")

	fig, err = CumulativeHistogram(reg, reg, "nope", CumulativeOptions{BinWidth: 10})
	assert.Nil(t, fig)
	var nf *dataset.ColumnNotFoundError
	assert.True(t, errors.As(err, &nf))

	fig, err = OverlaidHistogram(reg, reg, "price", HistogramOptions{BinWidth: 0})
	assert.Nil(t, fig)
	var inv *analysis.InvalidInputError
	assert.True(t, errors.As(err, &inv))

	fig, err = CumulativeHistogram(reg, group(t, "price", 1, 2), "price", CumulativeOptions{BinWidth: 1, XMin: 15})
	assert.Nil(t, fig)
	assert.True(t, errors.As(err, &inv))
}

func TestGonumRenderer(t *testing.T) {
	reg := group(t, "price", 10, 20, 30, 40, 55)
	sup := group(t, "price", 15, 25, 45)
	hist, err := OverlaidHistogram(reg, sup, "price", DefaultHistogramOptions(10))
	require.NoError(t, err)
	cum, err := CumulativeHistogram(reg, sup, "price", CumulativeOptions{BinWidth: 10})
	require.NoError(t, err)

	r := NewGonumRenderer(6, 4)
	for _, fig := range []*Figure{hist, cum} {
		var buf bytes.Buffer
		require.NoError(t, r.Render(fig, &buf, "svg"))
		assert.Contains(t, buf.String(), "<svg")
		assert.Contains(t, buf.String(), "Superhosts")
	}

	dir := t.TempDir()
	p := filepath.Join(dir, "out", "price.png")
	require.NoError(t, Save(r, hist, p))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))

	assert.Error(t, r.Render(hist, io.Discard, "bmp"))
	assert.Error(t, r.Render(&Figure{}, io.Discard, "png"))
}

type recordingRenderer struct{ format string }

func (r *recordingRenderer) Render(_ *Figure, w io.Writer, format string) error {
	r.format = format
	_, err := io.WriteString(w, "ok")
	return err
}

func TestSave_FormatFromExtension(t *testing.T) {
	rec := &recordingRenderer{}
	dir := t.TempDir()
	require.NoError(t, Save(rec, &Figure{}, filepath.Join(dir, "chart.SVG")))
	assert.Equal(t, "svg", rec.format)
	assert.Error(t, Save(rec, &Figure{}, filepath.Join(dir, "chart")))
}

func TestPercentTicks(t *testing.T) {
	ticks := percentTicks{}.Ticks(0, 0.5)
	var labels []string
	for _, tk := range ticks {
		if tk.Label != "" {
			labels = append(labels, tk.Label)
		}
	}
	require.NotEmpty(t, labels)
	for _, l := range labels {
		assert.True(t, strings.HasSuffix(l, "%"), l)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Review_scores_rating", capitalize("review_scores_RATING"))
	assert.Equal(t, "", capitalize(""))
}

func TestBinEdges_NonFiniteAndTooMany(t *testing.T) {
	var inv *analysis.InvalidInputError
	for _, r := range [][2]float64{{0, math.Inf(1)}, {math.Inf(-1), 10}, {math.NaN(), 10}} {
		_, err := BinEdges(r[0], r[1], 10)
		assert.True(t, errors.As(err, &inv), "%v", r)
	}
	_, err := BinEdges(0, 1e9, 1e-3)
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "bin width", inv.Param)
}

func TestCharts_InfCellFailsWithError(t *testing.T) {
	d, err := dataset.ReadCSV(strings.NewReader("price,host_is_superhost\n10,t\n20,t\ninf,f\n30,f\n"), ',')
	require.NoError(t, err)
	regular, super, err := d.Partition("host_is_superhost", "t")
	require.NoError(t, err)

	fig, err := OverlaidHistogram(regular, super, "price", DefaultHistogramOptions(10))
	assert.Nil(t, fig)
	var nn *dataset.NotNumericError
	require.True(t, errors.As(err, &nn))
	assert.Contains(t, err.Error(), "regular group")

	fig, err = CumulativeHistogram(regular, super, "price", CumulativeOptions{BinWidth: 10})
	assert.Nil(t, fig)
	assert.True(t, errors.As(err, &nn))

	// Infinity built in code is rejected the same way.
	_, err = OverlaidHistogram(group(t, "price", 1, math.Inf(1)), group(t, "price", 1, 2), "price", DefaultHistogramOptions(10))
	assert.True(t, errors.As(err, &nn))
}
