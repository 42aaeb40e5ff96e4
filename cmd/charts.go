package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/hostcompare/internal/chart"
	cfgpkg "github.com/KaramelBytes/hostcompare/internal/config"
	"github.com/KaramelBytes/hostcompare/internal/dataset"
	"github.com/KaramelBytes/hostcompare/internal/utils"
)

// Flags shared by hist and cumulative.
var (
	chartBinWidth float64
	chartClip99   bool
	chartXMin     float64
	chartOutput   string
	chartFormat   string
	chartClean    string

	histPercentiles bool
)

// figureBuilder turns the two groups of one column into a figure.
type figureBuilder func(regular, super *dataset.Dataset, column string, c cfgpkg.Global) (*chart.Figure, error)

var histCmd = &cobra.Command{
	Use:   "hist <file> <column> [column...]",
	Short: "Overlaid percent histogram of a column for regular hosts and superhosts",
	Example: `  hostcompare hist listings.csv price --bin-width 25 --clip99
  hostcompare hist listings.csv review_scores_rating --bin-width 1 --xmin 80 -o rating.svg
  hostcompare hist listings.csv price host_response_rate --clip99`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCharts(cmd, args, "hist", func(regular, super *dataset.Dataset, column string, c cfgpkg.Global) (*chart.Figure, error) {
			opt := chart.DefaultHistogramOptions(c.BinWidth)
			opt.Clip99 = c.Clip99
			opt.XMin = c.XMin
			opt.Percentiles = c.Percentiles
			fig, err := chart.OverlaidHistogram(regular, super, column, opt)
			if err != nil {
				return nil, fmt.Errorf("histogram %s: %w", column, err)
			}
			return fig, nil
		})
	},
}

var cumulativeCmd = &cobra.Command{
	Use:     "cumulative <file> <column> [column...]",
	Short:   "Cumulative distribution of a column for regular hosts and superhosts",
	Example: `  hostcompare cumulative listings.csv price --bin-width 10 --clip99`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCharts(cmd, args, "cumulative", func(regular, super *dataset.Dataset, column string, c cfgpkg.Global) (*chart.Figure, error) {
			fig, err := chart.CumulativeHistogram(regular, super, column, chart.CumulativeOptions{
				BinWidth: c.BinWidth,
				Clip99:   c.Clip99,
				XMin:     c.XMin,
				Style:    chart.DefaultStyle(),
			})
			if err != nil {
				return nil, fmt.Errorf("cumulative histogram %s: %w", column, err)
			}
			return fig, nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{histCmd, cumulativeCmd} {
		rootCmd.AddCommand(c)
		c.Flags().Float64Var(&chartBinWidth, "bin-width", 10, "bin width in column units (default from config)")
		c.Flags().BoolVar(&chartClip99, "clip99", false, "end the x range at the 99th percentile")
		c.Flags().Float64Var(&chartXMin, "xmin", 0, "left edge of the first bin (default from config)")
		c.Flags().StringVarP(&chartOutput, "output", "o", "", "image path for a single column; the extension picks the format")
		c.Flags().StringVar(&chartFormat, "format", "", "image format when --output is not set: png|svg|pdf (default from config)")
		c.Flags().StringVar(&chartClean, "clean", "auto", "clean each column first: auto|price|percent|none")
	}
	histCmd.Flags().BoolVar(&histPercentiles, "percentiles", true, "draw quartile markers (default from config)")
}

// runCharts loads the file once and renders one figure per column concurrently.
func runCharts(cmd *cobra.Command, args []string, kind string, build figureBuilder) error {
	path, columns := args[0], args[1:]
	if chartOutput != "" && len(columns) > 1 {
		return fmt.Errorf("--output takes a single column, got %d", len(columns))
	}
	c := chartSettings(cmd)
	d, err := loadDataset(path)
	if err != nil {
		return err
	}

	saved := make([]string, len(columns))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i, column := range columns {
		i, column := i, column
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			regular, super, err := splitGroups(d, column, chartClean)
			if err != nil {
				return err
			}
			fig, err := build(regular, super, column, c)
			if err != nil {
				return err
			}
			saved[i], err = saveFigure(c, fig, column, kind)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, p := range saved {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s\n", p)
	}
	return nil
}

// chartSettings merges explicitly set chart flags over the loaded config.
func chartSettings(cmd *cobra.Command) cfgpkg.Global {
	c := *settings()
	f := cmd.Flags()
	if f.Changed("bin-width") {
		c.BinWidth = chartBinWidth
	}
	if f.Changed("clip99") {
		c.Clip99 = chartClip99
	}
	if f.Changed("xmin") {
		c.XMin = chartXMin
	}
	if f.Changed("percentiles") {
		c.Percentiles = histPercentiles
	}
	if f.Changed("format") {
		c.ImageFormat = chartFormat
	}
	return c
}

// saveFigure renders fig to --output, or to a generated name under the
// configured output directory, and returns the path written.
func saveFigure(c cfgpkg.Global, fig *chart.Figure, column, kind string) (string, error) {
	path := chartOutput
	if path == "" {
		format := strings.ToLower(strings.TrimPrefix(c.ImageFormat, "."))
		if format == "" {
			format = "png"
		}
		if !chart.SupportedFormat(format) {
			return "", fmt.Errorf("unsupported image format: %s", format)
		}
		name := fmt.Sprintf("%s_%s_%s.%s", utils.SafeFileStem(column), kind, fig.ID[:8], format)
		path = filepath.Join(c.OutputDir, name)
	}
	r := chart.NewGonumRenderer(c.WidthIn, c.HeightIn)
	if err := chart.Save(r, fig, path); err != nil {
		return "", err
	}
	logger.Info("figure saved",
		zap.String("id", fig.ID),
		zap.String("kind", kind),
		zap.String("path", path),
		zap.Int("bins", len(fig.Edges)-1))
	return path, nil
}
