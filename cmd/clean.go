package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

var (
	cleanPrice   []string
	cleanPercent []string
	cleanOutput  string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Convert currency and percentage columns to numbers",
	Long: `Convert currency columns ("$1,234.00") to dollars and percentage columns ("93%")
to fractions. Without --price/--percent the column lists from the config are used,
skipping any that the file does not have.`,
	Example: `  hostcompare clean listings.csv --price price,weekly_price --percent host_response_rate -o clean.csv`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		price, percent := cleanPrice, cleanPercent
		explicit := cmd.Flags().Changed("price") || cmd.Flags().Changed("percent")
		if !explicit {
			c := settings()
			price = presentColumns(d, c.PriceColumns)
			percent = presentColumns(d, c.PercentColumns)
		}
		if len(price)+len(percent) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "⚠ No columns to clean")
			return nil
		}

		if d, err = analysis.CleanColumns(d, analysis.CleanPrice, price...); err != nil {
			return fmt.Errorf("clean price columns: %w", err)
		}
		if d, err = analysis.CleanColumns(d, analysis.CleanPercent, percent...); err != nil {
			return fmt.Errorf("clean percent columns: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, group := range []struct {
			kind string
			cols []string
		}{{"price", price}, {"percent", percent}} {
			for _, c := range group.cols {
				left := stringCells(d, c)
				if left > 0 {
					fmt.Fprintf(out, "⚠ %s (%s): %d values could not be parsed\n", c, group.kind, left)
					logger.Warn("unparsed values left", zap.String("column", c), zap.Int("count", left))
					continue
				}
				fmt.Fprintf(out, "✓ %s (%s)\n", c, group.kind)
			}
		}
		if cleanOutput == "" {
			return nil
		}
		if err := writeDataset(d, cleanOutput); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote %s\n", cleanOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringSliceVar(&cleanPrice, "price", nil, "currency columns to convert (default from config)")
	cleanCmd.Flags().StringSliceVar(&cleanPercent, "percent", nil, "percentage columns to convert (default from config)")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "write the cleaned table as CSV")
}

// presentColumns filters names down to the columns d actually has.
func presentColumns(d *dataset.Dataset, names []string) []string {
	var out []string
	for _, n := range names {
		if d.Has(n) {
			out = append(out, n)
		} else {
			logger.Debug("configured column not in dataset", zap.String("column", n))
		}
	}
	return out
}

func stringCells(d *dataset.Dataset, column string) int {
	col, err := d.Column(column)
	if err != nil {
		return 0
	}
	n := 0
	for _, v := range col.Values {
		if v.IsString() {
			n++
		}
	}
	return n
}
