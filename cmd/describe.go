package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
)

var (
	describeClean     string
	describeJSON      bool
	describeOutput    string
	describeThreshold float64
)

var describeCmd = &cobra.Command{
	Use:   "describe <file> <column>",
	Short: "Summary statistics of a column for regular hosts and superhosts",
	Long: `Print count, nulls, mean, standard deviation, quartiles and range of a numeric
column per group, plus a robust z-score (MAD) outlier count.`,
	Example: `  hostcompare describe listings.csv price
  hostcompare describe listings.csv number_of_reviews --outlier-z 5 --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, column := args[0], args[1]
		regular, super, err := loadGroups(path, column, describeClean)
		if err != nil {
			return err
		}
		cmp, err := analysis.Compare(regular, super, column, describeThreshold)
		if err != nil {
			return fmt.Errorf("describe: %w", err)
		}
		if describeJSON {
			return emitJSON(cmd, describeOutput, cmp)
		}
		return emit(cmd, describeOutput, cmp.Markdown())
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVar(&describeClean, "clean", "auto", "clean the column first: auto|price|percent|none")
	describeCmd.Flags().BoolVar(&describeJSON, "json", false, "emit JSON instead of markdown")
	describeCmd.Flags().StringVarP(&describeOutput, "output", "o", "", "write the result to a file instead of stdout")
	describeCmd.Flags().Float64Var(&describeThreshold, "outlier-z", analysis.DefaultOutlierThreshold, "robust |z| above which a value is an outlier")
}
