package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
)

var (
	propsJSON   bool
	propsOutput string
	propsClean  string
)

var propsCmd = &cobra.Command{
	Use:   "props <file> <column>",
	Short: "Show the share of rows holding each distinct value of a column",
	Example: `  hostcompare props listings.csv room_type
  hostcompare props listings.csv host_response_rate --clean percent --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, column := args[0], args[1]
		d, err := loadDataset(path)
		if err != nil {
			return err
		}
		fn, err := cleanerFor(propsClean, column)
		if err != nil {
			return err
		}
		if fn != nil {
			if d, err = analysis.CleanColumns(d, fn, column); err != nil {
				return err
			}
		}
		props, err := analysis.ValueProportions(d, column)
		if err != nil {
			return fmt.Errorf("proportions: %w", err)
		}
		logger.Debug("proportions computed", zap.String("column", column), zap.Int("distinct", len(props)))
		if propsJSON {
			return emitJSON(cmd, propsOutput, props)
		}
		return emit(cmd, propsOutput, analysis.ProportionsMarkdown(column, props))
	},
}

func init() {
	rootCmd.AddCommand(propsCmd)
	propsCmd.Flags().BoolVar(&propsJSON, "json", false, "emit JSON instead of a markdown table")
	propsCmd.Flags().StringVarP(&propsOutput, "output", "o", "", "write the result to a file instead of stdout")
	propsCmd.Flags().StringVar(&propsClean, "clean", "none", "clean the column first: auto|price|percent|none")
}
