package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
)

var (
	ttestAlpha  float64
	ttestClean  string
	ttestJSON   bool
	ttestOutput string
)

var ttestCmd = &cobra.Command{
	Use:   "ttest <file> <column>",
	Short: "Two-tailed pooled t-test of a column between regular hosts and superhosts",
	Example: `  hostcompare ttest listings.csv price
  hostcompare ttest listings.csv review_scores_rating --alpha 0.01 --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, column := args[0], args[1]
		alpha := settings().Alpha
		if cmd.Flags().Changed("alpha") {
			alpha = ttestAlpha
		}
		regular, super, err := loadGroups(path, column, ttestClean)
		if err != nil {
			return err
		}
		res, err := analysis.TwoTailTTest(regular, super, column, alpha)
		if err != nil {
			return fmt.Errorf("t-test: %w", err)
		}
		logger.Info("t-test done",
			zap.String("column", column),
			zap.Float64("t", res.T),
			zap.Float64("critical", res.Critical),
			zap.Int("df", res.DF),
			zap.Bool("significant", res.Significant()))
		if ttestJSON {
			return emitJSON(cmd, ttestOutput, struct {
				analysis.TTestResult
				Significant bool `json:"significant"`
			}{res, res.Significant()})
		}
		return emit(cmd, ttestOutput, res.Markdown())
	},
}

func init() {
	rootCmd.AddCommand(ttestCmd)
	ttestCmd.Flags().Float64Var(&ttestAlpha, "alpha", 0.05, "significance level (default from config)")
	ttestCmd.Flags().StringVar(&ttestClean, "clean", "auto", "clean the column first: auto|price|percent|none")
	ttestCmd.Flags().BoolVar(&ttestJSON, "json", false, "emit JSON instead of markdown")
	ttestCmd.Flags().StringVarP(&ttestOutput, "output", "o", "", "write the result to a file instead of stdout")
}
