package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
)

var pruneOutput string

var pruneCmd = &cobra.Command{
	Use:   "prune <file>",
	Short: "Drop columns that hold a single distinct value",
	Long: `Drop every column whose non-null entries all hold the same value.
Without --output only the list of dropped columns is printed.`,
	Example: `  hostcompare prune listings.csv -o listings_pruned.csv`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		pruned, dropped := analysis.DropConstantColumns(d, logger)
		fmt.Fprint(cmd.OutOrStdout(), analysis.DroppedMarkdown(dropped))
		if pruneOutput == "" {
			return nil
		}
		if err := writeDataset(pruned, pruneOutput); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d columns, %d rows)\n", pruneOutput, len(pruned.Names()), pruned.Rows())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().StringVarP(&pruneOutput, "output", "o", "", "write the pruned table as CSV")
}
