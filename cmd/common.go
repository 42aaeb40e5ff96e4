package cmd

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/hostcompare/internal/analysis"
	"github.com/KaramelBytes/hostcompare/internal/dataset"
	"github.com/KaramelBytes/hostcompare/internal/utils"
)

// loadDataset reads a listings file using the configured delimiter and sheet.
func loadDataset(path string) (*dataset.Dataset, error) {
	c := settings()
	delim, err := c.DelimiterRune()
	if err != nil {
		return nil, err
	}
	// Leave TSV sniffing to the loader unless the user set a delimiter.
	if c.Delimiter == "" || (c.Delimiter == "," && strings.HasSuffix(strings.ToLower(path), ".tsv")) {
		delim = 0
	}
	d, err := dataset.Load(path, dataset.LoadOptions{Delimiter: delim, Sheet: flagSheet})
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset loaded", zap.String("name", d.Name), zap.Int("rows", d.Rows()), zap.Int("columns", len(d.Names())))
	return d, nil
}

// cleanerFor resolves a --clean mode for column. "auto" consults the
// configured price and percent column lists.
func cleanerFor(mode, column string) (func(dataset.Value) dataset.Value, error) {
	c := settings()
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		switch {
		case slices.Contains(c.PriceColumns, column):
			return analysis.CleanPrice, nil
		case slices.Contains(c.PercentColumns, column):
			return analysis.CleanPercent, nil
		}
		return nil, nil
	case "price":
		return analysis.CleanPrice, nil
	case "percent", "perc":
		return analysis.CleanPercent, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported --clean: %s (use auto|price|percent|none)", mode)
	}
}

// loadGroups loads path, cleans column as requested and splits the rows into
// regular hosts and superhosts.
func loadGroups(path, column, cleanMode string) (regular, super *dataset.Dataset, err error) {
	d, err := loadDataset(path)
	if err != nil {
		return nil, nil, err
	}
	return splitGroups(d, column, cleanMode)
}

// splitGroups cleans column of d and partitions it on the configured flag column.
func splitGroups(d *dataset.Dataset, column, cleanMode string) (regular, super *dataset.Dataset, err error) {
	fn, err := cleanerFor(cleanMode, column)
	if err != nil {
		return nil, nil, err
	}
	if fn != nil {
		if d, err = analysis.CleanColumns(d, fn, column); err != nil {
			return nil, nil, err
		}
	}
	c := settings()
	regular, super, err = d.Partition(c.GroupColumn, c.SuperValue)
	if err != nil {
		return nil, nil, fmt.Errorf("split groups: %w", err)
	}
	logger.Debug("groups split",
		zap.String("column", column),
		zap.String("flag", c.GroupColumn),
		zap.Int("regular", regular.Rows()),
		zap.Int("super", super.Rows()))
	return regular, super, nil
}

// emit writes text to path when given, otherwise to the command's stdout.
func emit(cmd *cobra.Command, path, text string) error {
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	if err := utils.SafeWriteFile(path, []byte(text)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}

// emitJSON renders v as indented JSON through emit.
func emitJSON(cmd *cobra.Command, path string, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	return emit(cmd, path, string(b))
}

// writeDataset saves d as CSV at path using the configured delimiter.
func writeDataset(d *dataset.Dataset, path string) error {
	delim, err := settings().DelimiterRune()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := d.WriteCSV(&buf, delim); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
