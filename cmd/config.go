package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/hostcompare/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set hostcompare configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "alpha: %g\n", c.Alpha)
		fmt.Fprintf(out, "bin_width: %g\n", c.BinWidth)
		fmt.Fprintf(out, "clip_99: %t\n", c.Clip99)
		fmt.Fprintf(out, "percentiles: %t\n", c.Percentiles)
		fmt.Fprintf(out, "xmin: %g\n", c.XMin)
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(out, "image_format: %s\n", c.ImageFormat)
		fmt.Fprintf(out, "width_in: %g\n", c.WidthIn)
		fmt.Fprintf(out, "height_in: %g\n", c.HeightIn)
		fmt.Fprintf(out, "group_column: %s\n", c.GroupColumn)
		fmt.Fprintf(out, "super_value: %s\n", c.SuperValue)
		fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		fmt.Fprintf(out, "price_columns: %s\n", strings.Join(c.PriceColumns, ","))
		fmt.Fprintf(out, "percent_columns: %s\n", strings.Join(c.PercentColumns, ","))
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "alpha":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || !(f > 0 && f < 1) {
				return fmt.Errorf("invalid alpha: %v (must be in (0, 1))", val)
			}
			cfg.Alpha = f
		case "bin_width":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || !(f > 0) {
				return fmt.Errorf("invalid bin_width: %v (must be positive)", val)
			}
			cfg.BinWidth = f
		case "clip_99", "percentiles":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %w", key, err)
			}
			if key == "clip_99" {
				cfg.Clip99 = b
			} else {
				cfg.Percentiles = b
			}
		case "xmin", "width_in", "height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for %s: %w", key, err)
			}
			switch key {
			case "xmin":
				cfg.XMin = f
			case "width_in":
				cfg.WidthIn = f
			default:
				cfg.HeightIn = f
			}
		case "output_dir":
			cfg.OutputDir = val
		case "image_format":
			v := strings.ToLower(strings.TrimPrefix(val, "."))
			switch v {
			case "png", "svg", "pdf":
				cfg.ImageFormat = v
			default:
				return fmt.Errorf("invalid image_format: %s (use png, svg or pdf)", val)
			}
		case "group_column":
			if strings.TrimSpace(val) == "" {
				return fmt.Errorf("group_column must not be empty")
			}
			cfg.GroupColumn = val
		case "super_value":
			cfg.SuperValue = val
		case "delimiter":
			prev := cfg.Delimiter
			cfg.Delimiter = val
			if _, err := cfg.DelimiterRune(); err != nil {
				cfg.Delimiter = prev
				return err
			}
		case "price_columns":
			cfg.PriceColumns = splitList(val)
		case "percent_columns":
			cfg.PercentColumns = splitList(val)
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
