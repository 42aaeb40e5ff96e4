package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/hostcompare/internal/config"
	"github.com/KaramelBytes/hostcompare/internal/logging"
)

var (
	// Global flags
	cfgFile    string
	debug      bool
	flagLogLvl string
	flagGroup  string
	flagSuper  string
	flagDelim  string
	flagSheet  string

	// Loaded configuration and logger
	cfg    *cfgpkg.Global
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "hostcompare",
	Short: "Compare regular hosts and superhosts in a listings dataset",
	Long: `hostcompare runs the descriptive statistics, cleaning, t-tests and distribution
charts used to compare regular hosts with superhosts in short-term rental listings.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.hostcompare/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLvl, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagGroup, "group-col", "", "column holding the superhost flag (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSuper, "super-value", "", "flag value marking a superhost (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDelim, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "XLSX: sheet name to read (default first sheet)")
}

func loadConfig() {
	// A .env in the working directory may carry HOSTCOMPARE_* settings.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: failed to read .env: %v\n", err)
		}
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = defaultConfig()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("log-level") && flagLogLvl != "" {
		cfg.LogLevel = flagLogLvl
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if f.Changed("group-col") && flagGroup != "" {
		cfg.GroupColumn = flagGroup
	}
	if f.Changed("super-value") {
		cfg.SuperValue = flagSuper
	}
	if f.Changed("delimiter") && flagDelim != "" {
		cfg.Delimiter = flagDelim
	}

	l, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v; using info\n", err)
		l, _ = logging.New("info")
	}
	logger = l
	logger.Debug("configuration loaded",
		zap.String("group_column", cfg.GroupColumn),
		zap.String("super_value", cfg.SuperValue),
		zap.Float64("alpha", cfg.Alpha))
}

// defaultConfig mirrors the defaults of config.Load without touching disk.
func defaultConfig() *cfgpkg.Global {
	return &cfgpkg.Global{
		Alpha:          0.05,
		BinWidth:       10,
		Percentiles:    true,
		OutputDir:      ".",
		ImageFormat:    "png",
		WidthIn:        15,
		HeightIn:       10,
		GroupColumn:    "host_is_superhost",
		SuperValue:     "t",
		Delimiter:      ",",
		PriceColumns:   []string{"price"},
		PercentColumns: []string{"host_response_rate", "host_acceptance_rate"},
		LogLevel:       "info",
	}
}

// settings returns the loaded configuration, or defaults if none was loaded.
func settings() *cfgpkg.Global {
	if cfg == nil {
		return defaultConfig()
	}
	return cfg
}
