package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Hypothesis testing
	Alpha float64 `mapstructure:"alpha" yaml:"alpha"`

	// Charts
	BinWidth    float64 `mapstructure:"bin_width" yaml:"bin_width"`
	Clip99      bool    `mapstructure:"clip_99" yaml:"clip_99"`
	Percentiles bool    `mapstructure:"percentiles" yaml:"percentiles"`
	XMin        float64 `mapstructure:"xmin" yaml:"xmin"`
	OutputDir   string  `mapstructure:"output_dir" yaml:"output_dir"`
	ImageFormat string  `mapstructure:"image_format" yaml:"image_format"`
	WidthIn     float64 `mapstructure:"width_in" yaml:"width_in"`
	HeightIn    float64 `mapstructure:"height_in" yaml:"height_in"`

	// Dataset layout
	GroupColumn    string   `mapstructure:"group_column" yaml:"group_column"`
	SuperValue     string   `mapstructure:"super_value" yaml:"super_value"`
	Delimiter      string   `mapstructure:"delimiter" yaml:"delimiter"`
	PriceColumns   []string `mapstructure:"price_columns" yaml:"price_columns"`
	PercentColumns []string `mapstructure:"percent_columns" yaml:"percent_columns"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultPath returns ~/.hostcompare/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".hostcompare", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.hostcompare/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HOSTCOMPARE")
	v.AutomaticEnv()

	v.SetDefault("alpha", 0.05)
	v.SetDefault("bin_width", 10.0)
	v.SetDefault("clip_99", false)
	v.SetDefault("percentiles", true)
	v.SetDefault("xmin", 0.0)
	v.SetDefault("output_dir", ".")
	v.SetDefault("image_format", "png")
	v.SetDefault("width_in", 15.0)
	v.SetDefault("height_in", 10.0)
	v.SetDefault("group_column", "host_is_superhost")
	v.SetDefault("super_value", "t")
	v.SetDefault("delimiter", ",")
	v.SetDefault("price_columns", []string{"price"})
	v.SetDefault("percent_columns", []string{"host_response_rate", "host_acceptance_rate"})
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".hostcompare"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// A missing file is fine; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ranges that would otherwise fail deep inside a command.
func (c *Global) Validate() error {
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return fmt.Errorf("invalid alpha %v: must be in (0, 1)", c.Alpha)
	}
	if !(c.BinWidth > 0) {
		return fmt.Errorf("invalid bin_width %v: must be positive", c.BinWidth)
	}
	if c.GroupColumn == "" {
		return fmt.Errorf("group_column must not be empty")
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	return nil
}

// DelimiterRune maps the delimiter setting to a CSV rune.
func (c *Global) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "", ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',' | ';' | 'tab' | '|')", c.Delimiter)
	}
}
