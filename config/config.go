// Package config loads and validates the TOML configuration file.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"medianflow/median"
)

// Estimator strategy names accepted in the config file.
const (
	StrategyExact  = "exact"
	StrategyHybrid = "hybrid"
)

// Config is the application configuration.
type Config struct {
	Main      Main      `mapstructure:"main"`
	Estimator Estimator `mapstructure:"estimator"`
}

// Main configures input and output locations.
type Main struct {
	// Input is the directory scanned for CSV source files. Required.
	Input string `mapstructure:"input"`
	// Output is the directory the result file is written to. Defaults to
	// "output" relative to the working directory.
	Output string `mapstructure:"output"`
	// FilenameMask selects source files whose name contains at least one of
	// these substrings. Empty selects every CSV file.
	FilenameMask []string `mapstructure:"filename_mask"`
}

// Estimator selects and tunes the median estimation strategy.
type Estimator struct {
	// Strategy is "exact" (two-heap, always exact) or "hybrid" (exact seed
	// buffer, then constant-memory streaming approximation).
	Strategy string `mapstructure:"strategy"`
	// SeedThreshold is the hybrid strategy's exact-buffer size.
	SeedThreshold int `mapstructure:"seed_threshold"`
}

// Load reads the TOML config at path and validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("main.output", "output")
	v.SetDefault("estimator.strategy", StrategyExact)
	v.SetDefault("estimator.seed_threshold", median.DefaultSeedThreshold)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Main.Input == "" {
		return fmt.Errorf("main.input is required and must be a directory path")
	}
	switch c.Estimator.Strategy {
	case StrategyExact, StrategyHybrid:
	default:
		return fmt.Errorf("estimator.strategy must be %q or %q, got %q",
			StrategyExact, StrategyHybrid, c.Estimator.Strategy)
	}
	if c.Estimator.SeedThreshold <= 0 {
		return fmt.Errorf("estimator.seed_threshold must be positive, got %d",
			c.Estimator.SeedThreshold)
	}
	return nil
}

// NewEstimator constructs the configured estimator strategy.
func (c *Config) NewEstimator() median.Estimator {
	if c.Estimator.Strategy == StrategyHybrid {
		return median.NewHybrid(c.Estimator.SeedThreshold)
	}
	return median.NewTwoHeap()
}
