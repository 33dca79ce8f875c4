// Package config loads the ambient, non-protocol knobs every party
// reads at startup: log verbosity, color, timeouts, progress-bar
// visibility, and synthetic-data sizing. Profiling is a --profile
// command-line flag of each cmd/ binary, not a config knob. Protocol
// constants (bloom.K, she.K0, sketch.MLC, holder.S, ...) are never
// configurable and never appear here.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the ambient settings for one party process.
type Config struct {
	Color       bool          `mapstructure:"color"`
	Verbose     bool          `mapstructure:"verbose"`
	Progress    bool          `mapstructure:"progress"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DataPerProv int           `mapstructure:"data_per_provider"`
}

// Defaults returns the configuration used when no config.yaml is found.
func Defaults() Config {
	return Config{
		Color:       true,
		Verbose:     false,
		Progress:    true,
		Timeout:     30 * time.Second,
		DataPerProv: 2190,
	}
}

// Load reads config.yaml (if present) from path, falling back to
// Defaults() for any unset field. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.SetEnvPrefix("pprc")
	v.AutomaticEnv()

	v.SetDefault("color", cfg.Color)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("progress", cfg.Progress)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("data_per_provider", cfg.DataPerProv)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("config: reading config.yaml: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
