// Package config loads binwatch configuration from file, environment, and
// defaults via viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete binwatch configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// LoggingConfig controls the structured debug log
type LoggingConfig struct {
	// Level is the minimum log level: DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
	// Dir is the directory for the debug log file; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// WatchConfig controls the watch command
type WatchConfig struct {
	// Paths are the default paths to watch when none are given on the command line
	Paths []string `mapstructure:"paths"`
	// StatsIntervalMs is how often to emit an occupancy summary (in milliseconds)
	StatsIntervalMs int `mapstructure:"stats_interval_ms"`
}

// StatsInterval returns the summary interval as a duration.
func (c *WatchConfig) StatsInterval() time.Duration {
	return time.Duration(c.StatsIntervalMs) * time.Millisecond
}

// Load reads configuration from the config file (if present), environment
// variables prefixed with BINWATCH_, and built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "binwatch"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("BINWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is surfaced.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers the built-in default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.dir", "")
	v.SetDefault("watch.paths", []string{"."})
	v.SetDefault("watch.stats_interval_ms", 5000)
}
