// Package config handles configuration loading for the cellfill CLI.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	Fill   FillConfig   `yaml:"fill"`
	Cache  CacheConfig  `yaml:"cache"`
	Render RenderConfig `yaml:"render"`
}

// FillConfig contains polygon filling settings. Level is a pointer so an
// explicit "level: 0" (face cells) stays distinguishable from an absent
// key; Load always leaves it non-nil.
type FillConfig struct {
	Level    *int `yaml:"level"`
	MaxCells int  `yaml:"max_cells"`
	Workers  int  `yaml:"workers"`
}

// CacheConfig contains caching settings.
type CacheConfig struct {
	ResultSizeMB     int `yaml:"result_size_mb"`
	ResultTTLMinutes int `yaml:"result_ttl_minutes"`
	BoundaryEntries  int `yaml:"boundary_entries"`
}

// RenderConfig contains debug rendering settings.
type RenderConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Colormap string `yaml:"colormap"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	level := 10
	return &Config{
		Fill: FillConfig{
			Level:    &level,
			MaxCells: 5000,
			Workers:  1,
		},
		Cache: CacheConfig{
			ResultSizeMB:     64,
			ResultTTLMinutes: 10,
			BoundaryEntries:  10000,
		},
		Render: RenderConfig{
			Width:    1024,
			Height:   768,
			Colormap: "viridis",
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Fill.Level == nil {
		cfg.Fill.Level = defaults.Fill.Level
	}
	if cfg.Fill.MaxCells == 0 {
		cfg.Fill.MaxCells = defaults.Fill.MaxCells
	}
	if cfg.Fill.Workers == 0 {
		cfg.Fill.Workers = defaults.Fill.Workers
	}
	if cfg.Cache.ResultSizeMB == 0 {
		cfg.Cache.ResultSizeMB = defaults.Cache.ResultSizeMB
	}
	if cfg.Cache.ResultTTLMinutes == 0 {
		cfg.Cache.ResultTTLMinutes = defaults.Cache.ResultTTLMinutes
	}
	if cfg.Cache.BoundaryEntries == 0 {
		cfg.Cache.BoundaryEntries = defaults.Cache.BoundaryEntries
	}
	if cfg.Render.Width == 0 {
		cfg.Render.Width = defaults.Render.Width
	}
	if cfg.Render.Height == 0 {
		cfg.Render.Height = defaults.Render.Height
	}
	if cfg.Render.Colormap == "" {
		cfg.Render.Colormap = defaults.Render.Colormap
	}
}
