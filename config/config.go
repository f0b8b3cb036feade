// Package config provides configuration loading and access for the
// simulation, grounded on pthm-soup/config/config.go's embedded-defaults
// YAML pattern.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Sim      SimConfig      `yaml:"sim"`
	Behavior BehaviorConfig `yaml:"behavior"`
	Video    VideoConfig    `yaml:"video"`
	Colormap ColormapConfig `yaml:"colormap"`
}

// GridConfig holds the trail/occupancy grid dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SimConfig holds run-level simulation parameters.
type SimConfig struct {
	FPS              int `yaml:"fps"`
	ResolutionFactor int `yaml:"resolution_factor"`
	Seconds          int `yaml:"seconds"`
	Agents           int `yaml:"agents"`
}

// BehaviorConfig holds the per-agent/per-cell behavior parameters of spec
// §4, expressed at unit scale (resolution_factor=1, fps=1) and rescaled at
// startup by behavior.Normalize.
type BehaviorConfig struct {
	MovementSpeed      float64 `yaml:"movement_speed"`
	TrailDepositRate   float64 `yaml:"trail_deposit_rate"`
	MovementNoise      float64 `yaml:"movement_noise"`
	TurnRate           float64 `yaml:"turn_rate"`
	SensorLength       float64 `yaml:"sensor_length"`
	SensorAngleFactor  float64 `yaml:"sensor_angle_factor"`
	DispersionRate     float64 `yaml:"dispersion_rate"`
	EvaporationRateExp float64 `yaml:"evaporation_rate_exp"`
	EvaporationRateLin float64 `yaml:"evaporation_rate_lin"`
	TrailMax           float64 `yaml:"trail_max"`
	MaxPerCell         int     `yaml:"max_per_cell"`
}

// VideoConfig holds output video encoding parameters.
type VideoConfig struct {
	OutputFile string `yaml:"output_file"`
	Preset     string `yaml:"preset"` // "slow" or "fast"
}

// ColormapConfig names the CSV colormap file and the value range it spans.
type ColormapConfig struct {
	Path   string  `yaml:"path"`
	MinVal float64 `yaml:"min_val"`
	MaxVal float64 `yaml:"max_val"`
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing config file: %w", err)
		}
	}

	return cfg, nil
}
