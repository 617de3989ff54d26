// Package config handles configuration loading for the globe engine.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all settings.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Render  RenderConfig  `yaml:"render"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig holds the synchronization constants.
type EngineConfig struct {
	RotationDegPerMs   float64       `yaml:"rotation_deg_per_ms"`
	DebounceDelay      time.Duration `yaml:"debounce_delay"`
	FrameInterval      time.Duration `yaml:"frame_interval"`
	FlyToDuration      time.Duration `yaml:"flyto_duration"`
	MarginFactor       float64       `yaml:"margin_factor"`
	PointerInteraction bool          `yaml:"pointer_interaction"`
}

// RenderConfig holds the software renderer settings.
type RenderConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Supersample  int     `yaml:"supersample"`
	Workers      int     `yaml:"workers"`
	Atmosphere   bool    `yaml:"atmosphere"`
	TerminatorLo float64 `yaml:"terminator_lo"`
	TerminatorHi float64 `yaml:"terminator_hi"`
}

// AssetsConfig holds the surface map paths.
type AssetsConfig struct {
	Day    string `yaml:"day"`
	Night  string `yaml:"night"`
	Clouds string `yaml:"clouds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			RotationDegPerMs:   360.0 / 86_400_000.0,
			DebounceDelay:      2 * time.Second,
			FrameInterval:      time.Second / 60,
			FlyToDuration:      time.Second,
			MarginFactor:       2.2,
			PointerInteraction: true,
		},
		Render: RenderConfig{
			Width:        640,
			Height:       640,
			Supersample:  3,
			Workers:      4,
			Atmosphere:   true,
			TerminatorLo: 0.0,
			TerminatorHi: 0.15,
		},
		Assets: AssetsConfig{
			Day:    "assets/world.200408.tif",
			Night:  "assets/night.tif",
			Clouds: "assets/cloud.2001210.tif",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file on top of the defaults. A missing file is
// not an error; it yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
