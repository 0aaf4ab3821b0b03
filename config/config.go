package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/INLOpen/cloudreaders/core"
)

// PipelineConfig holds defaults for the ingestion/extraction stages.
type PipelineConfig struct {
	Device string  `yaml:"device"`
	Style  string  `yaml:"style"`
	DPI    float64 `yaml:"dpi"`
}

// SimulationConfig holds IMU synthesis parameters.
type SimulationConfig struct {
	SampleRateHz float64 `yaml:"sample_rate_hz"`
	NoiseStd     float64 `yaml:"noise_std"`
	Seed         uint64  `yaml:"seed"`
}

// ExportConfig holds package export parameters.
type ExportConfig struct {
	Format           string `yaml:"format"`
	Compression      string `yaml:"compression"`
	CompressionLevel int    `yaml:"compression_level"`
}

// Config is the root configuration, grouped logically.
type Config struct {
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Simulation SimulationConfig `yaml:"simulation"`
	Export     ExportConfig     `yaml:"export"`
}

// DefaultConfig returns a config with standard values.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Device: "generic",
			Style:  "neutral",
			DPI:    300.0,
		},
		Simulation: SimulationConfig{
			SampleRateHz: 200.0,
			NoiseStd:     0.05,
		},
		Export: ExportConfig{
			Format:           core.FormatVersion,
			Compression:      "zstd",
			CompressionLevel: core.DefaultCompressionLevel,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Simulation.SampleRateHz <= 0 {
		return fmt.Errorf("simulation.sample_rate_hz must be positive, got %g", c.Simulation.SampleRateHz)
	}
	if c.Simulation.NoiseStd < 0 {
		return fmt.Errorf("simulation.noise_std must be non-negative, got %g", c.Simulation.NoiseStd)
	}
	if c.Export.CompressionLevel < 0 || c.Export.CompressionLevel > 19 {
		return fmt.Errorf("export.compression_level must be in [0,19], got %d", c.Export.CompressionLevel)
	}
	if _, err := core.ParseCompressionType(c.Export.Compression); err != nil {
		return fmt.Errorf("export.compression: %w", err)
	}
	return nil
}
