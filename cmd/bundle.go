package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunBundle holds estimation run configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" — they do not override CLI flags.
// String fields use empty string for "not set".
type RunBundle struct {
	DepthHistogram   string   `yaml:"depth_histogram"`
	QualityHistogram string   `yaml:"quality_histogram"`
	SampleSize       *int     `yaml:"sample_size"`
	LogOddsThreshold *float64 `yaml:"log_odds_threshold"`
	Seed             *int64   `yaml:"seed"`
	Workers          *int     `yaml:"workers"`
	MaxQuality       *int     `yaml:"max_quality"`
}

// LoadRunBundle reads and parses a YAML run configuration file.
func LoadRunBundle(path string) (*RunBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var bundle RunBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &bundle, nil
}

// Validate checks parameter ranges in the bundle.
func (b *RunBundle) Validate() error {
	if b.SampleSize != nil && *b.SampleSize < 1 {
		return fmt.Errorf("sample_size must be positive, got %d", *b.SampleSize)
	}
	if b.Seed != nil && *b.Seed < 0 {
		return fmt.Errorf("seed must be non-negative, got %d", *b.Seed)
	}
	if b.Workers != nil && *b.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *b.Workers)
	}
	if b.MaxQuality != nil && *b.MaxQuality < 1 {
		return fmt.Errorf("max_quality must be positive, got %d", *b.MaxQuality)
	}
	return nil
}
