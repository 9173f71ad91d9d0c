package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fboinator/internal/annotate"
	"github.com/san-kum/fboinator/internal/chart"
	"github.com/san-kum/fboinator/internal/series"
)

const (
	DefaultOutputDir = "."
	DefaultLogLevel  = "info"
)

type Config struct {
	BaseRate    float64          `yaml:"base_rate"`
	GrowthRate  float64          `yaml:"growth_rate"`
	MaxIndex    int              `yaml:"max_index"`
	Model       string           `yaml:"model"`
	Hidden      []string         `yaml:"hidden,omitempty"`
	Annotations AnnotationConfig `yaml:"annotations"`
	OutputDir   string           `yaml:"output_dir"`
	LogLevel    string           `yaml:"log_level"`
}

type AnnotationConfig struct {
	Enabled bool                  `yaml:"enabled"`
	Items   []annotate.Annotation `yaml:"items,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseRate:   series.DefaultBaseRate,
		GrowthRate: series.DefaultGrowthRate,
		MaxIndex:   series.DefaultMaxIndex,
		Model:      series.Multiplicative.String(),
		OutputDir:  DefaultOutputDir,
		LogLevel:   DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate applies the same limits as the input fields: finite rates, a
// non-negative base and a max index within [0, series.MaxIndexLimit].
func (c *Config) Validate() error {
	if _, err := series.ParseModel(c.Model); err != nil {
		return err
	}
	if _, err := chart.Hidden(c.Hidden); err != nil {
		return err
	}
	if math.IsNaN(c.BaseRate) || math.IsInf(c.BaseRate, 0) || c.BaseRate < 0 {
		return fmt.Errorf("base_rate %v: %w", c.BaseRate, series.ErrInvalidInput)
	}
	if math.IsNaN(c.GrowthRate) || math.IsInf(c.GrowthRate, 0) {
		return fmt.Errorf("growth_rate %v: %w", c.GrowthRate, series.ErrInvalidInput)
	}
	if c.MaxIndex < 0 || c.MaxIndex > series.MaxIndexLimit {
		return fmt.Errorf("max_index %d: %w", c.MaxIndex, series.ErrInvalidInput)
	}
	return nil
}

// Params converts the numeric fields, assuming Validate passed.
func (c *Config) Params() series.Params {
	m, _ := series.ParseModel(c.Model)
	return series.Params{BaseRate: c.BaseRate, GrowthRate: c.GrowthRate, MaxIndex: c.MaxIndex, Model: m}
}

func (c *Config) Visibility() chart.Visibility {
	v, _ := chart.Hidden(c.Hidden)
	return v
}

// AnnotationText renders the configured annotations as editor text.
func (c *Config) AnnotationText() string {
	return annotate.Format(c.Annotations.Items)
}
