package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rosterhq/roster/internal/task"
)

// FileName is the config file inside the project state directory.
const FileName = "config.yaml"

// Config is the root configuration for a roster project.
type Config struct {
	Version      int          `yaml:"version"`
	DefaultActor string       `yaml:"default_actor,omitempty"` // used when no --actor flag or ROSTER_ACTOR env
	RequireClaim bool         `yaml:"require_claim,omitempty"` // forbid completing unclaimed tasks
	ListLimit    int          `yaml:"list_limit,omitempty"`    // default row cap for listings (0 = unlimited)
	Urgency      task.Weights `yaml:"urgency"`
}

// Load reads and parses the config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a config with the standard urgency weights.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Urgency: task.DefaultWeights(),
	}
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.ListLimit < 0 {
		return fmt.Errorf("list_limit must be >= 0, got %d", c.ListLimit)
	}
	w := c.Urgency
	if w.High < w.Medium || w.Medium < w.Low || w.Low < 0 {
		return fmt.Errorf("urgency priority weights must satisfy high >= medium >= low >= 0")
	}
	if w.OverduePerDay < 0 || w.AgePerDay < 0 {
		return fmt.Errorf("urgency per-day weights must be >= 0")
	}
	return nil
}
