// Package config loads the runtime configuration from YAML or JSON files,
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/fleetsim/core/metrics"
)

type Config struct {
	Dataset    DatasetConfig    `json:"dataset"`
	Simulation SimulationConfig `json:"simulation"`
	Experiment ExperimentConfig `json:"experiment"`
	Metrics    metrics.Config   `json:"metrics"`
	Stream     StreamConfig     `json:"stream"`
	Export     ExportConfig     `json:"export"`
}

// Load reads the file at path, applies FS_* environment overrides and
// validates the result. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. FS_EXPERIMENT__TRIALS=500.
	if err := k.Load(env.Provider("FS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fs_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every section at its defaults.
// Unmarshalling only overwrites keys present in the file, so defaults
// survive for everything else.
func Default() Config {
	var cfg Config
	cfg.Dataset.SetDefaults()
	cfg.Simulation.SetDefaults()
	cfg.Experiment.SetDefaults()
	return cfg
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Dataset.Validate(); err != nil {
		return err
	}
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if err := c.Experiment.Validate(); err != nil {
		return err
	}
	return c.Stream.Validate()
}
