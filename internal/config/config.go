package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGridPoints    = 96
	DefaultDt            = 0.5
	DefaultSteps         = 2000
	DefaultSnapshotEvery = 500
	DefaultSeed          = "benchmark"
	DefaultStepper       = "semi-implicit"
)

type Config struct {
	Seed          string  `yaml:"seed"`
	Stepper       string  `yaml:"stepper"`
	GridPoints    int     `yaml:"grid_points"`
	Dt            float64 `yaml:"dt"`
	Steps         int     `yaml:"steps"`
	SnapshotEvery int     `yaml:"snapshot_every"`
	Coeffs        [10]int `yaml:"coeffs,flow"`
	DataDir       string  `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:          DefaultSeed,
		Stepper:       DefaultStepper,
		GridPoints:    DefaultGridPoints,
		Dt:            DefaultDt,
		Steps:         DefaultSteps,
		SnapshotEvery: DefaultSnapshotEvery,
		DataDir:       ".spinodal",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
