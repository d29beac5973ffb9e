package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging struct {
		Level string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	} `yaml:"logging"`
	Inputs struct {
		Periods string `yaml:"periods" default:"data/country_bloc_periods.csv" validate:"required"`
		GDP     string `yaml:"gdp" default:"data/maddison_world_gdp.csv" validate:"required"`
	} `yaml:"inputs"`
	Outputs struct {
		Rows    string `yaml:"rows" default:"out/power_bloc_gdp_by_decade.csv" validate:"required"`
		Summary string `yaml:"summary" default:"out/bloc_gdp_summary.csv" validate:"required"`
	} `yaml:"outputs"`
	Store struct {
		// Path of the sqlite database. The -db flag overrides it; an
		// explicit empty override disables persistence.
		Path string `yaml:"path" default:"blocgdp.db"`
	} `yaml:"store"`
	Summary struct {
		Order    []string `yaml:"order"`
		MinShare float64  `yaml:"min_share" validate:"gte=0,lte=100"`
		Other    string   `yaml:"other" default:"Other"`
	} `yaml:"summary"`
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file, fills defaults for
// omitted fields, and validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides input locations with
// environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("BLOCGDP_PERIODS"); v != "" {
		c.Inputs.Periods = v
	}
	if v := os.Getenv("BLOCGDP_GDP"); v != "" {
		c.Inputs.GDP = v
	}
	if v := os.Getenv("BLOCGDP_DB"); v != "" {
		c.Store.Path = v
	}

	return c, nil
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
