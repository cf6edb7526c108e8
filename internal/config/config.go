package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDomain = "chordal"
	DefaultSource = "brownian"
	DefaultPoints = 1000
	DefaultTf     = 1.0
	DefaultKappa  = 4.0
	DefaultHurst  = 0.5
	DefaultB      = 1.0
	DefaultWidth  = 1.0
	DefaultExp    = 0.5
)

type Config struct {
	Domain string        `yaml:"domain"`
	Source string        `yaml:"source"`
	Points int           `yaml:"points"`
	Tf     float64       `yaml:"tf"`
	Seed   int64         `yaml:"seed"`
	Strict bool          `yaml:"strict"`
	Width  float64       `yaml:"width"`
	Drive  DrivingConfig `yaml:"drive"`
}

type DrivingConfig struct {
	Kappa    float64 `yaml:"kappa"`
	Hurst    float64 `yaml:"hurst"`
	B        float64 `yaml:"b"`
	Coeff    float64 `yaml:"coeff"`
	Exponent float64 `yaml:"exponent"`
}

func DefaultConfig() *Config {
	return &Config{
		Domain: DefaultDomain,
		Source: DefaultSource,
		Points: DefaultPoints,
		Tf:     DefaultTf,
		Width:  DefaultWidth,
		Drive: DrivingConfig{
			Kappa:    DefaultKappa,
			Hurst:    DefaultHurst,
			B:        DefaultB,
			Exponent: DefaultExp,
		},
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

// Clone returns a copy that can be modified without touching c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Set assigns a single field by its yaml key, e.g. "drive.kappa" or
// "points". The value is coerced to the field type.
func (c *Config) Set(key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "domain":
		c.Domain = value
	case "source":
		c.Source = value
	case "points", "n":
		c.Points, err = cast.ToIntE(value)
	case "tf":
		c.Tf, err = cast.ToFloat64E(value)
	case "seed":
		c.Seed, err = cast.ToInt64E(value)
	case "strict":
		c.Strict, err = cast.ToBoolE(value)
	case "width":
		c.Width, err = cast.ToFloat64E(value)
	case "drive.kappa", "kappa":
		c.Drive.Kappa, err = cast.ToFloat64E(value)
	case "drive.hurst", "hurst":
		c.Drive.Hurst, err = cast.ToFloat64E(value)
	case "drive.b", "b":
		c.Drive.B, err = cast.ToFloat64E(value)
	case "drive.coeff", "coeff":
		c.Drive.Coeff, err = cast.ToFloat64E(value)
	case "drive.exponent", "exponent":
		c.Drive.Exponent, err = cast.ToFloat64E(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	if err != nil {
		return fmt.Errorf("config key %s: %w", key, err)
	}
	return nil
}

// Apply parses a list of key=value assignments and calls Set for each.
func (c *Config) Apply(assignments []string) error {
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", a)
		}
		if err := c.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}
