// Package config loads the YAML configuration of the oceanheat service.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aouyang1/go-oceanheat/csvseries"
	"github.com/aouyang1/go-oceanheat/impact"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultDataFile   = "data/ohc_tidy.csv"
	DefaultListenAddr = "127.0.0.1:8080"
	DefaultTimeout    = 30 * time.Second
)

// Config is the complete service configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	CSV      CSVConfig      `yaml:"csv"`
	Analysis impact.Options `yaml:"analysis"`
	HTTP     HTTPConfig     `yaml:"http"`
	Debug    bool           `yaml:"debug"`
}

// SourceConfig locates the raw csv data. Location may be a file path or an http(s) URL.
type SourceConfig struct {
	Location string        `yaml:"location"`
	Timeout  time.Duration `yaml:"timeout"`
}

type CSVConfig struct {
	Schema string `yaml:"schema"`
	Header string `yaml:"header"`
}

type HTTPConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Location: DefaultDataFile,
			Timeout:  DefaultTimeout,
		},
		CSV:      CSVConfig{Schema: csvseries.SchemaAuto.String()},
		Analysis: *impact.NewDefaultOptions(),
		HTTP:     HTTPConfig{ListenAddr: DefaultListenAddr},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config %s, %w", path, err)
	}
	if err := Parse(b, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config %s, %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg and validates the result. Fields absent from b keep their value.
func Parse(b []byte, cfg *Config) error {
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Source.Location == "" {
		return fmt.Errorf("source.location is required, %w", ErrInvalidConfig)
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must not be negative, %w", ErrInvalidConfig)
	}
	if _, err := csvseries.ParseSchema(c.CSV.Schema); err != nil {
		return fmt.Errorf("%w, %w", err, ErrInvalidConfig)
	}
	if _, err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("%w, %w", err, ErrInvalidConfig)
	}
	return nil
}

// CSVOptions converts the csv section into parser options.
func (c *Config) CSVOptions() (*csvseries.Options, error) {
	schema, err := csvseries.ParseSchema(c.CSV.Schema)
	if err != nil {
		return nil, err
	}
	return &csvseries.Options{
		Schema: schema,
		Header: c.CSV.Header,
	}, nil
}

// ImpactOptions returns a copy of the analysis section.
func (c *Config) ImpactOptions() *impact.Options {
	opt := c.Analysis
	return &opt
}
