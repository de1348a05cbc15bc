// Package config loads the optional YAML settings file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

// Config mirrors config.yaml. Zero values are replaced by defaults on load.
type Config struct {
	// Storage is a SQLite file path or a PostgreSQL connection string
	// without a password.
	Storage           string           `yaml:"storage"`
	Timezone          string           `yaml:"timezone"`
	Debug             bool             `yaml:"debug"`
	Format            string           `yaml:"format"`
	InterventionLimit int              `yaml:"intervention_limit"`
	Classifier        ClassifierConfig `yaml:"classifier,omitempty"`
}

// ClassifierConfig overrides the built-in keyword lists. An empty list keeps
// the default.
type ClassifierConfig struct {
	HighStress     []string `yaml:"high_stress,omitempty"`
	Recreational   []string `yaml:"recreational,omitempty"`
	OptionalEvents []string `yaml:"optional_events,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage:           constants.DefaultStoragePath,
		Timezone:          constants.DefaultTimezone,
		Format:            constants.DefaultFormat,
		InterventionLimit: constants.MaxInterventions,
	}
}

// Load reads path. A missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(utils.ExpandHome(path))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg *Config) error {
	path = utils.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode yaml: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overlays environment overrides. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(constants.EnvDBConnection)); v != "" {
		c.Storage = v
	}
	if v := strings.TrimSpace(getenv(constants.EnvTimezone)); v != "" {
		c.Timezone = v
	}
}

func (c *Config) Validate() error {
	switch c.Format {
	case constants.FormatText, constants.FormatJSON, constants.FormatPrometheus:
	default:
		return fmt.Errorf("format %q must be one of text|json|prom", c.Format)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	if c.InterventionLimit < 1 || c.InterventionLimit > constants.MaxInterventions {
		return fmt.Errorf("intervention_limit must be between 1 and %d", constants.MaxInterventions)
	}
	return nil
}

// IsPostgres reports whether Storage names a PostgreSQL database.
func (c *Config) IsPostgres() bool {
	return IsPostgresConnString(c.Storage)
}

func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Storage == "" {
		c.Storage = d.Storage
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.InterventionLimit == 0 {
		c.InterventionLimit = d.InterventionLimit
	}
}
