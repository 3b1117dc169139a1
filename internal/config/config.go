// Package config handles the global citnet configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/citnet/config.yml.
type Config struct {
	ADSAPIKey     string `yaml:"ads_api_key,omitempty"`
	SnowballStart string `yaml:"snowball_start_year,omitempty"`
	SnowballEnd   string `yaml:"snowball_end_year,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "citnet"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// Default snowball interval, used when none is configured.
	DefaultStartYear = "1900"
	DefaultEndYear   = "2000"
)

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/citnet/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the configuration file. Returns an empty config (not an
// error) if the file doesn't exist. The ADS_API_KEY environment
// variable overrides the stored key.
func Load() (*Config, error) {
	var cfg Config

	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// First run, fall through to the env lookup.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if key := os.Getenv("ADS_API_KEY"); key != "" {
		cfg.ADSAPIKey = key
	}
	return &cfg, nil
}

// Save writes the configuration file, creating the directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Interval returns the configured snowball year interval, falling back
// to the defaults for missing bounds.
func (c *Config) Interval() (startYear, endYear string) {
	startYear, endYear = c.SnowballStart, c.SnowballEnd
	if startYear == "" {
		startYear = DefaultStartYear
	}
	if endYear == "" {
		endYear = DefaultEndYear
	}
	return startYear, endYear
}
