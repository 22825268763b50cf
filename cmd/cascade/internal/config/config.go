// Package config loads the optional cascade.yaml or cascade.toml project
// file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the project configuration.
type Config struct {
	// Stylesheets are linted and used by explain when no sheet is given.
	// Relative paths are resolved against the config file's directory.
	Stylesheets []string     `yaml:"stylesheets" toml:"stylesheets"`
	Errors      ErrorsConfig `yaml:"errors" toml:"errors"`
	// Debug traces cascade application.
	Debug bool `yaml:"debug" toml:"debug"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// ErrorsConfig controls error reporting.
type ErrorsConfig struct {
	Verbose bool `yaml:"verbose" toml:"verbose"`
}

// FileNames are the config files LoadOptional looks for, in order.
var FileNames = []string{"cascade.yaml", "cascade.yml", "cascade.toml"}

// LoadOptional reads the first config file found in dir. Without one it
// returns an empty Config.
func LoadOptional(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		return Load(path)
	}
	return &Config{}, nil
}

// Load reads the config file at path. The format follows the extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("%s: config must be .yaml, .yml or .toml", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.Path = path
	dir := filepath.Dir(path)
	for i, s := range cfg.Stylesheets {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("%s: stylesheets[%d] is empty", path, i)
		}
		if !filepath.IsAbs(s) {
			s = filepath.Join(dir, s)
		}
		cfg.Stylesheets[i] = s
	}
	return &cfg, nil
}
