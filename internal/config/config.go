// Package config loads and persists the client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"shipls/pkg/fileutil"
)

const (
	appDirName     = "shipls"
	configFileName = "config.yaml"

	configDirMode  = 0700
	configFileMode = 0600 // holds the auth token
)

// Config is the client configuration stored on disk.
type Config struct {
	Token string `yaml:"token,omitempty"`
	URL   string `yaml:"url,omitempty"`

	path string
}

// DefaultDir returns the per-user directory for config and state files.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// DefaultPaths returns the search locations for the config file, most
// specific first.
func DefaultPaths() []string {
	var paths []string
	if dir, err := DefaultDir(); err == nil {
		paths = append(paths, filepath.Join(dir, configFileName))
	}
	paths = append(paths, filepath.Join("/etc", appDirName, configFileName))
	return paths
}

// Load reads the configuration from path, or from the first default
// location when path is empty. A missing file yields an empty config bound
// to the path a later Save should write; only unreadable or malformed
// files are errors.
func Load(path string) (*Config, error) {
	if path == "" {
		path = fileutil.SearchPathsOptional(DefaultPaths())
	}
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		return &Config{path: filepath.Join(dir, configFileName)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{path: path}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{path: path}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Path returns where the config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to its path with restrictive
// permissions.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no path to save to")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), configDirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.path, data, configFileMode); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}

	return nil
}
