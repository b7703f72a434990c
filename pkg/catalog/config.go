package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gamedex/gamedex/pkg/internal"
	"gopkg.in/yaml.v3"
)

// Config is the small user-level catalog configuration
// (~/.config/gamedex/config.yaml). The token is consumed by the HTTP front
// end guarding mutations; the core treats callers as already authorized.
type Config struct {
	// Root is the catalog root directory holding the content tree.
	Root string `yaml:"root,omitempty"`

	// Token is the shared secret the serving layer checks on mutating
	// requests.
	Token string `yaml:"token,omitempty"`
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := internal.GetConfigDir("gamedex")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ReadConfig loads a config file. A missing file yields a zero Config, not
// an error, so a fresh machine works without setup.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Write persists the config atomically: serialize to a temp file in the
// target directory, then rename over the destination.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
