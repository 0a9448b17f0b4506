// Package config loads and saves the ghkeep configuration file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file consulted when no --config flag
// is given.
const DefaultPath = "config.yaml"

// Defaults for the storage layout.
const (
	DefaultStorageDir = "issues"
	DefaultReportsDir = "reports"
)

// Config represents the application configuration.
type Config struct {
	Repositories []string `yaml:"repositories"`
	StorageDir   string   `yaml:"storage_dir,omitempty"`
	ReportsDir   string   `yaml:"reports_dir,omitempty"`
}

// Load reads the configuration from path. The file must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

// LoadOrDefault reads the configuration from path, returning an empty
// configuration with defaults when the file does not exist yet.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		cfg.normalize()
		return cfg, nil
	}
	return Load(path)
}

// normalize drops blank repository entries and fills in directory defaults.
func (c *Config) normalize() {
	repos := c.Repositories[:0]
	for _, r := range c.Repositories {
		if strings.TrimSpace(r) != "" {
			repos = append(repos, r)
		}
	}
	c.Repositories = repos

	if c.StorageDir == "" {
		c.StorageDir = DefaultStorageDir
	}
	if c.ReportsDir == "" {
		c.ReportsDir = DefaultReportsDir
	}
}

// AddRepositories merges repositories into the configuration, removing
// duplicates and keeping the list sorted.
func (c *Config) AddRepositories(repos ...string) {
	seen := make(map[string]bool, len(c.Repositories))
	for _, r := range c.Repositories {
		seen[r] = true
	}
	for _, r := range repos {
		if r != "" && !seen[r] {
			c.Repositories = append(c.Repositories, r)
			seen[r] = true
		}
	}
	sort.Strings(c.Repositories)
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	header := "# ghkeep configuration\n# Repositories to track\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}
