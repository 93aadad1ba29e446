// Package config provides configuration loading and structs for the sahayak assistant.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/sahayak/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                  `yaml:"debug"`
	Server  ServerConfig          `yaml:"server"`
	Catalog CatalogConfig         `yaml:"catalog"`
	Search  SearchConfig          `yaml:"search"`
	Ranking ranking.RankingConfig `yaml:"ranking"`
	Synth   SynthConfig           `yaml:"synth"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                  string `yaml:"host"`
	Port                  int    `yaml:"port"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	// BatchWorkers bounds concurrent queries per batch request. Zero means one per CPU.
	BatchWorkers int `yaml:"batch_workers"`
}

// CatalogConfig selects the provider dataset.
type CatalogConfig struct {
	// Path is a .yaml/.yml/.xlsx dataset. Empty uses the embedded dataset.
	Path string `yaml:"path"`
	// DatabasePath, when set, serves the catalog from SQLite instead of memory.
	DatabasePath string `yaml:"database_path"`
	// Watch reloads the catalog when Path changes.
	Watch *bool `yaml:"watch"`
}

// WatchOrDefault returns whether to watch the dataset file; defaults to true when a path is set.
func (c *CatalogConfig) WatchOrDefault() bool {
	if c.Watch != nil {
		return *c.Watch
	}
	return c.Path != ""
}

// SearchConfig holds candidate retrieval settings.
type SearchConfig struct {
	RadiusKm      float64 `yaml:"radius_km"`
	MinCandidates int     `yaml:"min_candidates"`
	FillTarget    int     `yaml:"fill_target"`
	TextIndex     *bool   `yaml:"text_index"`
	LookupLimit   int     `yaml:"lookup_limit"`
	Fuzziness     int     `yaml:"fuzziness"`
}

// TextIndexOrDefault returns whether to build the full-text index; defaults to true.
func (s *SearchConfig) TextIndexOrDefault() bool {
	if s.TextIndex != nil {
		return *s.TextIndex
	}
	return true
}

// SynthConfig holds synthetic provider settings.
type SynthConfig struct {
	// Seed makes generated providers reproducible. Nil seeds randomly.
	Seed *uint64 `yaml:"seed"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads and parses the config file at path, applies SAHAYAK_* environment
// overrides and defaults, and expands paths. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config
	configDir := "."
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		configDir = filepath.Dir(path)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)

	cfg.Catalog.Path = expandPath(cfg.Catalog.Path, configDir)
	cfg.Catalog.DatabasePath = expandPath(cfg.Catalog.DatabasePath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory. Empty paths stay empty.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
