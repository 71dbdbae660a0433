// Package config provides configuration loading and structs for the ayudante
// server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/acadbot/ayudante/internal/ranking"
)

// DefaultPath is where the config file lives on an installed system.
const DefaultPath = "/usr/local/etc/ayudante/config.yaml"

// Config holds all configuration for the application.
type Config struct {
	Debug    bool                 `yaml:"debug"`
	Server   ServerConfig         `yaml:"server"`
	Storage  StorageConfig        `yaml:"storage"`
	Corpus   CorpusConfig         `yaml:"corpus"`
	Dialog   DialogConfig         `yaml:"dialog"`
	Ranking  ranking.RankerConfig `yaml:"ranking"`
	Fallback FallbackConfig       `yaml:"fallback"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// CorpusConfig holds the corpus dataset settings.
type CorpusConfig struct {
	// DatasetPath is the JSON or XLSX file holding the corpus records.
	DatasetPath string `yaml:"dataset_path"`
	// Watch enables automatic reload when the dataset file changes.
	Watch *bool `yaml:"watch"`
}

// WatchOrDefault returns whether to watch the dataset; defaults to true.
func (c *CorpusConfig) WatchOrDefault() bool {
	if c.Watch != nil {
		return *c.Watch
	}
	return true
}

// DialogConfig holds conversation settings.
type DialogConfig struct {
	// FuzzyThreshold is the minimum similarity for article suggestions.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// FallbackConfig holds the external responder settings. The API key is never
// read from the file; it comes from the environment variable named by
// APIKeyEnv.
type FallbackConfig struct {
	Enabled   *bool  `yaml:"enabled"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// EnabledOrDefault returns whether the fallback is enabled; defaults to true.
func (c *FallbackConfig) EnabledOrDefault() bool {
	if c.Enabled != nil {
		return *c.Enabled
	}
	return true
}

// APIKey reads the key from the configured environment variable.
func (c *FallbackConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Corpus.DatasetPath = expandPath(cfg.Corpus.DatasetPath, configDir)

	return &cfg, nil
}

// Resolve picks the config file to load: an explicit flag path wins, then a
// config.yaml in the current directory (development), then DefaultPath.
func Resolve(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return DefaultPath
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
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
