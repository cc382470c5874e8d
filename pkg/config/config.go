// Package config loads filerank settings from filerank.toml/yaml/json.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for filerank.
type Config struct {
	// Path of the JSON data file holding rankings and dependency records.
	DataFile string `koanf:"data_file"`

	// Default depth for dependency trees.
	MaxDepth int `koanf:"max_depth"`

	// Discovery settings for walking directories.
	Discover DiscoverConfig `koanf:"discover"`

	// Output settings.
	Output OutputConfig `koanf:"output"`
}

// DiscoverConfig controls how directories are walked when looking for
// candidate files to rank.
type DiscoverConfig struct {
	Dirs      []string `koanf:"dirs"`
	Patterns  []string `koanf:"patterns"`
	Gitignore bool     `koanf:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, toon
	Color  bool   `koanf:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataFile: "file_rankings.json",
		MaxDepth: 3,
		Discover: DiscoverConfig{
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				"target",
				"dist",
				"build",
				"__pycache__",
			},
			Patterns: []string{
				"*.min.js",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries standard config locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"filerank.toml",
		"filerank.yaml",
		"filerank.yml",
		"filerank.json",
		".filerank.toml",
		".filerank.yaml",
		".filerank.yml",
		".filerank.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}
	return DefaultConfig()
}

// ShouldExclude checks if a path should be skipped during discovery.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Discover.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Discover.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
