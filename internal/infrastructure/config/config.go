// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for gedcheck configuration.
	DefaultConfigDir = ".gedcheck"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default snapshot database file name.
	DefaultDatabaseFile = "snapshots.db"
)

// Valid values for enumerated settings.
var (
	OutputFormats = []string{"text", "json", "csv"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
	LogFormats    = []string{"text", "json"}
)

// Config holds static configuration (read-only after load).
type Config struct {
	Validation ValidationConfig `yaml:"validation,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
	Log        LogConfig        `yaml:"log,omitempty"`
	LLM        LLMConfig        `yaml:"llm,omitempty"`
	SQLite     SQLiteConfig     `yaml:"sqlite,omitempty"`
}

// ValidationConfig selects which rules run and how.
type ValidationConfig struct {
	// Rules lists the rule tags to run (e.g. US22, US26). Empty runs all rules.
	Rules    []string `yaml:"rules,omitempty"`
	Parallel bool     `yaml:"parallel,omitempty"`
}

// OutputConfig holds report defaults.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	// File enables rotated file logging instead of stderr.
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// LLMConfig holds configuration for the LLM provider used by --explain.
type LLMConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	// BaseURL overrides the API endpoint (OpenAI-compatible servers).
	BaseURL string `yaml:"base_url,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite snapshot store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Relative paths are resolved
	// against the directory holding .gedcheck.
	Path string `yaml:"path,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level:      "warn",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		SQLite: SQLiteConfig{
			Path: filepath.Join(DefaultConfigDir, DefaultDatabaseFile),
		},
	}
}

// Load loads configuration from the .gedcheck directory in the given path.
// A missing config file is not an error: defaults are used so validation works
// without running init.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(configFile)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("GEDCHECK_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("output.format %q (valid: %s)", c.Output.Format, strings.Join(OutputFormats, ", "))
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		return fmt.Errorf("log.level %q (valid: %s)", c.Log.Level, strings.Join(LogLevels, ", "))
	}
	if !slices.Contains(LogFormats, c.Log.Format) {
		return fmt.Errorf("log.format %q (valid: %s)", c.Log.Format, strings.Join(LogFormats, ", "))
	}
	return nil
}

// SQLitePath returns the absolute database path for the given base path.
func (c *Config) SQLitePath(basePath string) string {
	if c.SQLite.Path == "" || filepath.IsAbs(c.SQLite.Path) || c.SQLite.Path == ":memory:" {
		return c.SQLite.Path
	}
	return filepath.Join(basePath, c.SQLite.Path)
}

// ConfigDir returns the path to the .gedcheck config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
