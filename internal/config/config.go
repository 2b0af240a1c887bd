package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run history configuration
type HistoryConfig struct {
	// Enabled records every run in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the SQLite history database
	DBPath string `yaml:"db_path"`
}

// Config represents treegen configuration options
type Config struct {
	// MaxNameLen is the longest entry name accepted, in characters
	MaxNameLen int `yaml:"max_name_len"`

	// DryRun announces actions without touching the filesystem
	DryRun bool `yaml:"dry_run"`

	// OutputDir is the directory the tree is created under
	OutputDir string `yaml:"output_dir"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory for run logs; empty disables file logging
	LogDir string `yaml:"log_dir"`

	// SkipPreview is how many skip records the summary lists
	SkipPreview int `yaml:"skip_preview"`

	// Lock serializes real runs against the same output directory
	Lock bool `yaml:"lock"`

	// Manifest is a file the run result is written to as YAML; empty disables it
	Manifest string `yaml:"manifest"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		MaxNameLen:  120,
		DryRun:      false,
		OutputDir:   ".",
		LogLevel:    "info",
		LogDir:      "",
		SkipPreview: 15,
		Lock:        true,
		Manifest:    "",
		History: HistoryConfig{
			Enabled: false,
			DBPath:  filepath.Join(StateDirName, "history.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Booleans and explicit zero values only apply when the key is present,
	// so look at the raw document as well
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	has := func(m map[string]interface{}, key string) bool {
		_, ok := m[key]
		return ok
	}

	if has(rawMap, "max_name_len") {
		cfg.MaxNameLen = fileCfg.MaxNameLen
	}
	if has(rawMap, "dry_run") {
		cfg.DryRun = fileCfg.DryRun
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if has(rawMap, "log_dir") {
		cfg.LogDir = fileCfg.LogDir
	}
	if has(rawMap, "skip_preview") {
		cfg.SkipPreview = fileCfg.SkipPreview
	}
	if has(rawMap, "lock") {
		cfg.Lock = fileCfg.Lock
	}
	if has(rawMap, "manifest") {
		cfg.Manifest = fileCfg.Manifest
	}

	if section, ok := rawMap["history"].(map[string]interface{}); ok {
		if has(section, "enabled") {
			cfg.History.Enabled = fileCfg.History.Enabled
		}
		if has(section, "db_path") {
			cfg.History.DBPath = fileCfg.History.DBPath
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .treegen/config.yaml in the specified directory
// (or from $TREEGEN_HOME/config.yaml). A missing file yields the defaults.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(ResolveHome(dir), "config.yaml"))
}

// Flags carries CLI flag values. Nil fields were not set on the command
// line and leave the configuration untouched.
type Flags struct {
	MaxNameLen *int
	DryRun     *bool
	OutputDir  *string
	LogLevel   *string
	LogDir     *string
	Lock       *bool
	Manifest   *string
	History    *bool
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(f Flags) {
	if f.MaxNameLen != nil {
		c.MaxNameLen = *f.MaxNameLen
	}
	if f.DryRun != nil {
		c.DryRun = *f.DryRun
	}
	if f.OutputDir != nil {
		c.OutputDir = *f.OutputDir
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
	if f.Lock != nil {
		c.Lock = *f.Lock
	}
	if f.Manifest != nil {
		c.Manifest = *f.Manifest
	}
	if f.History != nil {
		c.History.Enabled = *f.History
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.MaxNameLen <= 0 {
		return fmt.Errorf("max_name_len must be > 0, got %d", c.MaxNameLen)
	}

	if c.SkipPreview < 0 {
		return fmt.Errorf("skip_preview must be >= 0, got %d", c.SkipPreview)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
