package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the variable that points at an alternative config file.
const ConfigFileEnv = "TW_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader reading the default config file
func NewLoader() *Loader {
	path := os.Getenv(ConfigFileEnv)
	if path == "" {
		path = DefaultConfigPath()
	}
	return &Loader{
		config:   NewConfig(),
		filePath: path,
	}
}

// NewLoaderWithFile creates a loader that reads the given config file.
// An empty path disables the file layer.
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: path,
	}
}

// DefaultConfigPath returns ~/.config/tw/config.yaml, or "" when the user
// config directory cannot be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tw", "config.yaml")
}

// FilePath returns the config file this loader reads.
func (l *Loader) FilePath() string {
	return l.filePath
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, when present
// 3. Override with environment variables
// 4. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFile merges the YAML file over the defaults. Keys absent from the file
// keep their current value. A missing file is not an error.
func (l *Loader) loadFile() error {
	if l.filePath == "" {
		return nil
	}

	data, err := os.ReadFile(l.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("cannot read %s: %v", l.filePath, err)}
	}

	if err := yaml.Unmarshal(data, l.config); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("cannot parse %s: %v", l.filePath, err)}
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	DataDir        *string
	DataFile       *string
	Backend        *string
	DirPermissions *uint32

	// Layout overrides
	Layout         *string
	DatedViewLimit *int

	// Display overrides
	DateFormat      *string
	DayAfterLabel   *bool
	RefreshInterval *time.Duration

	// Validation overrides
	TextMaxLength        *int
	DescriptionMaxLength *int

	// Application overrides
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Storage overrides
	if overrides.DataDir != nil {
		config.Storage.Dir = *overrides.DataDir
	}
	if overrides.DataFile != nil {
		config.Storage.Filename = *overrides.DataFile
	}
	if overrides.Backend != nil {
		config.Storage.Backend = *overrides.Backend
	}
	if overrides.DirPermissions != nil {
		config.Storage.DirPermissions = *overrides.DirPermissions
	}

	// Layout overrides
	if overrides.Layout != nil {
		config.Layout.Mode = *overrides.Layout
	}
	if overrides.DatedViewLimit != nil {
		config.Layout.DatedViewLimit = *overrides.DatedViewLimit
	}

	// Display overrides
	if overrides.DateFormat != nil {
		config.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.DayAfterLabel != nil {
		config.Display.DayAfterLabel = *overrides.DayAfterLabel
	}
	if overrides.RefreshInterval != nil {
		config.Display.RefreshInterval = *overrides.RefreshInterval
	}

	// Validation overrides
	if overrides.TextMaxLength != nil {
		config.Validation.TextMaxLength = *overrides.TextMaxLength
	}
	if overrides.DescriptionMaxLength != nil {
		config.Validation.DescriptionMaxLength = *overrides.DescriptionMaxLength
	}

	// Application overrides
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
