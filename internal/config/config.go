package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage backends understood by CreateRepository.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default data filenames, one per backend.
const (
	DefaultDataFile       = "todo_widget_data.json"
	DefaultSQLiteDataFile = "todo_widget_data.db"
)

// Layout modes. Single keeps one chronologically sorted list; split keeps a
// daily list next to the dated list.
const (
	LayoutSingle = "single"
	LayoutSplit  = "split"
)

// Config holds all configuration options for the task widget
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Layout      LayoutConfig      `yaml:"layout"`
	Display     DisplayConfig     `yaml:"display"`
	Validation  ValidationConfig  `yaml:"validation"`
	Import      ImportConfig      `yaml:"import"`
	Application ApplicationConfig `yaml:"application"`
}

// StorageConfig holds persistence-related configuration
type StorageConfig struct {
	Dir            string `yaml:"dir" env:"TW_DATA_DIR"`
	Filename       string `yaml:"filename" env:"TW_DATA_FILE"`
	Backend        string `yaml:"backend" env:"TW_STORAGE_BACKEND"`
	DirPermissions uint32 `yaml:"dir_permissions" env:"TW_DATA_DIR_PERMISSIONS"`
}

// LayoutConfig selects how tasks are grouped on screen and on disk
type LayoutConfig struct {
	Mode           string `yaml:"mode" env:"TW_LAYOUT"`
	DatedViewLimit int    `yaml:"dated_view_limit" env:"TW_DATED_VIEW_LIMIT"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat      string        `yaml:"date_format" env:"TW_DATE_FORMAT"`
	DayAfterLabel   bool          `yaml:"day_after_label" env:"TW_DAY_AFTER_LABEL"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"TW_REFRESH_INTERVAL"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TextMaxLength        int `yaml:"text_max_length" env:"TW_TEXT_MAX"`
	DescriptionMaxLength int `yaml:"description_max_length" env:"TW_DESCRIPTION_MAX"`
}

// ImportConfig holds CSV import configuration
type ImportConfig struct {
	SampleSize int `yaml:"sample_size" env:"TW_IMPORT_SAMPLE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose bool `yaml:"verbose" env:"TW_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = "."
	}

	return &Config{
		Storage: StorageConfig{
			Dir:            homeDir,
			Filename:       DefaultDataFile,
			Backend:        BackendJSON,
			DirPermissions: 0755,
		},
		Layout: LayoutConfig{
			Mode:           LayoutSingle,
			DatedViewLimit: 10,
		},
		Display: DisplayConfig{
			DateFormat:      "01/02/06",
			DayAfterLabel:   true,
			RefreshInterval: time.Minute,
		},
		Validation: ValidationConfig{
			TextMaxLength:        255,
			DescriptionMaxLength: 4000,
		},
		Import: ImportConfig{
			SampleSize: 4096,
		},
	}
}

// GetDataPath returns the full path to the data file
func (c *Config) GetDataPath() string {
	return filepath.Join(c.Storage.Dir, c.DataFilename())
}

// DataFilename returns the configured filename. The sqlite backend swaps the
// JSON default for its own so it never opens the JSON document as a database.
func (c *Config) DataFilename() string {
	if c.Storage.Backend == BackendSQLite && c.Storage.Filename == DefaultDataFile {
		return DefaultSQLiteDataFile
	}
	return c.Storage.Filename
}

// IsSplitLayout reports whether daily and dated tasks are kept apart.
func (c *Config) IsSplitLayout() bool {
	return c.Layout.Mode == LayoutSplit
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable numeric or boolean values are ignored.
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("TW_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TW_DATA_FILE"); filename != "" {
		c.Storage.Filename = filename
	}
	if backend := os.Getenv("TW_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if perms := os.Getenv("TW_DATA_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Storage.DirPermissions = uint32(p)
		}
	}

	// Layout configuration
	if mode := os.Getenv("TW_LAYOUT"); mode != "" {
		c.Layout.Mode = strings.ToLower(mode)
	}
	if limit := os.Getenv("TW_DATED_VIEW_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			c.Layout.DatedViewLimit = n
		}
	}

	// Display configuration
	if format := os.Getenv("TW_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if label := os.Getenv("TW_DAY_AFTER_LABEL"); label != "" {
		if b, err := strconv.ParseBool(label); err == nil {
			c.Display.DayAfterLabel = b
		}
	}
	if interval := os.Getenv("TW_REFRESH_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Display.RefreshInterval = d
		}
	}

	// Validation configuration
	if maxLen := os.Getenv("TW_TEXT_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TextMaxLength = n
		}
	}
	if maxLen := os.Getenv("TW_DESCRIPTION_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.DescriptionMaxLength = n
		}
	}

	// Import configuration
	if sample := os.Getenv("TW_IMPORT_SAMPLE"); sample != "" {
		if n, err := strconv.Atoi(sample); err == nil {
			c.Import.SampleSize = n
		}
	}

	// Application configuration
	if verbose := os.Getenv("TW_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Storage
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "data directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "data filename cannot be empty"}
	}
	if c.Storage.Backend != BackendJSON && c.Storage.Backend != BackendSQLite {
		return &ConfigError{Field: "storage.backend", Message: "backend must be \"json\" or \"sqlite\""}
	}

	// Layout
	if c.Layout.Mode != LayoutSingle && c.Layout.Mode != LayoutSplit {
		return &ConfigError{Field: "layout.mode", Message: "layout must be \"single\" or \"split\""}
	}
	if c.Layout.DatedViewLimit < 0 {
		return &ConfigError{Field: "layout.dated_view_limit", Message: "dated view limit cannot be negative"}
	}

	// Display
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.RefreshInterval < time.Second {
		return &ConfigError{Field: "display.refresh_interval", Message: "refresh interval must be at least one second"}
	}

	// Validation
	if c.Validation.TextMaxLength < 1 {
		return &ConfigError{Field: "validation.text_max_length", Message: "text maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}

	// Import
	if c.Import.SampleSize < 64 {
		return &ConfigError{Field: "import.sample_size", Message: "import sample size must be at least 64 bytes"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
