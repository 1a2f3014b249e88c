package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "todo_widget_data.json", cfg.Storage.Filename)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, uint32(0755), cfg.Storage.DirPermissions)
	assert.Equal(t, LayoutSingle, cfg.Layout.Mode)
	assert.Equal(t, 10, cfg.Layout.DatedViewLimit)
	assert.Equal(t, "01/02/06", cfg.Display.DateFormat)
	assert.True(t, cfg.Display.DayAfterLabel)
	assert.Equal(t, time.Minute, cfg.Display.RefreshInterval)
	assert.Equal(t, 255, cfg.Validation.TextMaxLength)
	assert.Equal(t, 4096, cfg.Import.SampleSize)
	assert.False(t, cfg.IsSplitLayout())
	require.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("TW_DATA_DIR", "/tmp/tw")
	t.Setenv("TW_DATA_FILE", "tasks.json")
	t.Setenv("TW_STORAGE_BACKEND", "SQLite")
	t.Setenv("TW_DATA_DIR_PERMISSIONS", "700")
	t.Setenv("TW_LAYOUT", "split")
	t.Setenv("TW_DATED_VIEW_LIMIT", "5")
	t.Setenv("TW_DATE_FORMAT", "02/01/06")
	t.Setenv("TW_DAY_AFTER_LABEL", "false")
	t.Setenv("TW_REFRESH_INTERVAL", "30s")
	t.Setenv("TW_TEXT_MAX", "80")
	t.Setenv("TW_DESCRIPTION_MAX", "500")
	t.Setenv("TW_IMPORT_SAMPLE", "1024")
	t.Setenv("TW_VERBOSE", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/tw/tasks.json", cfg.GetDataPath())
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, uint32(0700), cfg.Storage.DirPermissions)
	assert.True(t, cfg.IsSplitLayout())
	assert.Equal(t, 5, cfg.Layout.DatedViewLimit)
	assert.Equal(t, "02/01/06", cfg.Display.DateFormat)
	assert.False(t, cfg.Display.DayAfterLabel)
	assert.Equal(t, 30*time.Second, cfg.Display.RefreshInterval)
	assert.Equal(t, 80, cfg.Validation.TextMaxLength)
	assert.Equal(t, 500, cfg.Validation.DescriptionMaxLength)
	assert.Equal(t, 1024, cfg.Import.SampleSize)
	assert.True(t, cfg.Application.Verbose)
}

func TestConfig_LoadFromEnvironment_IgnoresGarbage(t *testing.T) {
	t.Setenv("TW_DATED_VIEW_LIMIT", "lots")
	t.Setenv("TW_REFRESH_INTERVAL", "often")
	t.Setenv("TW_DAY_AFTER_LABEL", "maybe")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())
	assert.Equal(t, 10, cfg.Layout.DatedViewLimit)
	assert.Equal(t, time.Minute, cfg.Display.RefreshInterval)
	assert.True(t, cfg.Display.DayAfterLabel)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"empty filename", func(c *Config) { c.Storage.Filename = "" }, "storage.filename"},
		{"bad backend", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.backend"},
		{"bad layout", func(c *Config) { c.Layout.Mode = "grid" }, "layout.mode"},
		{"negative limit", func(c *Config) { c.Layout.DatedViewLimit = -1 }, "layout.dated_view_limit"},
		{"empty date format", func(c *Config) { c.Display.DateFormat = "" }, "display.date_format"},
		{"fast refresh", func(c *Config) { c.Display.RefreshInterval = time.Millisecond }, "display.refresh_interval"},
		{"zero text max", func(c *Config) { c.Validation.TextMaxLength = 0 }, "validation.text_max_length"},
		{"tiny sample", func(c *Config) { c.Import.SampleSize = 10 }, "import.sample_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoader_FileLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlDoc := `
storage:
  backend: sqlite
  filename: tasks.db
layout:
  mode: split
display:
  refresh_interval: 15s
  day_after_label: false
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0644))

	cfg, err := NewLoaderWithFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "tasks.db", cfg.Storage.Filename)
	assert.Equal(t, LayoutSplit, cfg.Layout.Mode)
	assert.Equal(t, 15*time.Second, cfg.Display.RefreshInterval)
	assert.False(t, cfg.Display.DayAfterLabel)
	assert.Equal(t, 10, cfg.Layout.DatedViewLimit, "keys absent from the file keep their defaults")
}

func TestLoader_EnvironmentBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  mode: split\n"), 0644))
	t.Setenv("TW_LAYOUT", "single")

	cfg, err := NewLoaderWithFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, LayoutSingle, cfg.Layout.Mode)
}

func TestLoader_MissingFileIsFine(t *testing.T) {
	cfg, err := NewLoaderWithFile(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
}

func TestLoader_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: [unclosed"), 0644))

	_, err := NewLoaderWithFile(path).Load()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "file", cfgErr.Field)
}

func TestLoader_ConfigFileEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(ConfigFileEnv, path)

	assert.Equal(t, path, NewLoader().FilePath())
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	layout := LayoutSplit
	limit := 0
	verbose := true

	cfg, err := NewLoaderWithFile("").LoadWithOverrides(&ConfigOverrides{
		DataDir:        &dir,
		Layout:         &layout,
		DatedViewLimit: &limit,
		Verbose:        &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Storage.Dir)
	assert.True(t, cfg.IsSplitLayout())
	assert.Equal(t, 0, cfg.Layout.DatedViewLimit)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoader_OverridesAreValidated(t *testing.T) {
	bad := "diagonal"
	_, err := NewLoaderWithFile("").LoadWithOverrides(&ConfigOverrides{Layout: &bad})
	assert.Error(t, err)
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(NewConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: json")
	assert.Contains(t, string(data), "refresh_interval: 1m0s")
}
