package config

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"task-widget/internal/repository"
	"task-widget/internal/repository/jsonfile"
	"task-widget/internal/repository/sqlite"
)

// CreateRepository creates the persistence backend selected by the configuration
func CreateRepository(ctx context.Context, config *Config, logger zerolog.Logger) (repository.Repository, error) {
	path := config.GetDataPath()

	switch config.Storage.Backend {
	case BackendSQLite:
		if err := ensureDir(config); err != nil {
			return nil, err
		}
		repo, err := sqlite.New(ctx, path, logger)
		if err != nil {
			// reported by the first Load, the same way a malformed JSON file is
			logger.Warn().Err(err).Str("path", path).Msg("could not open database")
			return sqlite.NewUnavailable(path, err), nil
		}
		return repo, nil
	case BackendJSON, "":
		return jsonfile.New(path, jsonfile.Options{
			Split:          config.IsSplitLayout(),
			DirPermissions: fs.FileMode(config.Storage.DirPermissions),
			Logger:         logger,
		}), nil
	default:
		return nil, &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q", config.Storage.Backend)}
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository(ctx context.Context) (repository.Repository, error) {
	repo, err := sqlite.NewInMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}

// ensureDir creates the data directory with the configured permissions.
func ensureDir(config *Config) error {
	if err := os.MkdirAll(config.Storage.Dir, fs.FileMode(config.Storage.DirPermissions)); err != nil {
		return &ConfigError{Field: "storage.dir", Message: err.Error()}
	}
	return nil
}
