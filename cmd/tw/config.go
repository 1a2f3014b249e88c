package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"task-widget/internal/config"
	"task-widget/internal/repository"
	"task-widget/internal/repository/jsonfile"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// devDataFile is the data file used in development, relative to the working directory.
const devDataFile = "tw-data.json"

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// Create opens the repository for the current environment
func (rf *RepositoryFactory) Create(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository(cfg, logger), nil
	case Testing:
		return rf.createTestingRepository(ctx)
	default:
		return config.CreateRepository(ctx, cfg, logger)
	}
}

// createDevelopmentRepository keeps a JSON file in the working directory so
// real data is never touched while developing
func (rf *RepositoryFactory) createDevelopmentRepository(cfg *config.Config, logger zerolog.Logger) repository.Repository {
	return jsonfile.New(devDataFile, jsonfile.Options{
		Split:  cfg.IsSplitLayout(),
		Logger: logger,
	})
}

// createTestingRepository uses an in-memory SQLite database
func (rf *RepositoryFactory) createTestingRepository(ctx context.Context) (repository.Repository, error) {
	repo, err := config.CreateTestRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize testing database: %w", err)
	}
	return repo, nil
}

// getEnvironment determines the current environment from TW_ENV
func getEnvironment() Environment {
	switch os.Getenv("TW_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}
