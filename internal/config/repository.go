package config

import (
	"fmt"
	"os"
	"path/filepath"

	"learning-tracker/internal/repository"
	"learning-tracker/internal/repository/gormstore"
	"learning-tracker/internal/repository/sqlite"
)

// CreateRepository opens the backend selected by config.Database.Backend
func CreateRepository(config *Config) (repository.Repository, error) {
	dbPath := config.GetDatabasePath()

	if dbPath != MemoryPath {
		perms := os.FileMode(config.Database.DirPermissions)
		if err := os.MkdirAll(filepath.Dir(dbPath), perms); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var (
		repo repository.Repository
		err  error
	)
	switch config.Database.Backend {
	case BackendGORM:
		repo, err = gormstore.New(dbPath)
	case BackendSQLite, "":
		repo, err = sqlite.New(dbPath)
	default:
		return nil, &ConfigError{Field: "database.backend", Message: "unknown backend " + config.Database.Backend}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (repository.Repository, error) {
	repo, err := sqlite.New(MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
