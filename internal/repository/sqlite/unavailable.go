package sqlite

import (
	"context"
	"fmt"

	"task-widget/internal/domain"
	"task-widget/internal/errors"
)

// Unavailable stands in for a database that could not be opened. Load reports
// the open failure and Save refuses, so the file on disk is left untouched.
// It implements repository.Repository.
type Unavailable struct {
	path  string
	cause error
}

// NewUnavailable wraps the error New returned for path.
func NewUnavailable(path string, cause error) *Unavailable {
	return &Unavailable{path: path, cause: cause}
}

// Path returns the database path that failed to open.
func (u *Unavailable) Path() string {
	return u.path
}

// Load returns an empty snapshot together with a persistence read error.
func (u *Unavailable) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{Daily: []domain.Task{}, Dated: []domain.Task{}}
	if errors.IsErrorType(u.cause, errors.ErrorTypePersistenceRead) {
		return snap, u.cause
	}
	return snap, errors.NewPersistenceReadError(u.path, u.cause)
}

// Save always fails with a persistence write error.
func (u *Unavailable) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	return errors.NewPersistenceWriteError(u.path, fmt.Errorf("database could not be opened: %w", u.cause))
}

// Close is a no-op.
func (u *Unavailable) Close() error {
	return nil
}
