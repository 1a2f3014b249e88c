package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"task-widget/internal/errors"
)

// HandleReadError converts a failed query into a structured persistence read error
func HandleReadError(path string, operation string, err error) error {
	return errors.NewPersistenceReadError(path, fmt.Errorf("%s: %w", operation, err))
}

// HandleWriteError converts a failed statement into a structured persistence write error
func HandleWriteError(path string, operation string, err error) error {
	return errors.NewPersistenceWriteError(path, fmt.Errorf("%s: %w", operation, err))
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, path string, query string, scanFunc func(Rows) ([]*T, error), args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleReadError(path, "query", err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleReadError(path, "scan", err)
	}

	return results, nil
}

// WithTransaction runs fn inside a transaction, committing on success and
// rolling back on any error
func WithTransaction(ctx context.Context, db *sql.DB, path string, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return HandleWriteError(path, "begin transaction", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		if errors.IsAppError(err) {
			return err
		}
		return HandleWriteError(path, "execute", err)
	}

	if err := tx.Commit(); err != nil {
		return HandleWriteError(path, "commit", err)
	}
	return nil
}
