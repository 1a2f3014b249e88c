// Package repository defines the contract between the task store and its
// durable storage.
package repository

import (
	"context"

	"task-widget/internal/domain"
)

// Repository persists whole task snapshots.
//
// Load returns an empty snapshot and a nil error when nothing has been saved
// yet. Unreadable or malformed storage is reported as a persistence read
// error. Save replaces everything previously stored.
type Repository interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snapshot *domain.Snapshot) error
	Close() error
}
