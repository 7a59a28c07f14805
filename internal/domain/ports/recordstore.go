package ports

import (
	"context"

	"github.com/ersonp/gedcheck/internal/domain/entities"
)

// RecordStore persists parsed record sets as snapshots so they can be re-validated
// without the original file.
type RecordStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// SaveSnapshot stores a record set under a new snapshot ID.
	SaveSnapshot(ctx context.Context, source string, set *entities.RecordSet) (*entities.Snapshot, error)

	// LoadSnapshot reconstructs the record set stored under id, preserving record and link order.
	LoadSnapshot(ctx context.Context, id string) (*entities.RecordSet, error)

	// ListSnapshots lists stored snapshots, newest first.
	ListSnapshots(ctx context.Context, limit int) ([]entities.Snapshot, error)

	// DeleteSnapshot deletes a snapshot and all of its records.
	DeleteSnapshot(ctx context.Context, id string) error
}
