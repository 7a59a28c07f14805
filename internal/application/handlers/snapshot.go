package handlers

import (
	"context"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/ports"
)

// SnapshotHandler handles snapshot listing and removal.
type SnapshotHandler struct {
	store ports.RecordStore
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(store ports.RecordStore) *SnapshotHandler {
	return &SnapshotHandler{
		store: store,
	}
}

// HandleList returns stored snapshots, newest first.
func (h *SnapshotHandler) HandleList(ctx context.Context, limit int) ([]entities.Snapshot, error) {
	return h.store.ListSnapshots(ctx, limit)
}

// HandleDelete removes a snapshot and its records.
func (h *SnapshotHandler) HandleDelete(ctx context.Context, id string) error {
	return h.store.DeleteSnapshot(ctx, id)
}
