package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/ports"
)

// ImportHandler handles importing record files into the snapshot store.
type ImportHandler struct {
	store ports.RecordStore
}

// NewImportHandler creates a new import handler.
func NewImportHandler(store ports.RecordStore) *ImportHandler {
	return &ImportHandler{
		store: store,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "gedcom", "json", or "auto"
	DryRun bool   // Parse without saving
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Snapshot    *entities.Snapshot // nil on dry run
	Individuals int
	Families    int
}

// Handle parses a record file and stores it as a new snapshot.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	set, err := loadFile(filePath, opts.Format)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Individuals: len(set.Individuals),
		Families:    len(set.Families),
	}

	if opts.DryRun {
		return result, nil
	}

	snap, err := h.store.SaveSnapshot(ctx, filePath, set)
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	result.Snapshot = snap

	return result, nil
}
