package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/ports"
	"github.com/ersonp/gedcheck/internal/domain/services"
	"github.com/ersonp/gedcheck/internal/infrastructure/memory"
)

// ValidateHandler validates record files and stored snapshots.
type ValidateHandler struct {
	service *services.ValidationService
	store   ports.RecordStore
}

// NewValidateHandler creates a new validate handler. store may be nil when snapshots
// are not needed.
func NewValidateHandler(service *services.ValidationService, store ports.RecordStore) *ValidateHandler {
	return &ValidateHandler{
		service: service,
		store:   store,
	}
}

// ValidateOptions controls how the input file is read.
type ValidateOptions struct {
	Format string // "gedcom", "json", or "auto"
}

// ValidateResult contains the outcome of a validation.
type ValidateResult struct {
	Source string
	*services.Report
}

// Handle parses a record file and validates it.
func (h *ValidateHandler) Handle(ctx context.Context, filePath string, opts ValidateOptions) (*ValidateResult, error) {
	set, err := loadFile(filePath, opts.Format)
	if err != nil {
		return nil, err
	}
	return h.validate(ctx, filePath, set)
}

// HandleSnapshot validates a record set previously stored with the import command.
func (h *ValidateHandler) HandleSnapshot(ctx context.Context, snapshotID string) (*ValidateResult, error) {
	if h.store == nil {
		return nil, errors.New("snapshot store is not configured")
	}

	set, err := h.store.LoadSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return h.validate(ctx, "snapshot "+snapshotID, set)
}

func (h *ValidateHandler) validate(ctx context.Context, source string, set *entities.RecordSet) (*ValidateResult, error) {
	report, err := h.service.Validate(ctx, memory.NewRepository(set))
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", source, err)
	}
	return &ValidateResult{
		Source: source,
		Report: report,
	}, nil
}
