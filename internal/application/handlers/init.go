package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/gedcheck/internal/domain/ports"
	"github.com/ersonp/gedcheck/internal/infrastructure/config"
)

// StoreOpener opens the snapshot store at the given path.
type StoreOpener func(path string) (ports.RecordStore, error)

// InitHandler handles workspace initialization.
type InitHandler struct {
	openStore StoreOpener
}

// NewInitHandler creates a new init handler. openStore may be nil to skip creating the
// snapshot database.
func NewInitHandler(openStore StoreOpener) *InitHandler {
	return &InitHandler{
		openStore: openStore,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	DatabasePath string
}

// Handle writes the default config and creates the snapshot schema.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("gedcheck already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	result := &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
	}

	if h.openStore != nil {
		dbPath := cfg.SQLitePath(basePath)
		store, err := h.openStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot store: %w", err)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating snapshot schema: %w", err)
		}
		result.DatabasePath = dbPath
	}

	return result, nil
}
