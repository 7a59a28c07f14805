package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ersonp/gedcheck/internal/domain/ports"
	"github.com/ersonp/gedcheck/internal/infrastructure/config"
	"github.com/ersonp/gedcheck/internal/infrastructure/logging"
	"github.com/ersonp/gedcheck/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds the dependencies shared by commands.
type Deps struct {
	BasePath string
	Config   *config.Config
	Logger   *slog.Logger
}

// withDeps loads config and the logger, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closer := logging.New(cfg.Log)
	defer closer.Close()

	return fn(&Deps{
		BasePath: cwd,
		Config:   cfg,
		Logger:   logger,
	})
}

// withStore opens the snapshot store, ensuring its schema exists.
func withStore(ctx context.Context, fn func(*Deps, ports.RecordStore) error) error {
	return withDeps(func(d *Deps) error {
		store, err := openStore(d.Config.SQLitePath(d.BasePath))
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensuring sqlite schema: %w", err)
		}

		return fn(d, store)
	})
}

// openStore opens the SQLite snapshot store, creating its directory if needed.
func openStore(path string) (ports.RecordStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: path})
	if err != nil {
		return nil, fmt.Errorf("creating sqlite repository: %w", err)
	}
	return repo, nil
}
