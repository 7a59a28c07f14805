package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ersonp/gedcheck/internal/application/handlers"
)

type watchFlags struct {
	format      string
	inputFormat string
	rules       []string
	parallel    bool
}

func newWatchCmd() *cobra.Command {
	var flags watchFlags

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-validate a file every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Report format (text, json, csv)")
	cmd.Flags().StringVar(&flags.inputFormat, "input-format", "auto", "Input file format (gedcom, json, auto)")
	cmd.Flags().StringSliceVarP(&flags.rules, "rules", "r", nil, "Rules to run (US22, US26)")
	cmd.Flags().BoolVar(&flags.parallel, "parallel", false, "Run rules concurrently")

	return cmd
}

func runWatch(cmd *cobra.Command, filePath string, flags watchFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	return withDeps(func(d *Deps) error {
		service, err := newValidationService(d, validateFlags{rules: flags.rules, parallel: flags.parallel})
		if err != nil {
			return err
		}

		w := &fileWatcher{
			path:    absPath,
			handler: handlers.NewValidateHandler(service, nil),
			opts:    handlers.ValidateOptions{Format: flags.inputFormat},
			format:  flags.format,
			out:     os.Stdout,
			logger:  d.Logger,
		}
		return w.run(cmd.Context())
	})
}

// fileWatcher re-runs validation when the watched file is written or replaced.
type fileWatcher struct {
	path    string
	handler *handlers.ValidateHandler
	opts    handlers.ValidateOptions
	format  string
	out     io.Writer
	logger  *slog.Logger

	mu sync.Mutex // serializes validations triggered by the debounce timer
}

func (w *fileWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory so editors that replace the file are still seen
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	w.validate(ctx)
	fmt.Fprintf(w.out, "Watching %s (Ctrl+C to stop)\n", w.path)

	timer := time.AfterFunc(time.Hour, func() { w.validate(ctx) })
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.DebugContext(ctx, "file change detected",
				slog.String("file", event.Name),
				slog.String("op", event.Op.String()),
			)
			timer.Reset(WatchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "file watcher error", slog.Any("error", err))
		}
	}
}

func (w *fileWatcher) relevant(event fsnotify.Event) bool {
	return filepath.Clean(event.Name) == w.path && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// validate prints a fresh report. Errors are reported and watching continues.
func (w *fileWatcher) validate(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	result, err := w.handler.Handle(ctx, w.path, w.opts)
	if err != nil {
		fmt.Fprintf(w.out, "error: %v\n", err)
		return
	}
	if err := writeReport(w.out, w.format, result); err != nil {
		fmt.Fprintf(w.out, "error: %v\n", err)
	}
}
