// Package main provides the entry point for the gedcheck CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "gedcheck",
		Short:         "Checks GEDCOM family trees for duplicate IDs and broken cross-references",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newValidateCmd(),
		newImportCmd(),
		newSnapshotsCmd(),
		newWatchCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
