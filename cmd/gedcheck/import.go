package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/gedcheck/internal/application/handlers"
	"github.com/ersonp/gedcheck/internal/domain/ports"
)

type importFlags struct {
	format string
	dryRun bool
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a GEDCOM or JSON file as a snapshot",
		Long:  "Parses a record file and stores it in the snapshot database for later validation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (gedcom, json, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Parse without saving")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	ctx := cmd.Context()

	return withStore(ctx, func(d *Deps, store ports.RecordStore) error {
		handler := handlers.NewImportHandler(store)

		fmt.Printf("Importing %s...\n", filePath)

		result, err := handler.Handle(ctx, filePath, handlers.ImportOptions{
			Format: flags.format,
			DryRun: flags.dryRun,
		})
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if flags.dryRun {
			fmt.Printf("Dry run: %d individuals, %d families would be imported\n", result.Individuals, result.Families)
			return nil
		}

		fmt.Printf("Imported: %d individuals, %d families\n", result.Individuals, result.Families)
		fmt.Printf("Snapshot: %s\n", result.Snapshot.ID)
		return nil
	})
}
