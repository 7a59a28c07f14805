package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/gedcheck/internal/application/handlers"
	"github.com/ersonp/gedcheck/internal/domain/ports"
)

func newSnapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Manage stored snapshots",
	}

	cmd.AddCommand(newSnapshotsListCmd(), newSnapshotsDeleteCmd())
	return cmd
}

func newSnapshotsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(d *Deps, store ports.RecordStore) error {
				snapshots, err := handlers.NewSnapshotHandler(store).HandleList(ctx, limit)
				if err != nil {
					return fmt.Errorf("listing snapshots: %w", err)
				}

				if len(snapshots) == 0 {
					fmt.Println("No snapshots found.")
					return nil
				}

				for _, s := range snapshots {
					fmt.Printf("%s  %s  %d individuals, %d families  %s\n",
						s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.Individuals, s.Families, s.Source)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSnapshotListLimit, "Maximum number of snapshots to display")
	return cmd
}

func newSnapshotsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <snapshot-id>",
		Short: "Delete a snapshot and its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			if !force && !confirmAction(fmt.Sprintf("Delete snapshot %s?", id)) {
				fmt.Println("Cancelled.")
				return nil
			}

			return withStore(ctx, func(d *Deps, store ports.RecordStore) error {
				if err := handlers.NewSnapshotHandler(store).HandleDelete(ctx, id); err != nil {
					return fmt.Errorf("deleting snapshot: %w", err)
				}
				fmt.Printf("Deleted snapshot: %s\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}

func confirmAction(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", prompt)
	response, _ := reader.ReadString('\n') // Error ignored: EOF/error treated as "no"
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
