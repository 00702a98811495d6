package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/exmark-go/pkg/exmark"
)

// newBatchCommand returns the subcommand applying a YAML plan.
func newBatchCommand() *cobra.Command {
	var keepRels bool

	cmd := &cobra.Command{
		Use:   "batch [plan.yaml]",
		Short: "Apply a YAML plan of background bindings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			plan, err := exmark.LoadPlan(args[0])
			if err != nil {
				return fmt.Errorf("load plan: %w", err)
			}

			opts := exmark.Options{PreserveSheetRels: keepRels}
			if err := exmark.RunPlan(ctx, plan, opts); err != nil {
				return fmt.Errorf("batch failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&keepRels, "keep-rels", false, "Keep existing sheet relationships instead of replacing them")

	return cmd
}
