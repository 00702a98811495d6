package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/exmark-go/internal/logger"
	"github.com/ukaji3/exmark-go/pkg/exmark"
)

// newApplyCommand returns the subcommand binding one image to worksheets.
func newApplyCommand() *cobra.Command {
	var (
		imagePath  string
		sheets     []int
		sheetNames []string
		keepRels   bool
	)

	cmd := &cobra.Command{
		Use:   "apply [workbook.xlsx]",
		Short: "Bind an image as the background of one or more worksheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if len(sheets) == 0 && len(sheetNames) == 0 {
				sheets = []int{1}
			}

			plan := &exmark.Plan{
				Workbook: args[0],
				Marks: []exmark.Mark{{
					Image:      imagePath,
					Sheets:     sheets,
					SheetNames: sheetNames,
				}},
			}

			opts := exmark.Options{PreserveSheetRels: keepRels}
			if err := exmark.RunPlan(ctx, plan, opts); err != nil {
				return fmt.Errorf("apply failed: %w", err)
			}

			logger.InfoKV(ctx, "workbook updated", "workbook", args[0])

			return nil
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "Image file to bind (required)")
	cmd.Flags().IntSliceVar(&sheets, "sheet", nil, "Target worksheet number (repeatable; default 1)")
	cmd.Flags().StringSliceVar(&sheetNames, "sheet-name", nil, "Target worksheet display name (repeatable)")
	cmd.Flags().BoolVar(&keepRels, "keep-rels", false, "Keep existing sheet relationships instead of replacing them")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}
