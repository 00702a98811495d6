package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/exmark-go/pkg/exmark"
)

// newVerifyCommand returns the subcommand checking a background binding.
func newVerifyCommand() *cobra.Command {
	var sheet int

	cmd := &cobra.Command{
		Use:   "verify [workbook.xlsx]",
		Short: "Check that a worksheet's background binding is structurally sound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := exmark.Verify(args[0], sheet)
			if err != nil {
				return fmt.Errorf("verify failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sheet:            %d\n", report.Sheet)
			fmt.Fprintf(out, "picture elements: %d\n", report.Pictures)
			fmt.Fprintf(out, "image rels:       %d\n", report.ImageRels)
			fmt.Fprintf(out, "target:           %s\n", report.Target)
			fmt.Fprintf(out, "media present:    %t\n", report.MediaPresent)
			fmt.Fprintf(out, "default declared: %t\n", report.DefaultDeclared)
			fmt.Fprintf(out, "opens:            %t\n", report.Opens)

			if !report.OK() {
				return fmt.Errorf("sheet %d has no renderable background", sheet)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&sheet, "sheet", 1, "Worksheet number to verify")

	return cmd
}
