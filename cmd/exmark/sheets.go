package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exmark-go/pkg/exmark/opc"
)

// newSheetsCommand returns the subcommand listing worksheets. The file
// number printed in the first column is the number `apply --sheet` expects.
func newSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [workbook.xlsx]",
		Short: "List worksheets with their file numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := opc.OpenPackage(args[0])
			if err != nil {
				return err
			}

			files, err := opc.SheetFiles(pkg)
			if err != nil {
				return err
			}

			f, err := excelize.OpenFile(args[0])
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer f.Close()

			for _, sf := range files {
				visibility := "visible"
				if visible, err := f.GetSheetVisible(sf.Name); err == nil && !visible {
					visibility = "hidden"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", sf.Number, sf.Name, visibility, sf.Path)
			}

			return nil
		},
	}
}
