// Package main provides the CLI entry point for exmark-go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/exmark-go/internal/logger"
	"github.com/ukaji3/exmark-go/internal/version"
)

var logLevel string

func main() {
	rootCmd := &cobra.Command{
		Use:   "exmark",
		Short: "Stamp background images onto xlsx worksheets",
		Long: `exmark-go binds image files as worksheet backgrounds in xlsx packages:
it stores the image as a media part, wires it to the sheet through a
relationship, and declares its content type in the package manifest.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
			logger.SetLevel(lvl)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newSheetsCommand())
	rootCmd.AddCommand(newVerifyCommand())
	rootCmd.AddCommand(newBatchCommand())
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
