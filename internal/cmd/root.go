// Package cmd implements the binwatch command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "binwatch",
	Short: "Watch filesystem paths with bin-managed resource cleanup",
	Long: `binwatch watches filesystem paths and reports events, with every held
resource (the watcher, tickers, signal connections, and in-flight scans)
owned by a single Bin. Interrupting the program destroys the Bin, which
releases everything exactly once.

It exists as a working demonstration of the bin package; the watching
itself is intentionally simple.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "override configured log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(watchCmd)
}
