// Package main provides the lintwire CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var verbose bool

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lintwire",
		Short: "Lint reporting glue for CI workflows",
		Long: `Lintwire runs a lint engine against a checked-out workspace, classifies
its findings by severity, and publishes a Markdown report through the
workflow output file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newCheckCmd(),
		newHistoryCmd(),
	)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
