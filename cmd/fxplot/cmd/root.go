// Package cmd implements the fxplot command line tool, a small front end
// that visualizes the accuracy of fixed-point computations.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxplot",
	Short: "Explore fixed-point arithmetic accuracy",
	Long: `fxplot demonstrates the fixedpoint package: it evaluates
mathematical constants and functions at selectable resolutions and
compares them against floating-point references.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
