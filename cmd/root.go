package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "College and scholarship discovery portal",
	Long: `Compass is a web portal for discovering colleges and scholarships and
tracking application progress. All records live in the Compass backend API;
this binary serves the portal UI and talks to that API.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
