// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "check-versions",
	Short: "Reports the latest releases of the toolkit's companion tools.",
	Long: `check-versions scans README.md (and optionally the release workflow) for
links to the toolkit's companion GitHub repositories and reports the latest
published release of each one.

Settings such as file paths, timeouts and retries can be overridden with
CHECK_VERSIONS_* environment variables. Set CHECK_VERSIONS_VERBOSE=true
to log progress to standard error.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("include-workflow", false, "Also check repositories from the GitHub Actions workflow file")
}
