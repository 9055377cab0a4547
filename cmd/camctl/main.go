// Camctl browses and edits a remote camera directory.
//
// It lists cameras with their location, recorder, task count and status,
// filters and pages through them, and switches a camera between Active and
// Inactive. Running without arguments launches the interactive browser.
//
// Usage:
//
//	camctl [command] [flags]
//
// The API token is read from CAMCTL_API_TOKEN (or the variable named by
// api.token_env in the config file), optionally via a .env file.
// See 'camctl --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/camctl/internal/logging"
	"github.com/muurk/camctl/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "camctl",
	Short: "Camera directory browser",
	Long: `Browse the camera directory and change camera status.

Lists cameras with their location, recorder, task count and status,
filters and pages through them, and switches a camera between Active
and Inactive.

If no command is specified, the interactive browser will launch automatically.`,
	Version:           version.Full(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the browser when no subcommand provided
		return runTUI(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Needs neither config nor logging
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "camctl %s\n", version.Full())
	},
}
