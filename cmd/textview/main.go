// Package main is the entry point for the textview pager.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliOptions holds the command-line flags.
type cliOptions struct {
	ConfigPath string
	Follow     bool
	LogFile    string
	LogLevel   string
	Kind       string
	Reports    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:   "textview [flags] [file]",
		Short: "Scrollable, selectable terminal text viewer",
		Long: `textview shows a file, standard input or a growing log in the terminal.
Long lines wrap at the window width; drag with the mouse to select text and
press y to copy it.`,
		Example: `  # Page through a file
  textview notes.txt

  # Follow a log as it grows
  textview -f /var/log/app.log

  # Read from a pipe
  make 2>&1 | textview

  # Show a report log filtered by the configured levels
  textview --reports build.log`,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), opts, path)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Keep reading the file as it grows")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "output", "Line kind for the input (output, input, info, error)")
	cmd.Flags().BoolVar(&opts.Reports, "reports", false, "Parse the input as \"level: message\" reports")
	cmd.MarkFlagsMutuallyExclusive("follow", "reports")

	return cmd
}
