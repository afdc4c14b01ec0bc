// Package cli defines Cobra command definitions for the create-godog-playwright CLI.
// This file contains the root command, which scaffolds a project.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/berth-dev/godog-playwright/internal/generator"
	"github.com/berth-dev/godog-playwright/internal/log"
)

var version = "dev" // set via ldflags at build time

// newRootCmd builds the command tree. genOpts are applied to every
// Generator the root command creates.
func newRootCmd(genOpts ...generator.Option) *cobra.Command {
	var (
		opts    generator.Options
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "create-godog-playwright [rootDir]",
		Short: "Scaffold end-to-end tests with godog and Playwright",
		Long: `Scaffolds an end-to-end test suite in rootDir (default: the current
directory): a Go module running godog features against Playwright
browsers, with page objects, a sample feature and Makefile targets.

Thanks for using create-godog-playwright.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir := "."
			if len(args) == 1 {
				rootDir = args[0]
			}

			options := append([]generator.Option{
				generator.WithLogger(newLogger(verbose)),
				generator.WithOutput(cmd.OutOrStdout()),
			}, genOpts...)

			gen, err := generator.New(rootDir, opts, options...)
			if err != nil {
				return err
			}
			return gen.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.Browsers, "browser", "b", nil, "browsers to use in default config (default: 'chromium,firefox,webkit')")
	flags.BoolVar(&opts.NoBrowsers, "no-browsers", false, "do not download browsers (can be done manually via 'go tool playwright install')")
	flags.BoolVar(&opts.InstallDeps, "install-deps", false, "install operating system dependencies")
	flags.BoolVar(&opts.Quiet, "quiet", false, "do not ask for interactive input prompts")
	flags.StringVar(&opts.Module, "module", "", "module path for a new go.mod (default: the directory name)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log diagnostic details to stderr")

	cmd.AddCommand(newCleanTracesCmd())
	return cmd
}

// newLogger returns the environment-configured logger, forced to debug
// when verbose is set.
func newLogger(verbose bool) *charmlog.Logger {
	opts := log.OptionsFromEnv("create-godog-playwright")
	if verbose {
		opts.Level = "debug"
	}
	return log.NewWithOptions(opts)
}

// Execute runs the root command. Called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
