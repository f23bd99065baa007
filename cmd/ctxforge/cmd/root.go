// Package cmd provides the CLI commands for ctxforge.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/logging"
	"github.com/Aman-CERP/ctxforge/pkg/version"
)

// Root flags, shared by every subcommand.
var (
	rootDir    string
	jsonOutput bool
)

var loggingCleanup func()

// NewRootCmd creates the root command for the ctxforge CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ctxforge",
		Short: "Deterministic documentation indexer and context assembler",
		Long: `ctxforge indexes a tree of markdown documents, ranks and clusters
them, resolves their cross-reference graph, and assembles bounded-size
context digests for a query.

Every operation is local, deterministic, and re-runs to the same result
given the same inputs.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if loggingCleanup != nil {
				loggingCleanup()
			}
		},
	}
	cmd.SetVersionTemplate("ctxforge version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root directory")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON output")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newDupesCmd())
	cmd.AddCommand(newDupesSectionsCmd())
	cmd.AddCommand(newAssembleCmd())
	cmd.AddCommand(newCheckLinksCmd())
	cmd.AddCommand(newBacklinksCmd())
	cmd.AddCommand(newOrphansCmd())
	cmd.AddCommand(newCanonicalityCmd())
	cmd.AddCommand(newStaleCmd())
	cmd.AddCommand(newExportGraphCmd())
	cmd.AddCommand(newSuggestConsolidationCmd())
	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newStatsCmd())

	return cmd
}

// setupLogging installs the default file logger before any subcommand runs.
func setupLogging(_ *cobra.Command, _ []string) error {
	cleanup, err := logging.SetupDefault()
	if err != nil {
		// Logging failure should never block the CLI from running.
		return nil
	}
	loggingCleanup = cleanup
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
