package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for beamcat.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beamcat",
		Short: "Build synchrotron beamline catalogs from the published facility tables",
		Long: `beamcat scrapes the per-region synchrotron facility pages, extracts each
facility's beamline table, normalizes the messy hand-entered cell text, and
writes one deterministic JSON catalog per region.

Fetched pages are cached locally, so a catalog can be rebuilt offline with
--cached. Known-bad website links are corrected by a built-in override table
that can be extended through a .beamcat config file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
