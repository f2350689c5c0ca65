package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xastools/beamcat/internal/config"
	"github.com/xastools/beamcat/internal/database"
	"github.com/xastools/beamcat/internal/fetch"
	"github.com/xastools/beamcat/internal/log"
	"github.com/xastools/beamcat/internal/model"
	"github.com/xastools/beamcat/internal/pipeline"
	"github.com/xastools/beamcat/internal/report"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape [region ...]",
		Short: "Scrape beamline tables and write per-region catalogs",
		Long: `Scrape fetches each region's facility page, extracts the master table and
every per-facility beamline table, normalizes the cell text, applies the
manual override corrections, and writes one JSON catalog per region.

Regions: americas, asia, europe (default: all three).

Examples:
  # Build all three regional catalogs
  beamcat scrape

  # Rebuild just Europe from the locally cached page
  beamcat scrape --cached europe

  # Write catalogs plus Markdown summaries into a directory
  beamcat scrape --markdown -o ./catalogs

Configuration file (.beamcat) example:
  output_dir: ./catalogs
  overrides:
    - region: americas
      facility: APS
      beamline: 10-ID-B
      website: https://mrcat.iit.edu/`,
		Args: cobra.ArbitraryArgs,
		RunE: runScrapeCmd,
	}

	cmd.Flags().Bool("cached", false,
		"Use the locally cached page instead of fetching (fatal if a region is not cached)")
	cmd.Flags().StringP("output", "o", "",
		"Output directory for catalog files (default: current directory)")
	cmd.Flags().String("cache-dir", "",
		"Directory for the page cache database (default: XDG cache directory)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown summary next to each JSON catalog")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each page fetch")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .beamcat in current or home directory)")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScrape(ctx, cfg, logger, cmd.OutOrStdout())
}

// buildConfig creates a Config from cobra command flags and arguments.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	if len(args) > 0 {
		regions := make([]model.Region, 0, len(args))
		for _, arg := range args {
			region, err := model.ParseRegion(arg)
			if err != nil {
				return nil, err
			}
			regions = append(regions, region)
		}
		cfg.Regions = regions
	}

	var err error

	cfg.UseCache, err = cmd.Flags().GetBool("cached")
	if err != nil {
		return nil, err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	if output != "" {
		cfg.OutputDir = output
	}

	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, err
	}
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	cfg.WriteMarkdown, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Load the config file. If the user explicitly specified a path,
	// a missing file is an error; otherwise silently run without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ExtraOverrides = cf.Overrides
		if cf.OutputDir != "" && output == "" {
			cfg.OutputDir = cf.OutputDir
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runScrape builds and writes the catalog for every selected region.
// Regions are processed sequentially; a failure in any region aborts
// the run so a broken page never produces a silently wrong catalog.
func runScrape(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	logger.Info("starting scrape",
		"regions", cfg.Regions,
		"cached", cfg.UseCache,
		"outputDir", cfg.OutputDir,
	)

	// Typed-nil care: the pipeline checks its cache interface against
	// nil, so only assign it when a cache actually opened.
	var cache pipeline.PageCache
	pc, err := database.Open(cfg.CacheDir, database.DefaultOptions())
	if err != nil {
		if cfg.UseCache {
			return fmt.Errorf("failed to open page cache: %w", err)
		}
		logger.Warn("page cache unavailable, pages will not be cached", "error", err)
	} else {
		defer pc.Close()
		cache = pc
	}

	fetcher := fetch.New(nil, fetch.WithTimeout(cfg.Timeout))

	for _, region := range cfg.Regions {
		if err := scrapeRegion(ctx, cfg, region, fetcher, cache, logger, out); err != nil {
			return fmt.Errorf("region %s: %w", region, err)
		}
	}

	return nil
}

// scrapeRegion runs the pipeline for one region and writes its files.
func scrapeRegion(ctx context.Context, cfg *config.Config, region model.Region,
	fetcher pipeline.Fetcher, cache pipeline.PageCache, logger *slog.Logger,
	out io.Writer,
) error {
	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewPageStep(fetcher, cache, cfg.UseCache, logger),
		pipeline.NewFacilitiesStep(logger),
		pipeline.NewBeamlinesStep(logger),
		pipeline.NewOverridesStep(cfg.ExtraOverrides, logger),
	)

	st := pipeline.NewState(region)
	if err := p.Execute(ctx, st); err != nil {
		return err
	}

	data, err := report.Serialize(st.Catalog)
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}

	catalogPath := filepath.Join(cfg.OutputDir, region.CatalogFile())
	if err := report.WriteFile(catalogPath, data); err != nil {
		return err
	}

	if cfg.WriteMarkdown {
		var buf bytes.Buffer
		if _, err := report.NewMarkdownWriter(&buf).Write(st.Catalog); err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
		summaryPath := filepath.Join(cfg.OutputDir, region.SummaryFile())
		if err := report.WriteFile(summaryPath, buf.Bytes()); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "%s: %d beamlines across %d facilities -> %s\n",
		region, st.Catalog.BeamlineCount(), len(st.Catalog.Facilities), catalogPath)
	return nil
}
