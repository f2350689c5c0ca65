package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xastools/beamcat/internal/config"
	"github.com/xastools/beamcat/internal/database"
	"github.com/xastools/beamcat/internal/log"
	"github.com/xastools/beamcat/internal/model"
)

// seedPage mirrors the real page shape: a master table with a header
// label row and one facility row, followed by that facility's table.
const seedPage = `<html><body>
<table>
  <tr><th>Operating</th></tr>
  <tr><td>APS Advanced Photon Source</td><td>USA</td></tr>
</table>
<table>
  <tr><th>Beamline</th><th>Range</th><th>Flux</th><th>Size</th><th>Purpose</th><th>Status</th></tr>
  <tr><td>10-ID-B</td><td>6-23</td><td>10<sup>11</sup></td><td>0.5x0.5</td><td>General</td><td>Operational</td></tr>
</table>
</body></html>`

func TestNewScrapeCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates scrape command with expected flags", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()

		if !strings.HasPrefix(cmd.Use, "scrape") {
			t.Errorf("expected Use to start with 'scrape', got %s", cmd.Use)
		}

		for _, name := range []string{"cached", "output", "cache-dir", "markdown", "timeout", "config"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %s to exist", name)
			}
		}
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults to all regions", func(t *testing.T) {
		t.Parallel()

		cfg, err := buildConfig(NewScrapeCmd(), nil)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if len(cfg.Regions) != 3 {
			t.Errorf("expected 3 regions, got %v", cfg.Regions)
		}
		if cfg.UseCache {
			t.Error("expected UseCache to default to false")
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Timeout)
		}
	})

	t.Run("parses region arguments case-insensitively", func(t *testing.T) {
		t.Parallel()

		cfg, err := buildConfig(NewScrapeCmd(), []string{"Europe", "AMERICAS"})
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		want := []model.Region{model.RegionEurope, model.RegionAmericas}
		if len(cfg.Regions) != 2 || cfg.Regions[0] != want[0] || cfg.Regions[1] != want[1] {
			t.Errorf("expected %v, got %v", want, cfg.Regions)
		}
	})

	t.Run("rejects unknown region", func(t *testing.T) {
		t.Parallel()

		_, err := buildConfig(NewScrapeCmd(), []string{"antarctica"})
		if !errors.Is(err, model.ErrUnknownRegion) {
			t.Errorf("expected ErrUnknownRegion, got %v", err)
		}
	})

	t.Run("applies flag values", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()
		for flag, value := range map[string]string{
			"cached":    "true",
			"output":    "/tmp/catalogs",
			"cache-dir": "/tmp/cache",
			"markdown":  "true",
			"timeout":   "10s",
		} {
			if err := cmd.Flags().Set(flag, value); err != nil {
				t.Fatalf("failed to set %s: %v", flag, err)
			}
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if !cfg.UseCache {
			t.Error("expected UseCache to be true")
		}
		if cfg.OutputDir != "/tmp/catalogs" {
			t.Errorf("expected OutputDir /tmp/catalogs, got %s", cfg.OutputDir)
		}
		if cfg.CacheDir != "/tmp/cache" {
			t.Errorf("expected CacheDir /tmp/cache, got %s", cfg.CacheDir)
		}
		if !cfg.WriteMarkdown {
			t.Error("expected WriteMarkdown to be true")
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
		}
	})

	t.Run("explicit config path that does not exist is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()
		if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yml")); err != nil {
			t.Fatalf("failed to set config flag: %v", err)
		}

		if _, err := buildConfig(cmd, nil); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("loads overrides and output dir from config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".beamcat")
		content := `output_dir: ./catalogs
overrides:
  - region: americas
    facility: APS
    beamline: 20-BM-B
    website: https://example.org/
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewScrapeCmd()
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatalf("failed to set config flag: %v", err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if cfg.OutputDir != "./catalogs" {
			t.Errorf("expected OutputDir from config file, got %s", cfg.OutputDir)
		}
		if len(cfg.ExtraOverrides) != 1 || cfg.ExtraOverrides[0].Beamline != "20-BM-B" {
			t.Errorf("expected one override for 20-BM-B, got %+v", cfg.ExtraOverrides)
		}
	})

	t.Run("output flag wins over config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".beamcat")
		if err := os.WriteFile(path, []byte("output_dir: ./from-file\n"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewScrapeCmd()
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatalf("failed to set config flag: %v", err)
		}
		if err := cmd.Flags().Set("output", "./from-flag"); err != nil {
			t.Fatalf("failed to set output flag: %v", err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if cfg.OutputDir != "./from-flag" {
			t.Errorf("expected flag to win, got %s", cfg.OutputDir)
		}
	})
}

// TestRunScrapeCached builds catalogs offline from a seeded page cache.
func TestRunScrapeCached(t *testing.T) {
	t.Parallel()

	seedCache := func(t *testing.T, dir string, regions ...model.Region) {
		t.Helper()
		cache, err := database.Open(dir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}
		defer cache.Close()
		for _, region := range regions {
			if err := cache.Put(context.Background(), region, region.URL(), seedPage); err != nil {
				t.Fatalf("failed to seed cache: %v", err)
			}
		}
	}

	t.Run("writes the catalog file", func(t *testing.T) {
		t.Parallel()

		cacheDir := t.TempDir()
		outDir := t.TempDir()
		seedCache(t, cacheDir, model.RegionAmericas)

		cfg := config.NewConfig()
		cfg.Regions = []model.Region{model.RegionAmericas}
		cfg.UseCache = true
		cfg.CacheDir = cacheDir
		cfg.OutputDir = outDir

		var out bytes.Buffer
		if err := runScrape(context.Background(), cfg, log.Discard(), &out); err != nil {
			t.Fatalf("runScrape failed: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(outDir, "beamlines_americas.json"))
		if err != nil {
			t.Fatalf("expected catalog file: %v", err)
		}

		var records map[string]map[string]map[string]string
		if err := json.Unmarshal(data, &records); err != nil {
			t.Fatalf("catalog is not valid JSON: %v", err)
		}
		bl, ok := records["APS"]["10-ID-B"]
		if !ok {
			t.Fatalf("expected APS/10-ID-B record, got %v", records)
		}
		if bl["flux"] != "10^11" {
			t.Errorf("expected normalized flux 10^11, got %s", bl["flux"])
		}
		if bl["website"] != "https://mrcat.iit.edu/" {
			t.Errorf("expected override website, got %s", bl["website"])
		}

		if !strings.Contains(out.String(), "americas: 1 beamlines across 1 facilities") {
			t.Errorf("expected summary line, got %q", out.String())
		}
	})

	t.Run("writes a markdown summary when enabled", func(t *testing.T) {
		t.Parallel()

		cacheDir := t.TempDir()
		outDir := t.TempDir()
		seedCache(t, cacheDir, model.RegionEurope)

		cfg := config.NewConfig()
		cfg.Regions = []model.Region{model.RegionEurope}
		cfg.UseCache = true
		cfg.CacheDir = cacheDir
		cfg.OutputDir = outDir
		cfg.WriteMarkdown = true

		var out bytes.Buffer
		if err := runScrape(context.Background(), cfg, log.Discard(), &out); err != nil {
			t.Fatalf("runScrape failed: %v", err)
		}

		md, err := os.ReadFile(filepath.Join(outDir, "beamlines_europe.md"))
		if err != nil {
			t.Fatalf("expected markdown summary: %v", err)
		}
		if !strings.Contains(string(md), "Beamline Catalog: europe") {
			t.Errorf("expected summary heading, got %s", md)
		}
	})

	t.Run("empty cache in cached mode is fatal", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Regions = []model.Region{model.RegionAsia}
		cfg.UseCache = true
		cfg.CacheDir = t.TempDir()
		cfg.OutputDir = t.TempDir()

		var out bytes.Buffer
		err := runScrape(context.Background(), cfg, log.Discard(), &out)
		if !errors.Is(err, database.ErrNotCached) {
			t.Errorf("expected ErrNotCached, got %v", err)
		}
	})
}
