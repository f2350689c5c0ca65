package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/xastools/beamcat/internal/model"
	"github.com/xastools/beamcat/internal/rules"
)

// Default configuration values.
const (
	// DefaultTimeout is generous because the source pages are large,
	// hand-edited documents served from modest infrastructure.
	DefaultTimeout = 60 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "beamcat"
)

// Config holds all options for a beamcat run.
// It is populated from CLI flags and the optional config file, then
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// Regions are the regions to process, in order. Each region is an
	// independent, idempotent run.
	Regions []model.Region

	// UseCache makes the pipeline read pages from the local page cache
	// instead of fetching. A region with no cached page is a fatal error.
	UseCache bool

	// OutputDir is where the per-region catalog files are written.
	OutputDir string

	// CacheDir is the directory holding the SQLite page cache.
	// Defaults to the XDG cache directory.
	CacheDir string

	// WriteMarkdown also emits a human-readable Markdown summary next
	// to each JSON catalog.
	WriteMarkdown bool

	// Timeout is the per-fetch timeout.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .beamcat in the current directory and then
	// in the user's home directory.
	ConfigFilePath string

	// ExtraOverrides are user-supplied website/name corrections loaded
	// from the config file, applied after the built-in override table.
	ExtraOverrides []rules.Override
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero
// values because several defaults are non-zero (timeout, directories),
// and the constructor documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Regions:   model.Regions(),
		OutputDir: ".",
		CacheDir:  XDGCacheDir(),
		Timeout:   DefaultTimeout,
	}
}

// XDGCacheDir returns the XDG cache directory for beamcat.
// On Linux: ~/.cache/beamcat
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// XDGConfigDir returns the XDG config directory for beamcat.
// On Linux: ~/.config/beamcat
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks that the configuration is usable.
// It returns the first problem found; fixing one error often makes
// later ones irrelevant.
func (c *Config) Validate() error {
	if len(c.Regions) == 0 {
		return ErrNoRegions
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	return nil
}
