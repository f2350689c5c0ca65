package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/xastools/beamcat/internal/model"
	"github.com/xastools/beamcat/internal/rules"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".beamcat"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file shape. Its main job is carrying
// extra override entries: the source pages change under us, and the
// documented maintenance path is editing this correction list by hand
// rather than patching the built-in table for every drift.
type File struct {
	// OutputDir optionally overrides the catalog output directory.
	OutputDir string `yaml:"output_dir"`

	// Overrides are extra website/name corrections applied after the
	// built-in override table.
	Overrides []rules.Override `yaml:"overrides"`
}

// LoadConfigFile loads configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Override
// entries with an unknown region are rejected rather than silently
// dropped, because a typo here means a correction silently not applied.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	for i, ov := range cf.Overrides {
		region, err := model.ParseRegion(string(ov.Region))
		if err != nil {
			return nil, fmt.Errorf("override %d (%s/%s): %w", i, ov.Facility, ov.Beamline, err)
		}
		cf.Overrides[i].Region = region
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .beamcat in the current directory
//  3. Look for .beamcat in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
