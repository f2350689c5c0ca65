// Package config provides configuration structures and utilities for
// beamcat. It defines the options for region selection, page caching,
// output destinations, and the user-maintained override file.
package config
