// Package config manages modlayout configuration and filesystem paths.
//
// Configuration lives under a root directory that can be customized via
// environment variables. The default root is ~/.modlayout/ containing
// config.yaml, an optional .env file and the installs/ record directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by modlayout.
type Paths struct {
	// Root is the base directory for all modlayout data (default: ~/.modlayout)
	Root string

	// Config is the path to the settings file
	Config string

	// Env is the path to the optional .env file
	Env string

	// Installs is the directory holding install records
	Installs string
}

// DefaultPaths returns the default paths for modlayout.
// Paths can be overridden with environment variables:
// - MODLAYOUT_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("MODLAYOUT_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".modlayout")
	}

	return PathsAt(root), nil
}

// PathsAt returns the paths for a root directory.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:     root,
		Config:   filepath.Join(root, "config.yaml"),
		Env:      filepath.Join(root, ".env"),
		Installs: filepath.Join(root, "installs"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Installs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
