package engine

import (
	"github.com/danieljhkim/modlayout/internal/layouts"
)

// ClassifyRequest represents a request to classify an archive listing.
type ClassifyRequest struct {
	// Paths is the raw archive listing (files and optional directory entries)
	Paths []string

	// ModInfo is metadata about the archive, used to name relocated folders
	ModInfo layouts.ModInfo

	// Features is passed through to the prompter
	Features layouts.FeatureSet

	// Family restricts classification to one family (empty means all)
	Family string
}

// InstallRequest represents a request to classify and install an archive.
type InstallRequest struct {
	ClassifyRequest

	// Executor carries out the final plan (may be nil when DryRun)
	Executor Executor

	// DryRun classifies and resolves without executing
	DryRun bool
}
