// Package engine classifies archives and drives installs.
//
// The engine is the orchestration layer between the CLI and the layout
// catalog. Classification is two-phase: Classify either finishes with
// Matched, NoMatch or Conflict, or stops at PendingDecision when the matched
// layout is deprecated. Resolve takes that pending result and a decision and
// finishes it. Install composes both with a Prompter and an Executor.
//
// Key components:
//   - Engine: holds the catalog and collaborators; no per-attempt state
//   - Classify/Resolve: the two phases
//   - Install: classify, prompt if needed, execute
package engine

import (
	"github.com/danieljhkim/modlayout/internal/hash"
	"github.com/danieljhkim/modlayout/internal/layouts"
	"github.com/danieljhkim/modlayout/internal/report"
)

// Engine orchestrates classification and installs.
// It is the main API surface called by the CLI.
type Engine struct {
	catalog  *layouts.Catalog
	prompter Prompter
	reporter *report.Reporter
	hasher   hash.Hasher
}

// New creates a new Engine with the given dependencies. A nil catalog means
// the built-in one. A nil prompter cancels every deprecated layout; a nil
// reporter discards reports.
func New(
	catalog *layouts.Catalog,
	prompter Prompter,
	reporter *report.Reporter,
	hasher hash.Hasher,
) *Engine {
	if catalog == nil {
		catalog = layouts.DefaultCatalog()
	}
	if prompter == nil {
		prompter = StaticPrompter(Cancel)
	}
	if reporter == nil {
		reporter = report.NewReporter(nil, nil)
	}
	if hasher == nil {
		hasher = hash.NewSHA256Hasher()
	}
	return &Engine{
		catalog:  catalog,
		prompter: prompter,
		reporter: reporter,
		hasher:   hasher,
	}
}

// Catalog returns the catalog the engine classifies against.
func (e *Engine) Catalog() *layouts.Catalog {
	return e.catalog
}
