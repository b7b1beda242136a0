package engine

import (
	"github.com/danieljhkim/modlayout/internal/layouts"
	"github.com/danieljhkim/modlayout/internal/planner"
	"github.com/danieljhkim/modlayout/internal/report"
)

// State is where a classification stands.
type State int

const (
	StateNoMatch State = iota
	StateConflict
	StatePendingDecision
	StateMatched
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateNoMatch:
		return "no-match"
	case StateConflict:
		return "conflict"
	case StatePendingDecision:
		return "pending-decision"
	case StateMatched:
		return "matched"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Classification represents the result of classifying one archive.
type Classification struct {
	// State is the classification state
	State State

	// Result is the layout selection this classification is based on
	Result layouts.Result

	// Files is every file in the archive, in listing order
	Files []string

	// Skipped is the list of raw entries that could not be normalized
	Skipped []string

	// Digest identifies the instruction list (empty unless Matched or pending)
	Digest string

	// StructureError is the reported failure for a Conflict
	StructureError *report.StructureError

	// pending holds the deprecated plan until Resolve. Result.Plan stays nil
	// meanwhile.
	pending  *planner.Plan
	features layouts.FeatureSet
}

// Instructions returns the final instructions. Nothing is returned until the
// classification is Matched.
func (c *Classification) Instructions() []planner.Instruction {
	if c == nil || c.State != StateMatched {
		return nil
	}
	return c.Result.Plan.Instructions
}

// PendingFiles returns the sources the deprecated layout would install, for
// the decision prompt.
func (c *Classification) PendingFiles() []string {
	if c == nil || c.State != StatePendingDecision || c.pending == nil {
		return nil
	}
	return c.pending.Sources()
}

// PendingInstructions returns what Proceed would install. It is nil unless
// the classification is waiting for a decision.
func (c *Classification) PendingInstructions() []planner.Instruction {
	if c == nil || c.State != StatePendingDecision || c.pending == nil {
		return nil
	}
	return c.pending.Instructions
}

// InstallResult represents the result of an install.
type InstallResult struct {
	// Classification is the final classification
	Classification *Classification

	// Decision is the prompt answer, if a prompt was needed
	Decision *Decision

	// Executed is the list of instructions carried out (empty if DryRun)
	Executed []planner.Instruction
}
