package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/modlayout/internal/filetree"
	"github.com/danieljhkim/modlayout/internal/layouts"
)

const defaultInstaller = "modlayout"

// Classify builds the archive tree and selects a layout.
//
// NoMatch and Conflict are returned as states, not errors. A Conflict is
// reported to the reporter with the archive's full file list. A deprecated
// match stops at StatePendingDecision and exposes no instructions until
// Resolve is called.
func (e *Engine) Classify(ctx context.Context, req *ClassifyRequest) (*Classification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Paths) == 0 {
		return nil, ErrEmptyInput
	}

	tree := filetree.Build(req.Paths)

	c := &Classification{
		Files:    tree.SourcePaths(),
		Skipped:  tree.Skipped(),
		features: req.Features,
	}
	if len(c.Skipped) > 0 {
		e.reporter.Debug(defaultInstaller, fmt.Sprintf("skipped %d malformed entries", len(c.Skipped)), c.Skipped)
	}

	result, err := e.selectLayout(tree, req)
	if err != nil {
		return nil, err
	}
	c.Result = result

	switch result.Outcome {
	case layouts.NoMatch:
		c.State = StateNoMatch
		e.reporter.Debug(installerName(result, req.Family), "no layout matched", c.Files)

	case layouts.Conflict:
		c.State = StateConflict
		c.StructureError = e.reporter.UnrecoverableStructure(installerName(result, req.Family), conflictMessage(result), c.Files)

	case layouts.Matched:
		c.Digest = e.hasher.HashInstructions(result.Plan.Instructions)
		if result.Deprecated {
			c.State = StatePendingDecision
			c.pending, c.Result.Plan = result.Plan, nil
			e.reporter.Info(installerName(result, req.Family),
				fmt.Sprintf("deprecated layout %s, waiting for a decision", result.Layout))
		} else {
			c.State = StateMatched
		}
	}

	return c, nil
}

func (e *Engine) selectLayout(tree *filetree.Tree, req *ClassifyRequest) (layouts.Result, error) {
	if req.Family == "" {
		return e.catalog.Select(tree, req.ModInfo), nil
	}

	f, ok := e.catalog.Family(req.Family)
	if !ok {
		return layouts.Result{}, fmt.Errorf("%w: %s", ErrUnknownFamily, req.Family)
	}
	return f.Select(tree, req.ModInfo), nil
}

func installerName(r layouts.Result, family string) string {
	switch {
	case r.Family != "":
		return r.Family
	case family != "":
		return family
	default:
		return defaultInstaller
	}
}

func conflictMessage(r layouts.Result) string {
	if r.Reason != "" {
		return fmt.Sprintf("Conflicting layouts, refusing to guess: %s", r.Reason)
	}
	return fmt.Sprintf("Conflicting layouts, refusing to guess: %s", r.Layout)
}
