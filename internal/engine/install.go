package engine

import (
	"context"
	"fmt"
)

// Install classifies the archive, asks the prompter about deprecated
// layouts, and executes the final plan unless DryRun is set.
//
// NoMatch, Conflict and cancellation come back as ErrNoMatch, ErrConflict
// and ErrUserCancelled, alongside the classification. A prompter error or a
// done ctx counts as cancellation.
func (e *Engine) Install(ctx context.Context, req *InstallRequest) (*InstallResult, error) {
	c, err := e.Classify(ctx, &req.ClassifyRequest)
	if err != nil {
		return nil, err
	}

	result := &InstallResult{Classification: c}

	switch c.State {
	case StateNoMatch:
		return result, fmt.Errorf("%w: %d files", ErrNoMatch, len(c.Files))
	case StateConflict:
		if c.StructureError != nil {
			return result, fmt.Errorf("%w: %w", ErrConflict, c.StructureError)
		}
		return result, fmt.Errorf("%w: %s", ErrConflict, conflictMessage(c.Result))
	case StatePendingDecision:
		d, askErr := e.ask(ctx, c)
		result.Decision = &d

		resolved, resolveErr := e.Resolve(c, d)
		result.Classification = resolved
		if askErr != nil {
			return result, fmt.Errorf("%w: prompt: %w", ErrUserCancelled, askErr)
		}
		if resolveErr != nil {
			return result, resolveErr
		}
	}

	if req.DryRun {
		return result, nil
	}
	if req.Executor == nil {
		return result, fmt.Errorf("install: no executor")
	}

	executed, err := req.Executor.Execute(ctx, result.Classification.Result.Plan)
	result.Executed = executed
	if err != nil {
		return result, fmt.Errorf("install %s: %w", result.Classification.Result.Layout, err)
	}

	return result, nil
}
