package engine

import (
	"fmt"
)

// Resolve finishes a pending classification. Proceed yields Matched with the
// instructions synthesized during Classify, unchanged. Cancel yields
// StateCancelled, no instructions, and ErrUserCancelled. The input is not
// modified.
func (e *Engine) Resolve(c *Classification, d Decision) (*Classification, error) {
	if c == nil || c.State != StatePendingDecision {
		return c, ErrNotPending
	}

	out := *c
	installer := installerName(c.Result, "")

	switch d {
	case Proceed:
		out.State = StateMatched
		out.Result.Plan, out.pending = c.pending, nil
		e.reporter.Info(installer, fmt.Sprintf("user confirmed installing deprecated layout %s", c.Result.Layout))
		return &out, nil
	default:
		out.State = StateCancelled
		out.Digest = ""
		out.Result.Plan, out.pending = nil, nil
		e.reporter.Cancelled(installer, fmt.Sprintf("user chose to cancel installing deprecated layout %s", c.Result.Layout), c.Files)
		return &out, ErrUserCancelled
	}
}
