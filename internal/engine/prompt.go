package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/modlayout/internal/layouts"
	"github.com/danieljhkim/modlayout/internal/planner"
)

// Decision is the user's answer to a deprecated-layout prompt.
type Decision int

const (
	Cancel Decision = iota
	Proceed
)

func (d Decision) String() string {
	if d == Proceed {
		return "proceed"
	}
	return "cancel"
}

// Prompter asks the user whether to install a deprecated layout. It may
// block until the user answers and should return when ctx is done.
type Prompter interface {
	PromptDeprecated(ctx context.Context, kind layouts.Kind, files []string, features layouts.FeatureSet) (Decision, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, kind layouts.Kind, files []string, features layouts.FeatureSet) (Decision, error)

func (f PrompterFunc) PromptDeprecated(ctx context.Context, kind layouts.Kind, files []string, features layouts.FeatureSet) (Decision, error) {
	return f(ctx, kind, files, features)
}

// StaticPrompter answers every prompt with the same decision.
type StaticPrompter Decision

func (p StaticPrompter) PromptDeprecated(context.Context, layouts.Kind, []string, layouts.FeatureSet) (Decision, error) {
	return Decision(p), nil
}

// Executor carries out a plan against an install root.
type Executor interface {
	Execute(ctx context.Context, plan *planner.Plan) ([]planner.Instruction, error)
}

type answer struct {
	decision Decision
	err      error
}

// ask runs the prompter and gives up when ctx is done, whether or not the
// prompter itself watches ctx.
func (e *Engine) ask(ctx context.Context, c *Classification) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Cancel, err
	}

	ch := make(chan answer, 1)
	go func() {
		d, err := e.prompter.PromptDeprecated(ctx, c.Result.Kind, c.PendingFiles(), c.features)
		ch <- answer{d, err}
	}()

	select {
	case <-ctx.Done():
		return Cancel, ctx.Err()
	case a := <-ch:
		if a.err != nil {
			return Cancel, a.err
		}
		if a.decision != Proceed && a.decision != Cancel {
			return Cancel, fmt.Errorf("invalid decision %d", int(a.decision))
		}
		return a.decision, nil
	}
}
