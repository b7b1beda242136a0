package fsops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	billy "github.com/go-git/go-billy/v5"

	"github.com/danieljhkim/modlayout/internal/planner"
)

// Executor copies files from an extracted archive into an install root.
type Executor struct {
	src billy.Filesystem
	dst billy.Filesystem
}

// NewExecutor creates an Executor reading from src and writing to dst.
func NewExecutor(src, dst billy.Filesystem) *Executor {
	return &Executor{src: src, dst: dst}
}

// Execute runs the plan's instructions in order and returns those that
// completed. Nothing is written if any instruction has an unsafe path, and
// execution stops at the first failure or when ctx is done.
func (e *Executor) Execute(ctx context.Context, plan *planner.Plan) ([]planner.Instruction, error) {
	if plan == nil {
		return nil, errors.New("nil plan")
	}
	if plan.HasConflicts() {
		return nil, fmt.Errorf("plan %s has %d conflicts", plan.Layout, len(plan.Conflicts))
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	done := make([]planner.Instruction, 0, len(plan.Instructions))
	for _, ins := range plan.Instructions {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if err := e.executeInstruction(ins); err != nil {
			return done, fmt.Errorf("%s: %w", ins, err)
		}
		done = append(done, ins)
	}

	return done, nil
}

func validatePlan(plan *planner.Plan) error {
	for _, ins := range plan.Instructions {
		if err := ValidateRelPath(ins.Destination); err != nil {
			return fmt.Errorf("%s: destination: %w", ins, err)
		}
		if ins.Type == planner.OpCopy {
			if err := ValidateRelPath(ins.Source); err != nil {
				return fmt.Errorf("%s: source: %w", ins, err)
			}
		}
	}
	return nil
}

// executeInstruction executes a single instruction.
func (e *Executor) executeInstruction(ins planner.Instruction) error {
	switch ins.Type {
	case planner.OpCopy:
		return e.copyFile(ins.Source, ins.Destination)
	case planner.OpMkdir:
		return e.mkdir(ins.Destination)
	default:
		return fmt.Errorf("unknown instruction type: %s", ins.Type)
	}
}

// mkdir is idempotent: an existing directory is left as is.
func (e *Executor) mkdir(dst string) error {
	if info, err := e.dst.Stat(dst); err == nil && !info.IsDir() {
		return fmt.Errorf("destination %q exists and is not a directory", dst)
	}
	return e.dst.MkdirAll(dst, 0755)
}

// copyFile copies a single file from the archive to the install root,
// replacing an existing file at the destination.
func (e *Executor) copyFile(src, dst string) error {
	srcInfo, err := e.src.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("source %q is a directory", src)
	}

	if dstInfo, err := e.dst.Stat(dst); err == nil && dstInfo.IsDir() {
		return fmt.Errorf("destination %q is a directory", dst)
	}

	srcFile, err := e.src.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	// Create parent directory if needed
	if dir := path.Dir(dst); dir != "." {
		if err := e.dst.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	dstFile, err := e.dst.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return dstFile.Close()
}
