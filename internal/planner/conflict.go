package planner

import (
	"fmt"
	"path"
)

// DestinationChecker checks instructions for colliding destinations.
type DestinationChecker struct {
	claimed map[string]Instruction
	parents map[string]string // directory -> first destination beneath it
}

// NewDestinationChecker creates a new DestinationChecker.
func NewDestinationChecker() *DestinationChecker {
	return &DestinationChecker{
		claimed: make(map[string]Instruction),
		parents: make(map[string]string),
	}
}

// Check records ins and returns a Conflict if it collides with an
// instruction seen earlier, or nil if the destination is safe to use.
// Repeating an identical instruction, or creating the same directory twice,
// is not a collision.
func (c *DestinationChecker) Check(ins Instruction) *Conflict {
	dest := path.Clean(ins.Destination)

	existing, claimed := c.claimed[dest]
	if !claimed {
		c.claimed[dest] = ins
		if below, ok := c.parents[dest]; ok && ins.Type == OpCopy {
			return &Conflict{
				Path:     dest,
				Reason:   fmt.Sprintf("Type mismatch: existing is directory holding %s, incoming is file", below),
				Existing: "directory",
				Incoming: ins.String(),
			}
		}
		return c.checkParents(dest, ins)
	}

	if existing.Type == ins.Type && existing.Source == ins.Source {
		return nil
	}

	// Type conflict (file vs directory)
	if existing.Type != ins.Type {
		return &Conflict{
			Path:     dest,
			Reason:   fmt.Sprintf("Type mismatch: existing is %s, incoming is %s", kindOf(existing), kindOf(ins)),
			Existing: existing.String(),
			Incoming: ins.String(),
		}
	}

	return &Conflict{
		Path:     dest,
		Reason:   fmt.Sprintf("Destination already written from %s", existing.Source),
		Existing: existing.String(),
		Incoming: ins.String(),
	}
}

// checkParents catches a file destination sitting where another
// instruction needs a directory, e.g. copying to "a" and then to "a/b".
func (c *DestinationChecker) checkParents(dest string, ins Instruction) *Conflict {
	for dir := path.Dir(dest); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if _, seen := c.parents[dir]; !seen {
			c.parents[dir] = dest
		}
		if existing, ok := c.claimed[dir]; ok && existing.Type == OpCopy {
			return &Conflict{
				Path:     dir,
				Reason:   fmt.Sprintf("Type mismatch: existing is file, incoming needs directory for %s", dest),
				Existing: existing.String(),
				Incoming: ins.String(),
			}
		}
	}
	return nil
}

func kindOf(ins Instruction) string {
	if ins.Type == OpMkdir {
		return "directory"
	}
	return "file"
}
