package planner

import (
	"path"
	"strings"
)

// SameSourceAndDest returns one identity copy per path, in order.
func SameSourceAndDest(paths []string) []Instruction {
	out := make([]Instruction, 0, len(paths))
	for _, p := range paths {
		out = append(out, Copy(p, p))
	}
	return out
}

// Relocate returns one copy per path with the fromDir prefix replaced by
// toDir. fromDir "" re-roots paths from the top of the archive.
func Relocate(paths []string, fromDir, toDir string) []Instruction {
	prefix := strings.TrimSuffix(fromDir, "/")
	if prefix != "" {
		prefix += "/"
	}

	out := make([]Instruction, 0, len(paths))
	for _, p := range paths {
		out = append(out, Copy(p, path.Join(toDir, strings.TrimPrefix(p, prefix))))
	}
	return out
}

// BuildPlan assembles a Plan from instructions in order, recording every
// destination collision. Colliding instructions are kept so the plan still
// accounts for each source file.
func BuildPlan(layout string, instructions ...[]Instruction) *Plan {
	plan := NewPlan(layout)
	checker := NewDestinationChecker()

	for _, group := range instructions {
		for _, ins := range group {
			if conflict := checker.Check(ins); conflict != nil {
				plan.AddConflict(*conflict)
			}
			plan.AddInstruction(ins)
		}
	}

	return plan
}
