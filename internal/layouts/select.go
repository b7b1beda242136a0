package layouts

import (
	"fmt"

	"github.com/danieljhkim/modlayout/internal/filetree"
	"github.com/danieljhkim/modlayout/internal/planner"
)

// Synthesizer produces the instructions for a tree its layout detected.
type Synthesizer func(tree *filetree.Tree, mod ModInfo) []planner.Instruction

// Layout pairs a detector with the synthesizer that installs what it found.
type Layout struct {
	Kind Kind

	// Name is the display name; built-in layouts use Kind.String().
	Name string

	Deprecated bool
	Detect     Detector
	Synthesize Synthesizer

	// ExclusiveWith lists layouts of the same family that must not match the
	// same tree. If one of them does, selection stops with a Conflict.
	ExclusiveWith []Kind

	// Fingerprint is the required-path set, for display only.
	Fingerprint []string
}

// Outcome is the terminal state of a selection.
type Outcome int

const (
	NoMatch Outcome = iota
	Conflict
	Matched
)

func (o Outcome) String() string {
	switch o {
	case Conflict:
		return "conflict"
	case Matched:
		return "matched"
	default:
		return "no-match"
	}
}

// Result is what Select returns.
type Result struct {
	Outcome    Outcome
	Family     string
	Layout     string
	Kind       Kind
	Deprecated bool

	// Plan is set when Outcome is Matched, and for a Conflict caused by
	// colliding destinations.
	Plan *planner.Plan

	// ConflictsWith names the other layout for an exclusivity conflict.
	ConflictsWith string
	Reason        string
}

// Instructions returns the matched instructions, or nil for any other outcome.
func (r Result) Instructions() []planner.Instruction {
	if r.Outcome != Matched || r.Plan == nil {
		return nil
	}
	return r.Plan.Instructions
}

// Select tries layouts in order against tree. The first layout whose
// detector accepts the tree is synthesized and returned as Matched, unless
// one of its ExclusiveWith layouts also matches or the synthesized plan has
// colliding destinations, which yields Conflict. No match yields NoMatch.
func Select(layouts []Layout, tree *filetree.Tree, mod ModInfo) Result {
	for _, l := range layouts {
		if !l.Detect(tree) {
			continue
		}

		if other, clash := firstExclusiveMatch(layouts, l, tree); clash {
			return Result{
				Outcome:       Conflict,
				Layout:        l.Name,
				Kind:          l.Kind,
				Deprecated:    l.Deprecated,
				ConflictsWith: other.Name,
				Reason:        fmt.Sprintf("archive matches both %s and %s", l.Name, other.Name),
			}
		}

		plan := planner.BuildPlan(l.Name, l.Synthesize(tree, mod))
		if plan.HasConflicts() {
			return Result{
				Outcome:    Conflict,
				Layout:     l.Name,
				Kind:       l.Kind,
				Deprecated: l.Deprecated,
				Plan:       plan,
				Reason: fmt.Sprintf("%d colliding destinations, first at %s",
					len(plan.Conflicts), plan.Conflicts[0].Path),
			}
		}

		return Result{
			Outcome:    Matched,
			Layout:     l.Name,
			Kind:       l.Kind,
			Deprecated: l.Deprecated,
			Plan:       plan,
		}
	}

	return Result{Outcome: NoMatch}
}

func firstExclusiveMatch(layouts []Layout, matched Layout, tree *filetree.Tree) (Layout, bool) {
	for _, k := range matched.ExclusiveWith {
		for _, other := range layouts {
			if other.Kind == k && other.Detect(tree) {
				return other, true
			}
		}
	}
	return Layout{}, false
}

// Family is one installer's ordered list of layouts, most specific first.
type Family struct {
	Name    string
	Layouts []Layout
}

// Supported reports whether any layout of the family detects the tree.
func (f Family) Supported(tree *filetree.Tree) bool {
	for _, l := range f.Layouts {
		if l.Detect(tree) {
			return true
		}
	}
	return false
}

// Select runs Select over the family's layouts and tags the result.
func (f Family) Select(tree *filetree.Tree, mod ModInfo) Result {
	r := Select(f.Layouts, tree, mod)
	r.Family = f.Name
	return r
}

// Catalog orders families by priority.
type Catalog struct {
	Families []Family
}

// Select returns the first family result that is not NoMatch.
func (c *Catalog) Select(tree *filetree.Tree, mod ModInfo) Result {
	for _, f := range c.Families {
		if r := f.Select(tree, mod); r.Outcome != NoMatch {
			return r
		}
	}
	return Result{Outcome: NoMatch}
}

// Family looks a family up by name.
func (c *Catalog) Family(name string) (Family, bool) {
	for _, f := range c.Families {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

// WithFamily returns a copy of the catalog with f tried before the others.
func (c *Catalog) WithFamily(f Family) *Catalog {
	families := make([]Family, 0, len(c.Families)+1)
	families = append(families, f)
	families = append(families, c.Families...)
	return &Catalog{Families: families}
}
