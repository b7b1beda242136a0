package planner

// Plan is the ordered instruction list produced for one matched layout.
type Plan struct {
	// Layout names the layout the instructions were synthesized for
	Layout string `json:"layout"`

	// Instructions is the ordered list handed to the executor
	Instructions []Instruction `json:"instructions"`

	// Conflicts is a list of destination collisions (empty if none)
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// Instruction is a single copy or directory-creation directive.
type Instruction struct {
	// Type is the instruction type: "copy" or "mkdir"
	Type string `json:"type"`

	// Source is the archive-relative source path (copy only)
	Source string `json:"source,omitempty"`

	// Destination is the path relative to the install root
	Destination string `json:"destination"`
}

// Conflict represents a destination collision detected during planning.
type Conflict struct {
	// Path is the destination where the collision was detected
	Path string `json:"path"`

	// Reason is a human-readable explanation of the conflict
	Reason string `json:"reason"`

	// Existing describes the instruction that claimed the path first
	Existing string `json:"existing"`

	// Incoming describes the instruction that collided with it
	Incoming string `json:"incoming"`
}

// Instruction type constants
const (
	OpCopy  = "copy"
	OpMkdir = "mkdir"
)

// Copy returns a copy instruction.
func Copy(source, destination string) Instruction {
	return Instruction{Type: OpCopy, Source: source, Destination: destination}
}

// MakeDirectory returns a directory-creation instruction.
func MakeDirectory(destination string) Instruction {
	return Instruction{Type: OpMkdir, Destination: destination}
}

// NewPlan creates a new empty Plan for the named layout.
func NewPlan(layout string) *Plan {
	return &Plan{
		Layout:       layout,
		Instructions: []Instruction{},
		Conflicts:    []Conflict{},
	}
}

// HasConflicts returns true if the plan has any conflicts.
func (p *Plan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddInstruction adds an instruction to the plan.
func (p *Plan) AddInstruction(ins Instruction) {
	p.Instructions = append(p.Instructions, ins)
}

// AddConflict adds a conflict to the plan.
func (p *Plan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}

// Sources returns the source path of every copy instruction, in order.
func (p *Plan) Sources() []string {
	out := []string{}
	for _, ins := range p.Instructions {
		if ins.Type == OpCopy {
			out = append(out, ins.Source)
		}
	}
	return out
}

func (ins Instruction) String() string {
	if ins.Type == OpMkdir {
		return "mkdir " + ins.Destination
	}
	return ins.Type + " " + ins.Source + " -> " + ins.Destination
}
