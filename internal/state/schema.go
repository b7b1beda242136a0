package state

import (
	"time"

	"github.com/danieljhkim/modlayout/internal/planner"
)

// SchemaVersion is written into every record. Load refuses newer versions.
const SchemaVersion = 1

// InstallRecord represents one install carried out against a target directory.
type InstallRecord struct {
	// Version is the record schema version
	Version int `json:"version"`

	// ID is the record identifier (see ComputeRecordID)
	ID string `json:"id"`

	// Mod is the mod name the install was made under
	Mod string `json:"mod"`

	// Target is the absolute game directory the plan was executed in
	Target string `json:"target"`

	// Family is the installer family that matched
	Family string `json:"family"`

	// Layout is the layout that matched
	Layout string `json:"layout"`

	// Deprecated is true when the user accepted a deprecated layout
	Deprecated bool `json:"deprecated,omitempty"`

	// Digest identifies the instruction list
	Digest string `json:"digest"`

	// Instructions is the list of instructions that were executed
	Instructions []planner.Instruction `json:"instructions"`

	// Partial is true when execution stopped before the whole plan ran
	Partial bool `json:"partial,omitempty"`

	// InstalledAt is when the install finished
	InstalledAt time.Time `json:"installedAt"`
}

// NewInstallRecord creates a record for mod installed into target. The ID is
// derived from both.
func NewInstallRecord(mod, target string, installedAt time.Time) *InstallRecord {
	return &InstallRecord{
		Version:      SchemaVersion,
		ID:           ComputeRecordID(mod, target),
		Mod:          mod,
		Target:       target,
		Instructions: []planner.Instruction{},
		InstalledAt:  installedAt,
	}
}

// Destinations returns the destination of every executed instruction.
func (r *InstallRecord) Destinations() []string {
	out := make([]string, 0, len(r.Instructions))
	for _, ins := range r.Instructions {
		out = append(out, ins.Destination)
	}
	return out
}
