package planner

import (
	"reflect"
	"testing"
)

func TestNewPlan(t *testing.T) {
	plan := NewPlan("core-red4ext")

	if plan.Layout != "core-red4ext" {
		t.Errorf("expected layout %q, got %q", "core-red4ext", plan.Layout)
	}
	if plan.Instructions == nil {
		t.Error("expected Instructions to be initialized")
	}
	if len(plan.Instructions) != 0 {
		t.Errorf("expected empty Instructions, got %d", len(plan.Instructions))
	}
	if plan.Conflicts == nil {
		t.Error("expected Conflicts to be initialized")
	}
	if len(plan.Conflicts) != 0 {
		t.Errorf("expected empty Conflicts, got %d", len(plan.Conflicts))
	}
}

func TestPlan_HasConflicts(t *testing.T) {
	tests := []struct {
		name      string
		conflicts []Conflict
		wantHas   bool
	}{
		{
			name:      "no conflicts",
			conflicts: []Conflict{},
			wantHas:   false,
		},
		{
			name: "has conflicts",
			conflicts: []Conflict{
				{Path: "r6/scripts/mod/a.reds", Reason: "destination already written"},
			},
			wantHas: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewPlan("test")
			plan.Conflicts = tt.conflicts

			has := plan.HasConflicts()
			if has != tt.wantHas {
				t.Errorf("HasConflicts() = %v, want %v", has, tt.wantHas)
			}
		})
	}
}

func TestPlan_InstructionsOrder(t *testing.T) {
	plan := NewPlan("test")

	want := []Instruction{
		Copy("red4ext/RED4ext.dll", "red4ext/RED4ext.dll"),
		Copy("bin/x64/powrprof.dll", "bin/x64/powrprof.dll"),
		MakeDirectory("red4ext/plugins"),
	}
	for _, ins := range want {
		plan.AddInstruction(ins)
	}

	if !reflect.DeepEqual(plan.Instructions, want) {
		t.Errorf("instructions = %v, want %v", plan.Instructions, want)
	}
	if got := plan.Sources(); !reflect.DeepEqual(got, []string{"red4ext/RED4ext.dll", "bin/x64/powrprof.dll"}) {
		t.Errorf("Sources() = %v", got)
	}
}

func TestInstructionConstructors(t *testing.T) {
	c := Copy("a/b.txt", "c/b.txt")
	if c.Type != OpCopy || c.Source != "a/b.txt" || c.Destination != "c/b.txt" {
		t.Errorf("Copy() = %+v", c)
	}
	if c.String() != "copy a/b.txt -> c/b.txt" {
		t.Errorf("Copy().String() = %q", c.String())
	}

	m := MakeDirectory("red4ext/plugins")
	if m.Type != OpMkdir || m.Source != "" || m.Destination != "red4ext/plugins" {
		t.Errorf("MakeDirectory() = %+v", m)
	}
	if m.String() != "mkdir red4ext/plugins" {
		t.Errorf("MakeDirectory().String() = %q", m.String())
	}
}

func TestOperationConstants(t *testing.T) {
	if OpCopy != "copy" {
		t.Errorf("OpCopy = %q, want %q", OpCopy, "copy")
	}
	if OpMkdir != "mkdir" {
		t.Errorf("OpMkdir = %q, want %q", OpMkdir, "mkdir")
	}
}
