package planner

import (
	"reflect"
	"testing"
)

func TestSameSourceAndDest(t *testing.T) {
	paths := []string{
		"engine/config/base/scripts.ini",
		"engine/tools/scc.exe",
		"r6/scripts/redscript.toml",
	}

	got := SameSourceAndDest(paths)
	if len(got) != len(paths) {
		t.Fatalf("expected %d instructions, got %d", len(paths), len(got))
	}
	for i, ins := range got {
		if ins.Type != OpCopy {
			t.Errorf("instruction %d: type = %q, want %q", i, ins.Type, OpCopy)
		}
		if ins.Source != paths[i] || ins.Destination != paths[i] {
			t.Errorf("instruction %d: %s, want identity copy of %s", i, ins, paths[i])
		}
	}
}

func TestSameSourceAndDest_Idempotent(t *testing.T) {
	paths := []string{"a.txt", "b/c.txt"}

	first := SameSourceAndDest(paths)
	second := SameSourceAndDest(paths)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("synthesis differs between runs: %v vs %v", first, second)
	}
}

func TestRelocate(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		fromDir string
		toDir   string
		want    []Instruction
	}{
		{
			name:    "from base dir",
			paths:   []string{"r6/scripts/a.reds", "r6/scripts/b.reds"},
			fromDir: "r6/scripts",
			toDir:   "r6/scripts/mymod",
			want: []Instruction{
				Copy("r6/scripts/a.reds", "r6/scripts/mymod/a.reds"),
				Copy("r6/scripts/b.reds", "r6/scripts/mymod/b.reds"),
			},
		},
		{
			name:    "from top level",
			paths:   []string{"a.reds"},
			fromDir: "",
			toDir:   "r6/scripts/mymod",
			want: []Instruction{
				Copy("a.reds", "r6/scripts/mymod/a.reds"),
			},
		},
		{
			name:    "trailing slash on from dir",
			paths:   []string{"x/y/z.txt"},
			fromDir: "x/",
			toDir:   "out",
			want: []Instruction{
				Copy("x/y/z.txt", "out/y/z.txt"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relocate(tt.paths, tt.fromDir, tt.toDir)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Relocate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildPlan_KeepsOrderAndAppendsDirectories(t *testing.T) {
	files := []string{"bin/x64/powrprof.dll", "red4ext/LICENSE.txt", "red4ext/RED4ext.dll"}

	plan := BuildPlan("core-red4ext", SameSourceAndDest(files), []Instruction{MakeDirectory("red4ext/plugins")})

	if plan.HasConflicts() {
		t.Fatalf("unexpected conflicts: %v", plan.Conflicts)
	}
	if len(plan.Instructions) != 4 {
		t.Fatalf("expected 4 instructions, got %d", len(plan.Instructions))
	}
	last := plan.Instructions[3]
	if last != MakeDirectory("red4ext/plugins") {
		t.Errorf("last instruction = %s, want mkdir red4ext/plugins", last)
	}
}

func TestDestinationChecker(t *testing.T) {
	tests := []struct {
		name         string
		instructions []Instruction
		wantConflict bool
	}{
		{
			name: "distinct destinations",
			instructions: []Instruction{
				Copy("a.txt", "a.txt"),
				Copy("b.txt", "b.txt"),
			},
		},
		{
			name: "repeated identical copy",
			instructions: []Instruction{
				Copy("a.txt", "a.txt"),
				Copy("a.txt", "a.txt"),
			},
		},
		{
			name: "repeated mkdir",
			instructions: []Instruction{
				MakeDirectory("plugins"),
				MakeDirectory("plugins/"),
			},
		},
		{
			name: "mkdir holding copies",
			instructions: []Instruction{
				MakeDirectory("red4ext/plugins"),
				Copy("red4ext/plugins/x.dll", "red4ext/plugins/x.dll"),
			},
		},
		{
			name: "two sources one destination",
			instructions: []Instruction{
				Copy("a.reds", "r6/scripts/mod/a.reds"),
				Copy("r6/scripts/a.reds", "r6/scripts/mod/a.reds"),
			},
			wantConflict: true,
		},
		{
			name: "file where directory is needed",
			instructions: []Instruction{
				Copy("plugins", "plugins"),
				MakeDirectory("plugins"),
			},
			wantConflict: true,
		},
		{
			name: "file above an earlier copy",
			instructions: []Instruction{
				Copy("x/a/b.txt", "a/b.txt"),
				Copy("a", "a"),
			},
			wantConflict: true,
		},
		{
			name: "copy beneath an earlier file",
			instructions: []Instruction{
				Copy("a", "a"),
				Copy("x/a/b.txt", "a/b.txt"),
			},
			wantConflict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewDestinationChecker()
			var conflicts []*Conflict
			for _, ins := range tt.instructions {
				if c := checker.Check(ins); c != nil {
					conflicts = append(conflicts, c)
				}
			}

			if (len(conflicts) > 0) != tt.wantConflict {
				t.Errorf("conflicts = %v, wantConflict %v", conflicts, tt.wantConflict)
			}
		})
	}
}
