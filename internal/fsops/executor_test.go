package fsops

import (
	"context"
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/danieljhkim/modlayout/internal/planner"
)

func newArchive(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := NewMemFS()
	for name, content := range files {
		if err := util.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return fs
}

func readFile(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	data, err := util.ReadFile(fs, name)
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

func planOf(ins ...planner.Instruction) *planner.Plan {
	return planner.BuildPlan("test", ins)
}

func TestExecutor_Execute(t *testing.T) {
	src := newArchive(t, map[string]string{
		"red4ext/RED4ext.dll":  "dll",
		"r6/scripts/a.reds":    "reds",
		"bin/x64/powrprof.dll": "pow",
	})
	dst := NewMemFS()
	exec := NewExecutor(src, dst)

	plan := planOf(
		planner.Copy("red4ext/RED4ext.dll", "red4ext/RED4ext.dll"),
		planner.Copy("r6/scripts/a.reds", "r6/scripts/mod/a.reds"),
		planner.Copy("bin/x64/powrprof.dll", "bin/x64/powrprof.dll"),
		planner.MakeDirectory("red4ext/plugins"),
	)

	done, err := exec.Execute(context.Background(), plan)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(done) != 4 {
		t.Errorf("expected 4 executed instructions, got %d", len(done))
	}

	if got := readFile(t, dst, "r6/scripts/mod/a.reds"); got != "reds" {
		t.Errorf("relocated file content = %q, want %q", got, "reds")
	}
	if got := readFile(t, dst, "red4ext/RED4ext.dll"); got != "dll" {
		t.Errorf("copied file content = %q, want %q", got, "dll")
	}
	info, err := dst.Stat("red4ext/plugins")
	if err != nil || !info.IsDir() {
		t.Errorf("expected red4ext/plugins to be a directory, err = %v", err)
	}
}

func TestExecutor_MkdirIsIdempotent(t *testing.T) {
	dst := NewMemFS()
	exec := NewExecutor(NewMemFS(), dst)
	plan := planOf(planner.MakeDirectory("red4ext/plugins"))

	for i := 0; i < 2; i++ {
		if _, err := exec.Execute(context.Background(), plan); err != nil {
			t.Fatalf("Execute #%d failed: %v", i+1, err)
		}
	}
}

func TestExecutor_OverwritesExistingFile(t *testing.T) {
	src := newArchive(t, map[string]string{"a.txt": "new"})
	dst := newArchive(t, map[string]string{"a.txt": "old content that is longer"})

	if _, err := NewExecutor(src, dst).Execute(context.Background(), planOf(planner.Copy("a.txt", "a.txt"))); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := readFile(t, dst, "a.txt"); got != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestExecutor_RejectsBeforeWriting(t *testing.T) {
	src := newArchive(t, map[string]string{"a.txt": "a"})

	tests := []struct {
		name string
		plan *planner.Plan
	}{
		{
			name: "unsafe destination",
			plan: planOf(planner.Copy("a.txt", "a.txt"), planner.Copy("a.txt", "../escape.txt")),
		},
		{
			name: "absolute source",
			plan: planOf(planner.Copy("a.txt", "a.txt"), planner.Copy("/etc/hosts", "hosts")),
		},
		{
			name: "conflicting plan",
			plan: planOf(planner.Copy("a.txt", "a.txt"), planner.Copy("b.txt", "a.txt")),
		},
		{
			name: "nil plan",
			plan: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := NewMemFS()
			done, err := NewExecutor(src, dst).Execute(context.Background(), tt.plan)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if len(done) != 0 {
				t.Errorf("expected nothing executed, got %v", done)
			}
			if _, err := dst.Stat("a.txt"); err == nil {
				t.Error("a.txt was written despite the invalid plan")
			}
		})
	}
}

func TestExecutor_StopsAtFirstFailure(t *testing.T) {
	src := newArchive(t, map[string]string{"a.txt": "a", "c.txt": "c"})
	dst := NewMemFS()

	plan := planOf(
		planner.Copy("a.txt", "a.txt"),
		planner.Copy("missing.txt", "missing.txt"),
		planner.Copy("c.txt", "c.txt"),
	)

	done, err := NewExecutor(src, dst).Execute(context.Background(), plan)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if len(done) != 1 {
		t.Errorf("expected 1 executed instruction, got %d", len(done))
	}
	if _, err := dst.Stat("c.txt"); err == nil {
		t.Error("c.txt should not have been copied after the failure")
	}
}

func TestExecutor_CopyOntoDirectoryFails(t *testing.T) {
	src := newArchive(t, map[string]string{"a.txt": "a"})
	dst := NewMemFS()
	if err := dst.MkdirAll("a.txt", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	if _, err := NewExecutor(src, dst).Execute(context.Background(), planOf(planner.Copy("a.txt", "a.txt"))); err == nil {
		t.Error("expected error copying onto a directory")
	}
}

func TestExecutor_CancelledContext(t *testing.T) {
	src := newArchive(t, map[string]string{"a.txt": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done, err := NewExecutor(src, NewMemFS()).Execute(ctx, planOf(planner.Copy("a.txt", "a.txt")))
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(done) != 0 {
		t.Errorf("expected nothing executed, got %v", done)
	}
}
