package state

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"

	"github.com/danieljhkim/modlayout/internal/engine"
	"github.com/danieljhkim/modlayout/internal/layouts"
	"github.com/danieljhkim/modlayout/internal/planner"
)

func matchedInstall(executed ...planner.Instruction) *engine.InstallResult {
	return &engine.InstallResult{
		Classification: &engine.Classification{
			State: engine.StateMatched,
			Result: layouts.Result{
				Outcome:    layouts.Matched,
				Family:     layouts.FamilyCoreRedscript,
				Layout:     layouts.CoreRedscriptDeprecated.String(),
				Kind:       layouts.CoreRedscriptDeprecated,
				Deprecated: true,
			},
			Digest: "digest",
		},
		Executed: executed,
	}
}

func TestRecorder_Record(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	store := NewFileRecordStore(memfs.New())
	rec := NewRecorder(store, func() time.Time { return now })

	result := matchedInstall(
		planner.Copy("engine/config/base/scripts.ini", "engine/config/base/scripts.ini"),
		planner.Copy("r6/scripts/redscript.toml", "r6/scripts/redscript.toml"),
	)

	record, err := rec.Record("redscript", "/games/cp2077", result)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if record == nil {
		t.Fatal("Record() returned nil record")
	}

	if record.ID != ComputeRecordID("redscript", "/games/cp2077") {
		t.Errorf("ID = %q", record.ID)
	}
	if !record.InstalledAt.Equal(now) {
		t.Errorf("InstalledAt = %v, want %v", record.InstalledAt, now)
	}
	if !record.Deprecated || record.Layout != "core-redscript-deprecated" || record.Digest != "digest" {
		t.Errorf("record = %+v", record)
	}

	dests := record.Destinations()
	if len(dests) != 2 || dests[1] != "r6/scripts/redscript.toml" {
		t.Errorf("Destinations() = %v", dests)
	}

	history, err := rec.History()
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 || history[0].ID != record.ID {
		t.Errorf("History() = %v", history)
	}
}

func TestRecorder_RecordsPartialInstall(t *testing.T) {
	rec := NewRecorder(NewFileRecordStore(memfs.New()), nil)

	planned := []planner.Instruction{
		planner.Copy("engine/config/base/scripts.ini", "engine/config/base/scripts.ini"),
		planner.Copy("r6/scripts/redscript.toml", "r6/scripts/redscript.toml"),
	}
	result := matchedInstall(planned[0])
	result.Classification.Result.Plan = &planner.Plan{Layout: "core-redscript-deprecated", Instructions: planned}

	record, err := rec.Record("redscript", "/games/cp2077", result)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !record.Partial {
		t.Error("record should be marked partial")
	}
	if len(record.Instructions) != 1 {
		t.Errorf("recorded %d instructions, want 1", len(record.Instructions))
	}

	result.Executed = planned
	record, err = rec.Record("redscript", "/games/cp2077", result)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if record.Partial {
		t.Error("a complete install should not be marked partial")
	}
}

func TestRecorder_SkipsInstallsThatDidNotRun(t *testing.T) {
	store := NewFileRecordStore(memfs.New())
	rec := NewRecorder(store, nil)

	tests := []struct {
		name   string
		result *engine.InstallResult
	}{
		{"nil result", nil},
		{"no classification", &engine.InstallResult{}},
		{"nothing executed", matchedInstall()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := rec.Record("mod", "/target", tt.result)
			if err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			if record != nil {
				t.Errorf("Record() = %+v, want nil", record)
			}
		})
	}

	history, err := rec.History()
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History() returned %d records, want 0", len(history))
	}
}
