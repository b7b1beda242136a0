package integration

import (
	"errors"
	"strings"
	"testing"

	"github.com/danieljhkim/modlayout/internal/engine"
	"github.com/danieljhkim/modlayout/internal/layouts"
)

// leaves drops directory entries from a listing.
func leaves(entries []string) []string {
	var out []string
	for _, e := range entries {
		if !strings.HasSuffix(e, "/") {
			out = append(out, e)
		}
	}
	return out
}

func contains(entries []string, want string) bool {
	for _, e := range entries {
		if e == want {
			return true
		}
	}
	return false
}

func TestInstall_CoreRed4ext(t *testing.T) {
	env := newTestEnv(t, engine.Cancel)
	env.writeArchive("bin/x64/powrprof.dll", "red4ext/LICENSE.txt", "red4ext/RED4ext.dll")

	result, err := env.install("RED4ext")
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if result.Classification.Result.Kind != layouts.CoreRed4ext {
		t.Fatalf("Kind = %s, want %s", result.Classification.Result.Kind, layouts.CoreRed4ext)
	}
	if len(result.Executed) != 4 {
		t.Errorf("Executed %d instructions, want 4", len(result.Executed))
	}

	files := env.gameFiles()
	if !contains(files, "red4ext/plugins/") {
		t.Errorf("red4ext/plugins/ missing from %v", files)
	}
	if got := env.readGame("red4ext/RED4ext.dll"); got != "red4ext/RED4ext.dll" {
		t.Errorf("RED4ext.dll content = %q", got)
	}
	if env.prompts != 0 {
		t.Errorf("prompted %d times for a current layout", env.prompts)
	}

	record, err := env.recorder.Record("RED4ext", "/games/cp2077", result)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if record.Layout != "core-red4ext" || len(record.Instructions) != 4 || !record.InstalledAt.Equal(installedAt) {
		t.Errorf("unexpected record %+v", record)
	}
}

func TestInstall_RelocatesBasedirScripts(t *testing.T) {
	env := newTestEnv(t, engine.Cancel)
	env.writeArchive("r6/scripts/a.reds", "r6/scripts/b.reds", "README.md")

	result, err := env.install("Cool Mod")
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	got := leaves(env.gameFiles())
	want := []string{"r6/scripts/Cool Mod/a.reds", "r6/scripts/Cool Mod/b.reds"}
	if len(got) != len(want) {
		t.Fatalf("game files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("game file %d = %q, want %q", i, got[i], want[i])
		}
	}
	if env.readGame("r6/scripts/Cool Mod/a.reds") != "r6/scripts/a.reds" {
		t.Error("relocated file has the wrong content")
	}
	if result.Classification.Result.Kind != layouts.RedscriptModBasedir {
		t.Errorf("Kind = %s", result.Classification.Result.Kind)
	}
}

func TestInstall_DeprecatedLayout(t *testing.T) {
	deprecated := []string{"engine/config/base/scripts.ini", "r6/scripts/redscript.toml"}

	t.Run("cancelled writes nothing", func(t *testing.T) {
		env := newTestEnv(t, engine.Cancel)
		env.writeArchive(deprecated...)

		result, err := env.install("redscript")
		if !errors.Is(err, engine.ErrUserCancelled) {
			t.Fatalf("Install() error = %v, want ErrUserCancelled", err)
		}
		if env.prompts != 1 {
			t.Errorf("prompted %d times, want 1", env.prompts)
		}
		if files := env.gameFiles(); len(files) != 0 {
			t.Errorf("game directory should be empty, got %v", files)
		}
		if len(env.reports) != 0 {
			t.Errorf("cancellation must not be reported as a structure error: %v", env.reports)
		}

		record, err := env.recorder.Record("redscript", "/games/cp2077", result)
		if err != nil || record != nil {
			t.Errorf("Record() = %v, %v; want nothing recorded", record, err)
		}
	})

	t.Run("accepted installs and is recorded as deprecated", func(t *testing.T) {
		env := newTestEnv(t, engine.Proceed)
		env.writeArchive(deprecated...)

		result, err := env.install("redscript")
		if err != nil {
			t.Fatalf("Install() error = %v", err)
		}
		if got := leaves(env.gameFiles()); len(got) != 2 {
			t.Errorf("game files = %v, want 2 files", got)
		}

		record, err := env.recorder.Record("redscript", "/games/cp2077", result)
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if !record.Deprecated {
			t.Error("record should be marked deprecated")
		}
	})
}

func TestInstall_ConflictIsReportedAndWritesNothing(t *testing.T) {
	env := newTestEnv(t, engine.Proceed)
	env.writeArchive("r6/scripts/mymod/a.reds", "r6/scripts/b.reds")

	_, err := env.install("mixed")
	if !errors.Is(err, engine.ErrConflict) {
		t.Fatalf("Install() error = %v, want ErrConflict", err)
	}
	if len(env.reports) != 1 {
		t.Fatalf("expected 1 structure report, got %v", env.reports)
	}
	if !strings.Contains(env.reports[0], layouts.FamilyRedscriptMod) {
		t.Errorf("report should name the installer: %q", env.reports[0])
	}
	if files := env.gameFiles(); len(files) != 0 {
		t.Errorf("game directory should be empty, got %v", files)
	}
}

func TestInstall_NoMatch(t *testing.T) {
	env := newTestEnv(t, engine.Proceed)
	env.writeArchive("random/file.txt")

	_, err := env.install("random")
	if !errors.Is(err, engine.ErrNoMatch) {
		t.Fatalf("Install() error = %v, want ErrNoMatch", err)
	}
	if len(env.reports) != 0 {
		t.Errorf("no-match must not be reported: %v", env.reports)
	}
}

func TestInstall_ReinstallReplacesRecord(t *testing.T) {
	env := newTestEnv(t, engine.Cancel)
	env.writeArchive("bin/x64/plugins/cyber_engine_tweaks.asi", "bin/x64/version.dll")

	first, err := env.install("CET")
	if err != nil {
		t.Fatalf("first Install() error = %v", err)
	}
	second, err := env.install("CET")
	if err != nil {
		t.Fatalf("second Install() error = %v", err)
	}
	if first.Classification.Digest != second.Classification.Digest {
		t.Errorf("digests differ across runs: %s vs %s", first.Classification.Digest, second.Classification.Digest)
	}

	for _, r := range []*engine.InstallResult{first, second} {
		if _, err := env.recorder.Record("CET", "/games/cp2077", r); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	history, err := env.recorder.History()
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected the reinstall to replace the record, got %d records", len(history))
	}
}

func TestInstall_InterruptedInstallIsRecordedAsPartial(t *testing.T) {
	env := newTestEnv(t, engine.Cancel)
	env.failAfter = 2
	env.writeArchive("bin/x64/powrprof.dll", "red4ext/LICENSE.txt", "red4ext/RED4ext.dll")

	result, err := env.install("RED4ext")
	if !errors.Is(err, errInterrupted) {
		t.Fatalf("Install() error = %v, want errInterrupted", err)
	}
	if len(result.Executed) != 2 {
		t.Fatalf("Executed %d instructions, want 2", len(result.Executed))
	}
	if got := leaves(env.gameFiles()); len(got) != 2 {
		t.Errorf("game files = %v, want the 2 executed copies", got)
	}

	record, err := env.recorder.Record("RED4ext", "/games/cp2077", result)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !record.Partial || len(record.Instructions) != 2 {
		t.Errorf("record = %+v, want a partial record of 2 instructions", record)
	}
}
