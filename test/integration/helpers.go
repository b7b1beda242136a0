package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/danieljhkim/modlayout/internal/engine"
	"github.com/danieljhkim/modlayout/internal/fsops"
	"github.com/danieljhkim/modlayout/internal/layouts"
	"github.com/danieljhkim/modlayout/internal/planner"
	"github.com/danieljhkim/modlayout/internal/report"
	"github.com/danieljhkim/modlayout/internal/state"
)

// installedAt is the fixed time stamped on every record in these tests.
var installedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// testEnv wires an engine, an archive, a game directory and a record store,
// all in memory.
type testEnv struct {
	t        *testing.T
	archive  billy.Filesystem
	game     billy.Filesystem
	records  billy.Filesystem
	engine   *engine.Engine
	recorder *state.Recorder
	prompts  int
	reports  []string

	// failAfter stops execution after that many instructions when set.
	failAfter int
}

// errInterrupted is returned by an executor stopped by failAfter.
var errInterrupted = errors.New("interrupted")

type stoppingExecutor struct {
	next  engine.Executor
	limit int
}

func (s stoppingExecutor) Execute(ctx context.Context, plan *planner.Plan) ([]planner.Instruction, error) {
	head := *plan
	head.Instructions = plan.Instructions[:min(s.limit, len(plan.Instructions))]
	done, err := s.next.Execute(ctx, &head)
	if err != nil {
		return done, err
	}
	return done, errInterrupted
}

func newTestEnv(t *testing.T, decision engine.Decision) *testEnv {
	t.Helper()

	env := &testEnv{
		t:       t,
		archive: fsops.NewMemFS(),
		game:    fsops.NewMemFS(),
		records: fsops.NewMemFS(),
	}

	prompter := engine.PrompterFunc(func(context.Context, layouts.Kind, []string, layouts.FeatureSet) (engine.Decision, error) {
		env.prompts++
		return decision, nil
	})
	dialog := dialogFunc(func(installer, msg string, paths []string) {
		env.reports = append(env.reports, installer+": "+msg)
	})

	env.engine = engine.New(layouts.DefaultCatalog(), prompter, report.NewReporter(report.Nop{}, dialog), nil)
	env.recorder = state.NewRecorder(state.NewFileRecordStore(env.records), func() time.Time { return installedAt })
	return env
}

// writeArchive adds files to the archive with their path as content.
func (env *testEnv) writeArchive(files ...string) {
	env.t.Helper()
	for _, f := range files {
		if err := util.WriteFile(env.archive, f, []byte(f), 0644); err != nil {
			env.t.Fatalf("failed to write %s: %v", f, err)
		}
	}
}

// install lists the archive and installs it into the game directory under mod.
func (env *testEnv) install(mod string) (*engine.InstallResult, error) {
	env.t.Helper()

	paths, err := fsops.ListFiles(env.archive)
	if err != nil {
		env.t.Fatalf("failed to list archive: %v", err)
	}

	var exec engine.Executor = fsops.NewExecutor(env.archive, env.game)
	if env.failAfter > 0 {
		exec = stoppingExecutor{next: exec, limit: env.failAfter}
	}

	return env.engine.Install(context.Background(), &engine.InstallRequest{
		ClassifyRequest: engine.ClassifyRequest{
			Paths:   paths,
			ModInfo: layouts.ModInfo{Name: mod},
		},
		Executor: exec,
	})
}

// gameFiles returns every entry in the game directory.
func (env *testEnv) gameFiles() []string {
	env.t.Helper()
	files, err := fsops.ListFiles(env.game)
	if err != nil {
		env.t.Fatalf("failed to list game directory: %v", err)
	}
	return files
}

// readGame returns the content of a file in the game directory.
func (env *testEnv) readGame(name string) string {
	env.t.Helper()
	data, err := util.ReadFile(env.game, name)
	if err != nil {
		env.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

type dialogFunc func(installer, msg string, paths []string)

func (f dialogFunc) ShowUnrecoverableStructureError(installer, msg string, paths []string) {
	f(installer, msg, paths)
}
