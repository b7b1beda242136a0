package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/modlayout/internal/config"
	"github.com/danieljhkim/modlayout/internal/engine"
	"github.com/danieljhkim/modlayout/internal/fsops"
	"github.com/danieljhkim/modlayout/internal/hash"
	"github.com/danieljhkim/modlayout/internal/report"
	"github.com/danieljhkim/modlayout/internal/state"
)

// Exit codes returned by the modlayout binary.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitNoMatch   = 2
	ExitConflict  = 3
	ExitCancelled = 4
)

// loadSettings reads the user configuration.
func loadSettings() (*config.Settings, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	settings, err := config.Load(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// newEngine creates a new engine with real implementations of all
// dependencies. Log output, dialogs and prompts go through cmd's streams;
// with --json, logs are written uncoloured with timestamps.
func newEngine(cmd *cobra.Command, assumeYes bool) (*engine.Engine, *config.Settings, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}

	catalog, err := settings.Catalog()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build layout catalog: %w", err)
	}

	var logger report.Logger = newColorLogger(cmd.ErrOrStderr(), settings.Level())
	if jsonOutput {
		logger = report.NewStdLogger(cmd.ErrOrStderr(), settings.Level())
	}
	dialog := newTerminalDialog(cmd.ErrOrStderr())
	prompter := newTerminalPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), assumeYes || settings.AssumeYes)

	eng := engine.New(catalog, prompter, report.NewReporter(logger, dialog), hash.NewSHA256Hasher())
	return eng, settings, nil
}

// newRecorder opens the install record store under the config root,
// creating it if needed.
func newRecorder() (*state.Recorder, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}
	return state.NewRecorder(state.NewFileRecordStore(fsops.NewOSFS(paths.Installs)), nil), nil
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, engine.ErrNoMatch):
		return ExitNoMatch
	case errors.Is(err, engine.ErrConflict):
		return ExitConflict
	case errors.Is(err, engine.ErrUserCancelled):
		return ExitCancelled
	default:
		return ExitError
	}
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatError formats an error for display on a terminal.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
