package report

import (
	"fmt"
)

// StructureError is returned when an archive cannot be installed because of
// its shape: no layout matched, or two layouts claimed it.
type StructureError struct {
	Installer string
	Message   string
	Paths     []string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Installer, e.Message)
}

// Reporter routes classification failures to a Logger and a Dialog.
type Reporter struct {
	log    Logger
	dialog Dialog
}

// NewReporter creates a Reporter. nil collaborators are replaced with Nop.
func NewReporter(log Logger, dialog Dialog) *Reporter {
	if log == nil {
		log = Nop{}
	}
	if dialog == nil {
		dialog = Nop{}
	}
	return &Reporter{log: log, dialog: dialog}
}

// Logger returns the underlying logger.
func (r *Reporter) Logger() Logger {
	return r.log
}

// UnrecoverableStructure logs the failure at error level together with the
// archive's paths, shows the dialog, and returns the matching error.
func (r *Reporter) UnrecoverableStructure(installer, msg string, paths []string) *StructureError {
	r.log.Log(LevelError, fmt.Sprintf("%s: %s", installer, msg), paths)
	r.dialog.ShowUnrecoverableStructureError(installer, msg, paths)
	return &StructureError{Installer: installer, Message: msg, Paths: paths}
}

// Cancelled logs a user cancellation with the archive's paths. It is not a
// structure error and no dialog is shown.
func (r *Reporter) Cancelled(installer, msg string, paths []string) {
	r.log.Log(LevelWarn, fmt.Sprintf("%s: %s", installer, msg), paths)
}

// Info logs an informational event for installer.
func (r *Reporter) Info(installer, msg string) {
	r.log.Log(LevelInfo, fmt.Sprintf("%s: %s", installer, msg))
}

// Debug logs a debug event for installer.
func (r *Reporter) Debug(installer, msg string, args ...any) {
	r.log.Log(LevelDebug, fmt.Sprintf("%s: %s", installer, msg), args...)
}
