package engine

import "errors"

var (
	// ErrNoMatch indicates no layout recognized the archive.
	ErrNoMatch = errors.New("no layout matched")

	// ErrConflict indicates more than one exclusive layout matched, or the
	// matched layout produced colliding destinations.
	ErrConflict = errors.New("conflicting layouts")

	// ErrUserCancelled indicates the user declined a deprecated layout.
	ErrUserCancelled = errors.New("cancelled by user")

	// ErrEmptyInput indicates the path list had no entries at all.
	ErrEmptyInput = errors.New("empty path list")

	// ErrNotPending indicates Resolve was called on a classification that
	// is not waiting for a decision.
	ErrNotPending = errors.New("classification is not pending a decision")

	// ErrUnknownFamily indicates a request named a family the catalog lacks.
	ErrUnknownFamily = errors.New("unknown layout family")
)
