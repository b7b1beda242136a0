package state

import (
	"fmt"
	"time"

	"github.com/danieljhkim/modlayout/internal/engine"
)

// Recorder turns finished installs into saved records.
type Recorder struct {
	store RecordStore
	now   func() time.Time
}

// NewRecorder creates a Recorder that saves to store. A nil now uses time.Now.
func NewRecorder(store RecordStore, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{store: store, now: now}
}

// Record saves what result executed in target. Installs that did not run,
// such as dry runs or cancelled ones, are not recorded and return nil. An
// install that failed midway is recorded with Partial set.
func (r *Recorder) Record(mod, target string, result *engine.InstallResult) (*InstallRecord, error) {
	if result == nil || result.Classification == nil || len(result.Executed) == 0 {
		return nil, nil
	}

	c := result.Classification
	record := NewInstallRecord(mod, target, r.now().UTC())
	record.Family = c.Result.Family
	record.Layout = c.Result.Layout
	record.Deprecated = c.Result.Deprecated
	record.Digest = c.Digest
	record.Instructions = append(record.Instructions, result.Executed...)
	record.Partial = len(result.Executed) < len(c.Instructions())

	if err := r.store.Save(record); err != nil {
		return nil, fmt.Errorf("record install of %s: %w", mod, err)
	}
	return record, nil
}

// History returns every saved record, most recent first.
func (r *Recorder) History() ([]*InstallRecord, error) {
	return r.store.List()
}
