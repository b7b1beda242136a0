package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	level Level
	msg   string
	args  []any
}

type recorder struct {
	events  []event
	dialogs [][]string
}

func (r *recorder) Log(level Level, msg string, args ...any) {
	r.events = append(r.events, event{level, msg, args})
}

func (r *recorder) ShowUnrecoverableStructureError(installer, msg string, paths []string) {
	r.dialogs = append(r.dialogs, append([]string{installer, msg}, paths...))
}

func TestReporter_UnrecoverableStructure(t *testing.T) {
	rec := &recorder{}
	r := NewReporter(rec, rec)
	paths := []string{"a.txt", "b/c.txt"}

	err := r.UnrecoverableStructure("core-redscript", "Didn't find expected layout", paths)

	require.NotNil(t, err)
	assert.Equal(t, "core-redscript: Didn't find expected layout", err.Error())
	assert.Equal(t, paths, err.Paths)

	require.Len(t, rec.events, 1)
	assert.Equal(t, LevelError, rec.events[0].level)
	assert.Equal(t, []any{paths}, rec.events[0].args)

	require.Len(t, rec.dialogs, 1)
	assert.Equal(t, []string{"core-redscript", "Didn't find expected layout", "a.txt", "b/c.txt"}, rec.dialogs[0])
}

func TestReporter_CancelledNeverShowsDialog(t *testing.T) {
	rec := &recorder{}
	r := NewReporter(rec, rec)

	r.Cancelled("core-redscript", "user chose to cancel", []string{"r6/scripts/redscript.toml"})

	require.Len(t, rec.events, 1)
	assert.Equal(t, LevelWarn, rec.events[0].level)
	assert.Equal(t, []any{[]string{"r6/scripts/redscript.toml"}}, rec.events[0].args)
	assert.Empty(t, rec.dialogs)
}

func TestNewReporter_NilCollaborators(t *testing.T) {
	r := NewReporter(nil, nil)
	assert.NotPanics(t, func() {
		r.UnrecoverableStructure("x", "y", nil)
		r.Cancelled("x", "y", nil)
		r.Debug("x", "y", 1)
	})
}

func TestStdLogger_FiltersBelowMin(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(&buf, LevelWarn)

	l.Log(LevelInfo, "hidden")
	l.Log(LevelWarn, "shown", "a.txt", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[warn] shown a.txt 3")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
