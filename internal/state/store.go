package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// ErrUnsupportedVersion is returned for records written by a newer schema.
var ErrUnsupportedVersion = errors.New("unsupported record version")

// RecordStore provides an interface for persisting install records.
type RecordStore interface {
	// Load loads the record with the given ID.
	// Returns os.ErrNotExist if the record doesn't exist.
	Load(id string) (*InstallRecord, error)

	// Save saves the record atomically, replacing any record with the same ID.
	Save(record *InstallRecord) error

	// Delete deletes the record file. Deleting a missing record is not an error.
	Delete(id string) error

	// List returns every record, most recent install first.
	List() ([]*InstallRecord, error)
}

// FileRecordStore implements RecordStore using JSON files in a billy filesystem.
type FileRecordStore struct {
	fs billy.Filesystem
}

// NewFileRecordStore creates a new FileRecordStore rooted at fs. Records are
// written to the root of fs.
func NewFileRecordStore(fs billy.Filesystem) *FileRecordStore {
	return &FileRecordStore{fs: fs}
}

// tempDir holds partially written records until they are renamed into place.
const tempDir = ".tmp"

func recordFile(id string) string {
	return id + ".json"
}

// Load loads the record with the given ID.
func (s *FileRecordStore) Load(id string) (*InstallRecord, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	data, err := util.ReadFile(s.fs, recordFile(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read install record: %w", err)
	}

	return decodeRecord(data)
}

// Save saves the record atomically.
func (s *FileRecordStore) Save(record *InstallRecord) error {
	if record == nil {
		return fmt.Errorf("install record is nil")
	}
	if err := validateID(record.ID); err != nil {
		return err
	}
	if record.Version == 0 {
		record.Version = SchemaVersion
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal install record: %w", err)
	}

	if err := s.atomicWrite(recordFile(record.ID), data); err != nil {
		return fmt.Errorf("failed to write install record: %w", err)
	}
	return nil
}

// Delete deletes the record file.
func (s *FileRecordStore) Delete(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.fs.Remove(recordFile(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete install record: %w", err)
	}
	return nil
}

// List returns every record, most recent install first. Files that are not
// records are ignored; unreadable records are an error.
func (s *FileRecordStore) List() ([]*InstallRecord, error) {
	entries, err := s.fs.ReadDir("/")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list install records: %w", err)
	}

	var records []*InstallRecord
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := util.ReadFile(s.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read install record %s: %w", entry.Name(), err)
		}
		record, err := decodeRecord(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].InstalledAt.Equal(records[j].InstalledAt) {
			return records[i].InstalledAt.After(records[j].InstalledAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// atomicWrite writes data to a temp file next to name and renames it into place.
func (s *FileRecordStore) atomicWrite(name string, data []byte) error {
	tmp, err := util.TempFile(s.fs, tempDir, ".record-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}

	if err := s.fs.Rename(tmpName, name); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	return nil
}

func decodeRecord(data []byte) (*InstallRecord, error) {
	var record InstallRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal install record: %w", err)
	}
	if record.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, record.Version)
	}
	return &record, nil
}

func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\.`) {
		return fmt.Errorf("invalid record ID %q", id)
	}
	return nil
}
