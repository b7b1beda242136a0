// Package fsops carries out installation plans on a filesystem.
//
// Plans are executed between two billy filesystems: the extracted archive
// (source) and the install root (target). The CLI uses osfs for both; tests
// use memfs. Every path in a plan is validated before anything is written.
//
// Key features:
//   - Plan validation before the first mutation
//   - Idempotent directory creation
//   - Archive listing in the form filetree expects
package fsops

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// NewOSFS returns a filesystem rooted at dir on disk.
func NewOSFS(dir string) billy.Filesystem {
	return osfs.New(dir)
}

// NewMemFS returns an empty in-memory filesystem.
func NewMemFS() billy.Filesystem {
	return memfs.New()
}

// ListFiles walks fs and returns every entry relative to its root, sorted.
// Directories carry a trailing "/" so they are recognized as directory
// entries and not stored as files.
func ListFiles(fs billy.Filesystem) ([]string, error) {
	var out []string
	err := util.Walk(fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(p)), "/")
		if rel == "" {
			return nil
		}
		if info.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	sort.Strings(out)
	return out, nil
}

// ValidateRelPath validates a slash-separated relative path for safety.
// Returns an error if the path is invalid or unsafe.
func ValidateRelPath(relPath string) error {
	// Clean the path first
	cleaned := path.Clean(relPath)

	// Reject empty or current directory
	if relPath == "" || cleaned == "." {
		return fmt.Errorf("invalid path: empty or current directory")
	}

	// Reject absolute paths
	if path.IsAbs(cleaned) || strings.Contains(relPath, `\`) || (len(cleaned) >= 2 && cleaned[1] == ':') {
		return fmt.Errorf("invalid path: must be relative, got %q", relPath)
	}

	// Reject path traversal attempts
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("invalid path: path traversal not allowed in %q", relPath)
	}

	return nil
}
