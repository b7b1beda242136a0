package layouts

import (
	"github.com/danieljhkim/modlayout/internal/filetree"
)

// Detector is a pure predicate over an archive tree.
type Detector func(tree *filetree.Tree) bool

// Fingerprint detects a layout by a fixed set of required paths. Every path
// must be present; the check stops at the first missing one.
func Fingerprint(required []string) Detector {
	return func(tree *filetree.Tree) bool {
		for _, p := range required {
			if !tree.PathInTree(p) {
				return false
			}
		}
		return len(required) > 0
	}
}

// SubdirsWithSome detects a layout by at least one directory directly under
// prefix holding a file that satisfies pred.
func SubdirsWithSome(prefix string, pred filetree.Predicate) Detector {
	return func(tree *filetree.Tree) bool {
		return len(tree.FindDirectSubdirsWithSome(prefix, pred)) > 0
	}
}

// FilesDirectlyIn detects a layout by at least one file directly inside dir
// satisfying pred. Pass Glob.Predicate() to detect by pattern.
func FilesDirectlyIn(dir string, pred filetree.Predicate) Detector {
	return func(tree *filetree.Tree) bool {
		return tree.DirWithSomeIn(dir, pred)
	}
}

// AllOf combines detectors with logical AND.
func AllOf(detectors ...Detector) Detector {
	return func(tree *filetree.Tree) bool {
		for _, d := range detectors {
			if !d(tree) {
				return false
			}
		}
		return len(detectors) > 0
	}
}

// AnyOf combines detectors with logical OR.
func AnyOf(detectors ...Detector) Detector {
	return func(tree *filetree.Tree) bool {
		for _, d := range detectors {
			if d(tree) {
				return true
			}
		}
		return false
	}
}
