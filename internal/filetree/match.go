package filetree

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob is a doublestar pattern. A pattern without a separator is matched
// against a file's base name; one with a "/" or "**" is matched against the
// whole relative path, so "r6/**/*.reds" selects by location.
type Glob string

// GlobAny matches every file.
const GlobAny Glob = "*"

// Match reports whether p matches the glob. A malformed pattern matches
// nothing.
func (g Glob) Match(p string) bool {
	if g == GlobAny {
		return true
	}
	subject := p
	if !g.IsPathPattern() {
		subject = path.Base(p)
	}
	ok, err := doublestar.Match(string(g), subject)
	return err == nil && ok
}

// IsPathPattern reports whether g is matched against the full relative path.
func (g Glob) IsPathPattern() bool {
	return strings.Contains(string(g), "/") || strings.Contains(string(g), "**")
}

// Valid reports whether g is a well-formed pattern.
func (g Glob) Valid() bool {
	return doublestar.ValidatePattern(string(g))
}

// Predicate returns g as a Predicate.
func (g Glob) Predicate() Predicate {
	return g.Match
}

// Predicate tests a file by its full relative path.
type Predicate func(p string) bool

// Any accepts every file.
func Any(string) bool { return true }

// BaseIs matches files with exactly this base name.
func BaseIs(name string) Predicate {
	return func(p string) bool {
		return path.Base(p) == name
	}
}

// HasExt matches files by extension, ignoring case (".reds" matches "X.REDS").
func HasExt(ext string) Predicate {
	return func(p string) bool {
		return strings.EqualFold(path.Ext(p), ext)
	}
}

// Not inverts a predicate.
func Not(pred Predicate) Predicate {
	return func(p string) bool {
		return !pred(p)
	}
}
