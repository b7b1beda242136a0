// Package filetree indexes the flat path listing of a mod archive.
//
// A Tree is built once from the archive listing and is read-only afterwards,
// so any number of goroutines may query it. Directories exist only while some
// file lives beneath them: an empty directory in the listing is
// indistinguishable from one that was never listed.
//
// Nodes live in an arena (a slice addressed by index) and every directory
// node carries a roaring bitmap of the leaf ids found anywhere beneath it.
// "Does this directory have content" and "list everything under here" are
// answered from the bitmap without walking the subtree.
package filetree

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
)

const (
	// Root addresses the archive root. Subdirectory searches started here
	// include the root itself (reported as ".").
	Root = ""

	// TopLevel also addresses the archive root, but subdirectory searches
	// started here leave the root out of the result.
	TopLevel = "."
)

const rootNode int32 = 0

// node is one directory segment.
type node struct {
	name    string
	path    string // relative, slash separated; "" for the root
	parent  int32  // -1 for the root
	subdirs []int32
	byName  map[string]int32
	files   []uint32        // leaves directly in this directory, insertion order
	leaves  *roaring.Bitmap // every leaf beneath this directory
}

type leaf struct {
	path string
	dir  int32
}

// Tree is an indexed, read-only view of an archive listing.
type Tree struct {
	nodes   []node
	leaves  []leaf
	files   map[string]uint32
	skipped []string
}

// Build indexes paths in a single pass. Directory entries (a trailing
// separator) are accepted but never stored, duplicates are ignored, and
// malformed entries are skipped and remembered for diagnostics.
func Build(paths []string) *Tree {
	t := &Tree{
		nodes: []node{newNode("", "", -1)},
		files: make(map[string]uint32, len(paths)),
	}

	for _, raw := range paths {
		p, isDir, ok := Normalize(raw)
		if !ok {
			t.skipped = append(t.skipped, raw)
			continue
		}
		if isDir {
			continue
		}
		t.insert(p)
	}

	for i := range t.nodes {
		t.nodes[i].leaves.RunOptimize()
	}

	return t
}

func newNode(name, path string, parent int32) node {
	return node{
		name:   name,
		path:   path,
		parent: parent,
		byName: make(map[string]int32),
		leaves: roaring.New(),
	}
}

func (t *Tree) insert(p string) {
	if _, dup := t.files[p]; dup {
		return
	}

	segments := strings.Split(p, "/")
	dir := rootNode
	for _, seg := range segments[:len(segments)-1] {
		dir = t.child(dir, seg)
	}

	id := uint32(len(t.leaves))
	t.leaves = append(t.leaves, leaf{path: p, dir: dir})
	t.files[p] = id
	t.nodes[dir].files = append(t.nodes[dir].files, id)

	for n := dir; n >= 0; n = t.nodes[n].parent {
		t.nodes[n].leaves.Add(id)
	}
}

// child returns the index of the named subdirectory of parent, creating it.
func (t *Tree) child(parent int32, name string) int32 {
	if id, ok := t.nodes[parent].byName[name]; ok {
		return id
	}

	p := name
	if pp := t.nodes[parent].path; pp != "" {
		p = pp + "/" + name
	}

	id := int32(len(t.nodes))
	t.nodes = append(t.nodes, newNode(name, p, parent))
	t.nodes[parent].byName[name] = id
	t.nodes[parent].subdirs = append(t.nodes[parent].subdirs, id)
	return id
}

// Normalize converts a raw archive entry to the slash separated form stored
// in the tree. isDir reports a directory entry (trailing separator). ok is
// false for entries that cannot be placed: empty strings, absolute paths and
// paths with empty, "." or ".." segments.
func Normalize(raw string) (p string, isDir bool, ok bool) {
	if raw == "" {
		return "", false, false
	}

	p = strings.ReplaceAll(raw, `\`, "/")
	if strings.HasPrefix(p, "/") || hasDriveLetter(p) {
		return "", false, false
	}
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}

	isDir = strings.HasSuffix(p, "/")
	p = strings.TrimSuffix(p, "/")
	if p == "" || p == "." {
		return "", true, true
	}

	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", false, false
		}
	}

	return p, isDir, true
}

func hasDriveLetter(p string) bool {
	return len(p) >= 2 && p[1] == ':' &&
		((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}

// lookupDir resolves a directory argument to its node. Root and TopLevel
// both resolve to the root node.
func (t *Tree) lookupDir(dir string) (int32, bool) {
	p, _, ok := Normalize(dir)
	if dir == Root {
		p, ok = "", true
	}
	if !ok {
		return 0, false
	}
	if p == "" {
		return rootNode, true
	}

	n := rootNode
	for _, seg := range strings.Split(p, "/") {
		next, found := t.nodes[n].byName[seg]
		if !found {
			return 0, false
		}
		n = next
	}
	return n, true
}

// isTopLevel reports whether a directory argument means "the root, but not
// as a search result".
func isTopLevel(dir string) bool {
	return strings.TrimSuffix(strings.ReplaceAll(dir, `\`, "/"), "/") == TopLevel
}

// display is the path a directory is reported under.
func (t *Tree) display(n int32) string {
	if n == rootNode {
		return TopLevel
	}
	return t.nodes[n].path
}

// FileCount returns the number of files (leaves) in the tree.
func (t *Tree) FileCount() int {
	return len(t.leaves)
}

// SourcePaths returns every file in the order it was first listed.
func (t *Tree) SourcePaths() []string {
	out := make([]string, len(t.leaves))
	for i, l := range t.leaves {
		out[i] = l.path
	}
	return out
}

// Skipped returns the raw entries Build could not normalize.
func (t *Tree) Skipped() []string {
	return append([]string(nil), t.skipped...)
}
