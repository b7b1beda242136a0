package filetree

import (
	"iter"
	"slices"
)

// PathInTree reports whether p is a file in the tree, or a directory with at
// least one file somewhere beneath it. A path written with a trailing
// separator is only looked up as a directory.
func (t *Tree) PathInTree(p string) bool {
	norm, isDir, ok := Normalize(p)
	if !ok {
		return false
	}
	if !isDir {
		if _, found := t.files[norm]; found {
			return true
		}
	}

	n, found := t.lookupDir(norm)
	return found && !t.nodes[n].leaves.IsEmpty()
}

// WalkFilesUnder yields every file beneath dir, at any depth, matching g.
// Each directory's own files come before its subdirectories, which are
// visited in listing order. Subtrees whose bitmap is empty are skipped.
// Nothing is yielded for an absent directory.
func (t *Tree) WalkFilesUnder(dir string, g Glob) iter.Seq[string] {
	return func(yield func(string) bool) {
		n, ok := t.lookupDir(dir)
		if !ok {
			return
		}

		var walk func(int32) bool
		walk = func(d int32) bool {
			for _, id := range t.nodes[d].files {
				if p := t.leaves[id].path; g.Match(p) && !yield(p) {
					return false
				}
			}
			for _, c := range t.nodes[d].subdirs {
				if t.nodes[c].leaves.IsEmpty() {
					continue
				}
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(n)
	}
}

// FilesUnder collects WalkFilesUnder.
func (t *Tree) FilesUnder(dir string, g Glob) []string {
	return nonNil(slices.Collect(t.WalkFilesUnder(dir, g)))
}

// FilesIn returns the files directly inside dir matching g.
func (t *Tree) FilesIn(dir string, g Glob) []string {
	return t.FilesInMatching(dir, g.Predicate())
}

// FilesInMatching returns the files directly inside dir that satisfy pred,
// in listing order.
func (t *Tree) FilesInMatching(dir string, pred Predicate) []string {
	n, ok := t.lookupDir(dir)
	if !ok {
		return []string{}
	}

	out := []string{}
	for _, id := range t.nodes[n].files {
		if p := t.leaves[id].path; pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// SubdirsIn returns the immediate subdirectories of dir.
func (t *Tree) SubdirsIn(dir string) []string {
	n, ok := t.lookupDir(dir)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(t.nodes[n].subdirs))
	for _, c := range t.nodes[n].subdirs {
		out = append(out, t.nodes[c].path)
	}
	return out
}

// DirWithSomeIn reports whether a file directly inside dir satisfies pred.
func (t *Tree) DirWithSomeIn(dir string, pred Predicate) bool {
	n, ok := t.lookupDir(dir)
	return ok && t.someIn(n, pred)
}

// DirWithSomeUnder reports whether a file anywhere beneath dir satisfies pred.
func (t *Tree) DirWithSomeUnder(dir string, pred Predicate) bool {
	n, ok := t.lookupDir(dir)
	return ok && t.someUnder(n, pred)
}

func (t *Tree) someIn(n int32, pred Predicate) bool {
	for _, id := range t.nodes[n].files {
		if pred(t.leaves[id].path) {
			return true
		}
	}
	return false
}

func (t *Tree) someUnder(n int32, pred Predicate) bool {
	it := t.nodes[n].leaves.Iterator()
	for it.HasNext() {
		if pred(t.leaves[it.Next()].path) {
			return true
		}
	}
	return false
}

// FindAllSubdirsWithSome returns every directory at or under start that
// directly contains a file satisfying pred. The start directory comes first
// (left out when start is TopLevel), followed by its descendants in
// post-order, children in listing order.
func (t *Tree) FindAllSubdirsWithSome(start string, pred Predicate) []string {
	ids := t.subdirsWithSome(start, pred)
	out := make([]string, len(ids))
	for i, n := range ids {
		out[i] = t.display(n)
	}
	return out
}

// FindTopmostSubdirsWithSome is FindAllSubdirsWithSome without directories
// whose parent, grandparent and so on already qualify. The archive root only
// stands for its own top-level files and never hides a subdirectory.
func (t *Tree) FindTopmostSubdirsWithSome(start string, pred Predicate) []string {
	ids := t.subdirsWithSome(start, pred)

	qualifies := make(map[int32]bool, len(ids))
	for _, n := range ids {
		qualifies[n] = true
	}

	out := []string{}
	for _, n := range ids {
		if !t.hasQualifyingAncestor(n, qualifies) {
			out = append(out, t.display(n))
		}
	}
	return out
}

func (t *Tree) hasQualifyingAncestor(n int32, qualifies map[int32]bool) bool {
	for a := t.nodes[n].parent; a > rootNode; a = t.nodes[a].parent {
		if qualifies[a] {
			return true
		}
	}
	return false
}

// FindDirectSubdirsWithSome returns the immediate subdirectories of parent
// with a file satisfying pred anywhere beneath them.
func (t *Tree) FindDirectSubdirsWithSome(parent string, pred Predicate) []string {
	n, ok := t.lookupDir(parent)
	if !ok {
		return []string{}
	}

	out := []string{}
	for _, c := range t.nodes[n].subdirs {
		if t.someUnder(c, pred) {
			out = append(out, t.nodes[c].path)
		}
	}
	return out
}

// FindAllFiles returns every file satisfying pred, grouped by directory in
// FindAllSubdirsWithSome(Root) order.
func (t *Tree) FindAllFiles(pred Predicate) []string {
	out := []string{}
	for _, n := range t.subdirsWithSome(Root, pred) {
		for _, id := range t.nodes[n].files {
			if p := t.leaves[id].path; pred(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

func (t *Tree) subdirsWithSome(start string, pred Predicate) []int32 {
	n, ok := t.lookupDir(start)
	if !ok {
		return nil
	}

	var found []int32
	if !isTopLevel(start) && t.someIn(n, pred) {
		found = append(found, n)
	}

	var visit func(int32)
	visit = func(dir int32) {
		for _, c := range t.nodes[dir].subdirs {
			visit(c)
			if t.someIn(c, pred) {
				found = append(found, c)
			}
		}
	}
	visit(n)

	return found
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
