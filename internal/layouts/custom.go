package layouts

import (
	"fmt"

	"github.com/danieljhkim/modlayout/internal/filetree"
	"github.com/danieljhkim/modlayout/internal/planner"
)

// FingerprintSpec declares a fingerprint layout outside the built-in catalog.
type FingerprintSpec struct {
	Name        string
	Required    []string
	Directories []string
	Deprecated  bool

	// Include limits the installed files to those matching any of these
	// globs. Empty installs every file.
	Include []string
}

// NewFingerprintLayout builds a Custom layout that installs files as-is when
// all required paths are present, plus the listed directories.
func NewFingerprintLayout(spec FingerprintSpec) (Layout, error) {
	if spec.Name == "" {
		return Layout{}, fmt.Errorf("custom layout: name is required")
	}
	if len(spec.Required) == 0 {
		return Layout{}, fmt.Errorf("custom layout %s: at least one required path is needed", spec.Name)
	}

	required := make([]string, 0, len(spec.Required))
	for _, raw := range spec.Required {
		p, isDir, ok := filetree.Normalize(raw)
		if !ok || p == "" {
			return Layout{}, fmt.Errorf("custom layout %s: invalid required path %q", spec.Name, raw)
		}
		if isDir {
			p += "/"
		}
		required = append(required, p)
	}

	synth := allFilesAsIs
	if len(spec.Include) > 0 {
		globs := make([]filetree.Glob, 0, len(spec.Include))
		for _, raw := range spec.Include {
			g := filetree.Glob(raw)
			if raw == "" || !g.Valid() {
				return Layout{}, fmt.Errorf("custom layout %s: invalid include glob %q", spec.Name, raw)
			}
			globs = append(globs, g)
		}
		synth = includedFilesAsIs(globs)
	}
	if len(spec.Directories) > 0 {
		synth = withDirectories(synth, spec.Directories...)
	}

	return Layout{
		Kind:        Custom,
		Name:        spec.Name,
		Deprecated:  spec.Deprecated,
		Detect:      Fingerprint(required),
		Synthesize:  synth,
		Fingerprint: required,
	}, nil
}

// CustomFamily wraps configured layouts in a family, in the given order.
func CustomFamily(specs []FingerprintSpec) (Family, error) {
	f := Family{Name: FamilyCustom}
	for _, spec := range specs {
		l, err := NewFingerprintLayout(spec)
		if err != nil {
			return Family{}, err
		}
		f.Layouts = append(f.Layouts, l)
	}
	return f, nil
}

func includedFilesAsIs(globs []filetree.Glob) Synthesizer {
	return func(tree *filetree.Tree, _ ModInfo) []planner.Instruction {
		var files []string
		for p := range tree.WalkFilesUnder(filetree.Root, filetree.GlobAny) {
			for _, g := range globs {
				if g.Match(p) {
					files = append(files, p)
					break
				}
			}
		}
		return planner.SameSourceAndDest(files)
	}
}
