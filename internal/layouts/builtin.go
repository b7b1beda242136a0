package layouts

import (
	"fmt"
	"path"

	"github.com/danieljhkim/modlayout/internal/filetree"
	"github.com/danieljhkim/modlayout/internal/planner"
)

// Family names
const (
	FamilyCoreRedscript = "CoreRedscript"
	FamilyCoreRed4ext   = "CoreRed4ext"
	FamilyCoreCET       = "CoreCET"
	FamilyCETMod        = "CETMod"
	FamilyRedscriptMod  = "RedscriptMod"
	FamilyCustom        = "Custom"
)

var (
	RedscriptCoreRequiredFiles = []string{
		"engine/config/base/scripts.ini",
		"engine/tools/scc.exe",
		"r6/scripts/redscript.toml",
	}

	DeprecatedRedscriptCoreRequiredFiles = []string{
		"engine/config/base/scripts.ini",
		"r6/scripts/redscript.toml",
	}

	Red4extCoreRequiredFiles = []string{
		"bin/x64/powrprof.dll",
		"red4ext/LICENSE.txt",
		"red4ext/RED4ext.dll",
	}

	CETCoreRequiredFiles = []string{
		"bin/x64/plugins/cyber_engine_tweaks.asi",
	}
)

const (
	Red4extPluginsDir = "red4ext/plugins"

	CETModCanonicalPathPrefix = "bin/x64/plugins/cyber_engine_tweaks/mods"
	CETModCanonicalInitFile   = "init.lua"

	RedscriptModCanonicalPathPrefix = "r6/scripts"
	RedscriptExt                    = ".reds"
)

var (
	matchCETInitLua    = filetree.BaseIs(CETModCanonicalInitFile)
	notMatchCETInitLua = filetree.Not(matchCETInitLua)
	matchRedscript     = filetree.HasExt(RedscriptExt)
)

// ForKind returns the built-in layout for k. Every kind except Custom, whose
// layouts come from configuration, has exactly one.
func ForKind(k Kind) (Layout, error) {
	var l Layout
	switch k {
	case CoreRedscriptCurrent:
		l = Layout{
			Detect:      Fingerprint(RedscriptCoreRequiredFiles),
			Synthesize:  allFilesAsIs,
			Fingerprint: RedscriptCoreRequiredFiles,
		}
	case CoreRedscriptDeprecated:
		l = Layout{
			Detect:      Fingerprint(DeprecatedRedscriptCoreRequiredFiles),
			Synthesize:  allFilesAsIs,
			Fingerprint: DeprecatedRedscriptCoreRequiredFiles,
		}
	case CoreRed4ext:
		l = Layout{
			Detect:      Fingerprint(Red4extCoreRequiredFiles),
			Synthesize:  withDirectories(allFilesAsIs, Red4extPluginsDir),
			Fingerprint: Red4extCoreRequiredFiles,
		}
	case CoreCET:
		l = Layout{
			Detect:      Fingerprint(CETCoreRequiredFiles),
			Synthesize:  allFilesAsIs,
			Fingerprint: CETCoreRequiredFiles,
		}
	case CETModCanon:
		l = Layout{
			Detect:     SubdirsWithSome(CETModCanonicalPathPrefix, matchCETInitLua),
			Synthesize: cetModFiles,
		}
	case CETModPlugin:
		l = Layout{
			Detect:     SubdirsWithSome(CETModCanonicalPathPrefix, notMatchCETInitLua),
			Synthesize: cetModFiles,
		}
	case RedscriptModCanon:
		l = Layout{
			Detect:        SubdirsWithSome(RedscriptModCanonicalPathPrefix, matchRedscript),
			Synthesize:    redscriptCanonFiles,
			ExclusiveWith: []Kind{RedscriptModBasedir, RedscriptModToplevel},
		}
	case RedscriptModBasedir:
		l = Layout{
			Detect:        FilesDirectlyIn(RedscriptModCanonicalPathPrefix, matchRedscript),
			Synthesize:    redscriptRelocated(RedscriptModCanonicalPathPrefix),
			ExclusiveWith: []Kind{RedscriptModCanon, RedscriptModToplevel},
		}
	case RedscriptModToplevel:
		l = Layout{
			Detect:        FilesDirectlyIn(filetree.TopLevel, matchRedscript),
			Synthesize:    redscriptRelocated(filetree.Root),
			ExclusiveWith: []Kind{RedscriptModCanon, RedscriptModBasedir},
		}
	default:
		return Layout{}, fmt.Errorf("no built-in layout for kind %s", k)
	}

	l.Kind = k
	l.Name = k.String()
	l.Deprecated = k.Deprecated()
	return l, nil
}

func mustLayouts(kinds ...Kind) []Layout {
	out := make([]Layout, 0, len(kinds))
	for _, k := range kinds {
		l, err := ForKind(k)
		if err != nil {
			panic(err)
		}
		out = append(out, l)
	}
	return out
}

// DefaultCatalog returns the built-in families. Core installers come before
// mod installers, and within each family the more specific layout comes
// first: the current redscript fingerprint is a superset of the deprecated
// one, and every canonical CET mod directory would also pass the plugin check.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Families: []Family{
			{Name: FamilyCoreRedscript, Layouts: mustLayouts(CoreRedscriptCurrent, CoreRedscriptDeprecated)},
			{Name: FamilyCoreRed4ext, Layouts: mustLayouts(CoreRed4ext)},
			{Name: FamilyCoreCET, Layouts: mustLayouts(CoreCET)},
			{Name: FamilyCETMod, Layouts: mustLayouts(CETModCanon, CETModPlugin)},
			{Name: FamilyRedscriptMod, Layouts: mustLayouts(RedscriptModCanon, RedscriptModBasedir, RedscriptModToplevel)},
		},
	}
}

// Synthesizers

func allFilesAsIs(tree *filetree.Tree, _ ModInfo) []planner.Instruction {
	return planner.SameSourceAndDest(tree.FilesUnder(filetree.Root, filetree.GlobAny))
}

func withDirectories(base Synthesizer, dirs ...string) Synthesizer {
	return func(tree *filetree.Tree, mod ModInfo) []planner.Instruction {
		out := base(tree, mod)
		for _, d := range dirs {
			out = append(out, planner.MakeDirectory(d))
		}
		return out
	}
}

func cetModFiles(tree *filetree.Tree, _ ModInfo) []planner.Instruction {
	var files []string
	for _, dir := range tree.FindDirectSubdirsWithSome(CETModCanonicalPathPrefix, filetree.Any) {
		files = append(files, tree.FilesUnder(dir, filetree.GlobAny)...)
	}
	return planner.SameSourceAndDest(files)
}

func redscriptCanonFiles(tree *filetree.Tree, _ ModInfo) []planner.Instruction {
	var files []string
	for _, dir := range tree.FindDirectSubdirsWithSome(RedscriptModCanonicalPathPrefix, matchRedscript) {
		files = append(files, tree.FilesUnder(dir, filetree.GlobAny)...)
	}
	return planner.SameSourceAndDest(files)
}

// redscriptRelocated moves loose .reds files from dir into
// r6/scripts/<mod name>/.
func redscriptRelocated(dir string) Synthesizer {
	return func(tree *filetree.Tree, mod ModInfo) []planner.Instruction {
		files := tree.FilesInMatching(dir, matchRedscript)
		return planner.Relocate(files, dir, path.Join(RedscriptModCanonicalPathPrefix, mod.DirName()))
	}
}
