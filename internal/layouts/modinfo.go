package layouts

import (
	"path"
	"strings"
)

// ModInfo is caller-supplied metadata about the archive being installed.
type ModInfo struct {
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	ArchivePath string `json:"archive_path,omitempty"`
}

// FeatureSet carries the user's feature toggles. The core passes it through
// to collaborators untouched.
type FeatureSet struct {
	REDmodAutoconvertArchives    bool `json:"redmod_autoconvert_archives"`
	REDmodFallbackInstallAnyways bool `json:"redmod_fallback_install_anyways"`
}

// DirName is the directory name used when a layout has to place files in a
// folder named after the mod. Falls back to the archive's base name, then
// to "mod".
func (m ModInfo) DirName() string {
	name := strings.TrimSpace(m.Name)
	if name == "" && m.ArchivePath != "" {
		base := path.Base(strings.ReplaceAll(m.ArchivePath, `\`, "/"))
		name = strings.TrimSuffix(base, path.Ext(base))
	}

	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, ". ")

	if name == "" {
		return "mod"
	}
	return name
}
