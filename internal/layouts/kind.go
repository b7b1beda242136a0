// Package layouts recognizes the shape of a mod archive and picks the
// layout used to install it.
//
// A Layout pairs a detector, a pure predicate over a filetree.Tree, with a
// synthesizer that turns the matched files into planner instructions.
// Detection and synthesis are separate so a layout can be checked without
// producing instructions. Layouts are grouped into Families, tried most
// specific first, and Families are ordered in a Catalog.
package layouts

// Kind identifies a recognized layout.
type Kind int

const (
	KindUnknown Kind = iota
	CoreRedscriptCurrent
	CoreRedscriptDeprecated
	CoreRed4ext
	CoreCET
	CETModCanon
	CETModPlugin
	RedscriptModCanon
	RedscriptModBasedir
	RedscriptModToplevel
	Custom
)

// AllKinds lists every built-in kind in declaration order.
func AllKinds() []Kind {
	return []Kind{
		CoreRedscriptCurrent,
		CoreRedscriptDeprecated,
		CoreRed4ext,
		CoreCET,
		CETModCanon,
		CETModPlugin,
		RedscriptModCanon,
		RedscriptModBasedir,
		RedscriptModToplevel,
		Custom,
	}
}

func (k Kind) String() string {
	switch k {
	case CoreRedscriptCurrent:
		return "core-redscript"
	case CoreRedscriptDeprecated:
		return "core-redscript-deprecated"
	case CoreRed4ext:
		return "core-red4ext"
	case CoreCET:
		return "core-cet"
	case CETModCanon:
		return "cet-canon"
	case CETModPlugin:
		return "cet-plugin"
	case RedscriptModCanon:
		return "redscript-canon"
	case RedscriptModBasedir:
		return "redscript-basedir"
	case RedscriptModToplevel:
		return "redscript-toplevel"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Deprecated reports whether installing this kind needs user confirmation.
func (k Kind) Deprecated() bool {
	return k == CoreRedscriptDeprecated
}
