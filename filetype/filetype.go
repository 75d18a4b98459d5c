// Package filetype classifies a Pack entry's payload kind from its
// container path, the way PackContainer's parallel type-guessing pass does
// for every file right after index parsing.
package filetype

import (
	"path"
	"strings"
)

// Kind identifies which TypedFileCodec owns a payload's bytes.
type Kind uint8

const (
	Unknown Kind = iota
	DB
	Loc
	Image
	Video
	SceneGraph
	Collision
	UnitVariant
	GroupFormations
	SoundBank
	Anim
	AnimsTable
	MatchedCombat
	PortraitSettings
	Esf
)

func (k Kind) String() string {
	switch k {
	case DB:
		return "db"
	case Loc:
		return "loc"
	case Image:
		return "image"
	case Video:
		return "video"
	case SceneGraph:
		return "scenegraph"
	case Collision:
		return "collision"
	case UnitVariant:
		return "unit_variant"
	case GroupFormations:
		return "group_formations"
	case SoundBank:
		return "soundbank"
	case Anim:
		return "anim"
	case AnimsTable:
		return "anims_table"
	case MatchedCombat:
		return "matched_combat"
	case PortraitSettings:
		return "portrait_settings"
	case Esf:
		return "esf"
	default:
		return "unknown"
	}
}

// NeverCompressible reports whether a save path must skip compression for
// this kind regardless of the caller's request — shipped titles crash on
// startup when certain tables arrive compressed.
func (k Kind) NeverCompressible() bool {
	return k == DB || k == Loc
}

var extensionKinds = map[string]Kind{
	".loc":                   Loc,
	".png":                   Image,
	".dds":                   Image,
	".tga":                   Image,
	".ivf":                   Video,
	".bik":                   Video,
	".variantmeshdefinition": UnitVariant,
	".bnk":                   SoundBank,
	".rigid_model_v2":        SceneGraph,
	".anim":                  Anim,
	".esf":                   Esf,
	".ccd":                   Esf,
	".save":                  Esf,
}

// Guess classifies containerPath using its directory prefix first (the
// convention every game ships with: tables live under db/<table>/,
// .bmd scene graphs under an animations/ folder and similar fixed roots) and its
// extension otherwise.
func Guess(containerPath string) Kind {
	lower := strings.ToLower(containerPath)

	switch {
	case strings.HasPrefix(lower, "db/"):
		return DB
	case strings.HasPrefix(lower, "text/") && strings.HasSuffix(lower, ".loc"):
		return Loc
	case strings.Contains(lower, "/animations/") && strings.HasSuffix(lower, ".bmd"):
		return SceneGraph
	case strings.HasSuffix(lower, "_collision.bin") || strings.Contains(lower, "cs2_collision"):
		return Collision
	case strings.Contains(lower, "group_formations"):
		return GroupFormations
	case strings.Contains(lower, "animation_tables/") && strings.HasSuffix(lower, "_tables.bin"):
		return AnimsTable
	case strings.Contains(lower, "matched_combat/") && strings.HasSuffix(lower, ".bin"):
		return MatchedCombat
	case strings.HasPrefix(path.Base(lower), "portrait_settings") && strings.HasSuffix(lower, ".bin"):
		return PortraitSettings
	}

	if kind, ok := extensionKinds[path.Ext(lower)]; ok {
		return kind
	}

	return Unknown
}
