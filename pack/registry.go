package pack

import (
	"github.com/twtools/packlib/codec"
	"github.com/twtools/packlib/filetype"
	"github.com/twtools/packlib/payloads/anim"
	"github.com/twtools/packlib/payloads/animstable"
	"github.com/twtools/packlib/payloads/collision"
	"github.com/twtools/packlib/payloads/dbtable"
	"github.com/twtools/packlib/payloads/esf"
	"github.com/twtools/packlib/payloads/groupformations"
	"github.com/twtools/packlib/payloads/loc"
	"github.com/twtools/packlib/payloads/matchedcombat"
	"github.com/twtools/packlib/payloads/portraitsettings"
	"github.com/twtools/packlib/payloads/rawimage"
	"github.com/twtools/packlib/payloads/scenegraph"
	"github.com/twtools/packlib/payloads/soundbank"
	"github.com/twtools/packlib/payloads/unitvariant"
	"github.com/twtools/packlib/payloads/video"
)

// DefaultRegistry returns a codec.Registry wired with every payload type
// this module ships a codec for. Callers with a schema-aware or
// game-specific payload can start from this and Register additional
// kinds.
func DefaultRegistry() *codec.Registry {
	r := codec.NewRegistry()
	r.Register(filetype.DB, dbtable.TypedCodec{})
	r.Register(filetype.Loc, loc.TypedCodec{})
	r.Register(filetype.Video, video.TypedCodec{})
	r.Register(filetype.GroupFormations, groupformations.TypedCodec{})
	r.Register(filetype.SceneGraph, scenegraph.TypedCodec{})
	r.Register(filetype.Collision, collision.TypedCodec{})
	r.Register(filetype.UnitVariant, unitvariant.TypedCodec{})
	r.Register(filetype.Image, rawimage.TypedCodec{})
	r.Register(filetype.SoundBank, soundbank.TypedCodec{})
	r.Register(filetype.Anim, anim.TypedCodec{})
	r.Register(filetype.AnimsTable, animstable.TypedCodec{})
	r.Register(filetype.MatchedCombat, matchedcombat.TypedCodec{})
	r.Register(filetype.PortraitSettings, portraitsettings.TypedCodec{})
	r.Register(filetype.Esf, esf.TypedCodec{})
	return r
}
