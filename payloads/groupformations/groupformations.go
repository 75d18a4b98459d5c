// Package groupformations implements the group-formations payload: a
// battlefield AI formation-template file that, unlike most typed payloads,
// carries no leading version integer. Its wire layout instead branches on
// the owning Pack's game, so the same logical record is read and written
// differently per title.
package groupformations

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// EntityArrangement is a Shogun 2 formation block's entity layout kind.
type EntityArrangement uint32

// UnitCategory is a Shogun 2 minimum-unit-category-percentage entry's unit kind.
type UnitCategory uint32

// Entity is a Shogun 2 entity preference's entity kind.
type Entity uint32

// AIPurpose is a Shogun 2 formation's bitflag purpose field.
type AIPurpose uint32

// MinUnitCategoryPercentage pairs a unit category with its minimum share of
// the formation.
type MinUnitCategoryPercentage struct {
	Category   UnitCategory
	Percentage uint32
}

// EntityPreference is one weighted entity choice inside a formation block.
type EntityPreference struct {
	Priority float32
	Entity   Entity
}

// ContainerBlock is a formation block that arranges entities either at an
// absolute position (RelativeBlockID unused, IsRelative false) or relative
// to another block's ID.
type ContainerBlock struct {
	IsRelative             bool
	RelativeBlockID        uint32
	BlockPriority          float32
	EntityArrangement      EntityArrangement
	InterEntitySpacing     float32
	CrescentYOffset        float32
	PositionX              float32
	PositionY              float32
	MinimumEntityThreshold int32
	MaximumEntityThreshold int32
	EntityPreferences      []EntityPreference
}

// SpanningBlock ties a set of other block IDs together as one formation
// spanning all of them.
type SpanningBlock struct {
	SpannedBlockIDs []uint32
}

// GroupFormationBlock is one tagged block within a formation: exactly one
// of Container or Spanning is set, discriminated by the wire block-type
// tag (0 absolute, 1 relative, 3 spanning) preserved on round-trip.
type GroupFormationBlock struct {
	BlockID   uint32
	Container *ContainerBlock
	Spanning  *SpanningBlock
}

// GroupFormation is one named AI formation template.
type GroupFormation struct {
	Name                      string
	AIPriority                float32
	AIPurpose                 AIPurpose
	MinUnitCategoryPercentage []MinUnitCategoryPercentage
	AISupportedFactions       []string
	Blocks                    []GroupFormationBlock
}

// GroupFormations is the decoded group-formations payload: every formation
// template defined for one game's battlefield AI.
type GroupFormations struct {
	Formations []GroupFormation
}

func (GroupFormations) Kind() filetype.Kind { return filetype.GroupFormations }

// Codec implements codec.TypedFileCodec for group-formations files,
// dispatching its wire layout on ed.GameIdentity() since this payload
// carries no version marker of its own.
type Codec struct{}

func (Codec) Decode(r *bytecursor.Reader, ed *extradata.ExtraData) (*GroupFormations, error) {
	if ed == nil {
		return nil, errs.ErrMissingExtraData
	}
	switch ed.GameIdentity() {
	case extradata.GameShogun2:
		return decodeShogun2(r)
	default:
		return nil, &errs.UnsupportedGame{Key: string(ed.GameIdentity())}
	}
}

func (Codec) Encode(w *bytecursor.Writer, v *GroupFormations, ed *extradata.EncodeExtraData) error {
	if ed == nil {
		return errs.ErrMissingExtraData
	}
	switch ed.GameIdentity() {
	case extradata.GameShogun2:
		encodeShogun2(w, v)
		return nil
	default:
		return &errs.UnsupportedGame{Key: string(ed.GameIdentity())}
	}
}
