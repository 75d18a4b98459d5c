// Package matchedcombat implements the matched-combat payload: the
// synchronized kill/duel animation pairings battle units play against
// each other.
//
// The payload is one of the per-game-layout cases: the same leading
// version integer selects a different wire layout depending on the title
// the Pack belongs to. Three Kingdoms groups entries by id with
// filter-driven entity bundles; every earlier title ships flat sets of
// animation pairs. The layout branch is driven by
// ExtraData.GameIdentity, not by anything in the bytes themselves.
package matchedcombat

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// CombatAnimation is one participant's animation in a classic-layout
// matched set. The five leading integers are preserved verbatim; the
// first three are believed to be team and start/end alive-or-dead
// status, but nothing depends on that reading.
type CombatAnimation struct {
	Unknown1      uint32
	Unknown2      uint32
	Unknown3      uint32
	Unknown4      uint32
	Unknown5      uint32
	FilePath      string
	MountFilePath string
}

// Filter restricts which units an entity slot can match.
type Filter struct {
	Type   uint32
	Value  string
	Equals bool
	Or     bool
}

// Entity is one animated participant slot in a Three Kingdoms entry.
type Entity struct {
	Filters           []Filter
	AnimationFilename string
	MetadataFilenames []string
	BlendInTime       float32
	EquipmentDisplay  uint32
	Unknown           uint32
}

// EntityBundle groups the entities animated together by one bundle.
type EntityBundle struct {
	Entities []Entity
}

// Participant holds a Three Kingdoms entry's bundles. The wire layout
// has no participant framing of its own; each entry decodes into a
// single Participant so the model matches titles that do split them.
type Participant struct {
	EntityInfo []EntityBundle
}

// MatchedEntry is one named Three Kingdoms matched-combat entry.
type MatchedEntry struct {
	ID           string
	Participants []Participant
}

// MatchedCombat is the decoded payload. Exactly one of Sets (classic
// layout) or Entries (Three Kingdoms layout) is populated, matching the
// game the payload was decoded for.
type MatchedCombat struct {
	Version uint32
	Sets    [][]CombatAnimation
	Entries []MatchedEntry
}

func (MatchedCombat) Kind() filetype.Kind { return filetype.MatchedCombat }

const supportedVersion = 1

// Codec implements codec.TypedFileCodec for matched-combat files.
type Codec struct{}

// Decode reads the leading version then dispatches on the game identity:
// Three Kingdoms selects the entity-bundle layout, every other title the
// flat-set layout.
func (Codec) Decode(r *bytecursor.Reader, ed *extradata.ExtraData) (*MatchedCombat, error) {
	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != supportedVersion {
		return nil, &errs.UnsupportedVersion{TypeName: "matchedcombat.MatchedCombat", Version: int64(version)}
	}

	mc := &MatchedCombat{Version: version}
	if gameFor(ed) == extradata.GameThreeKingdoms {
		if err := decode3k(r, mc); err != nil {
			return nil, err
		}
	} else if err := decodeClassic(r, mc); err != nil {
		return nil, err
	}

	if !r.AtEnd() {
		return nil, &errs.MismatchSize{Expected: r.Len(), Got: r.Pos()}
	}
	return mc, nil
}

func gameFor(ed *extradata.ExtraData) extradata.GameIdentity {
	if ed == nil {
		return extradata.GameUnknown
	}
	return ed.GameIdentity()
}

func decodeClassic(r *bytecursor.Reader, mc *MatchedCombat) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	mc.Sets = make([][]CombatAnimation, 0, count)
	for i := uint32(0); i < count; i++ {
		entryCount, err := r.ReadU32()
		if err != nil {
			return err
		}
		set := make([]CombatAnimation, 0, entryCount)
		for j := uint32(0); j < entryCount; j++ {
			var ca CombatAnimation
			if ca.Unknown1, err = r.ReadU32(); err != nil {
				return err
			}
			if ca.Unknown2, err = r.ReadU32(); err != nil {
				return err
			}
			if ca.Unknown3, err = r.ReadU32(); err != nil {
				return err
			}
			if ca.Unknown4, err = r.ReadU32(); err != nil {
				return err
			}
			if ca.Unknown5, err = r.ReadU32(); err != nil {
				return err
			}
			if ca.FilePath, err = r.ReadStringU16(); err != nil {
				return err
			}
			if ca.MountFilePath, err = r.ReadStringU16(); err != nil {
				return err
			}
			set = append(set, ca)
		}
		mc.Sets = append(mc.Sets, set)
	}
	return nil
}

func decode3k(r *bytecursor.Reader, mc *MatchedCombat) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	mc.Entries = make([]MatchedEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		var entry MatchedEntry
		if entry.ID, err = r.ReadStringU16(); err != nil {
			return err
		}

		// The wire stores bundles directly under the entry; wrap them in
		// one Participant to keep the model uniform.
		var participant Participant
		bundleCount, err := r.ReadU32()
		if err != nil {
			return err
		}
		participant.EntityInfo = make([]EntityBundle, 0, bundleCount)
		for j := uint32(0); j < bundleCount; j++ {
			var bundle EntityBundle
			entityCount, err := r.ReadU32()
			if err != nil {
				return err
			}
			bundle.Entities = make([]Entity, 0, entityCount)
			for k := uint32(0); k < entityCount; k++ {
				entity, err := decodeEntity(r)
				if err != nil {
					return err
				}
				bundle.Entities = append(bundle.Entities, entity)
			}
			participant.EntityInfo = append(participant.EntityInfo, bundle)
		}

		entry.Participants = append(entry.Participants, participant)
		mc.Entries = append(mc.Entries, entry)
	}
	return nil
}

func decodeEntity(r *bytecursor.Reader) (Entity, error) {
	var e Entity

	filterCount, err := r.ReadU32()
	if err != nil {
		return e, err
	}
	e.Filters = make([]Filter, 0, filterCount)
	for i := uint32(0); i < filterCount; i++ {
		var f Filter
		if f.Type, err = r.ReadU32(); err != nil {
			return e, err
		}
		if f.Value, err = r.ReadStringU16(); err != nil {
			return e, err
		}
		if f.Equals, err = r.ReadBool(); err != nil {
			return e, err
		}
		if f.Or, err = r.ReadBool(); err != nil {
			return e, err
		}
		e.Filters = append(e.Filters, f)
	}

	if e.AnimationFilename, err = r.ReadStringU16(); err != nil {
		return e, err
	}

	metaCount, err := r.ReadU32()
	if err != nil {
		return e, err
	}
	e.MetadataFilenames = make([]string, 0, metaCount)
	for i := uint32(0); i < metaCount; i++ {
		name, err := r.ReadStringU16()
		if err != nil {
			return e, err
		}
		e.MetadataFilenames = append(e.MetadataFilenames, name)
	}

	if e.BlendInTime, err = r.ReadF32(); err != nil {
		return e, err
	}
	if e.EquipmentDisplay, err = r.ReadU32(); err != nil {
		return e, err
	}
	if e.Unknown, err = r.ReadU32(); err != nil {
		return e, err
	}
	return e, nil
}

// Encode mirrors Decode, dispatching on the same game identity.
func (Codec) Encode(w *bytecursor.Writer, mc *MatchedCombat, ed *extradata.EncodeExtraData) error {
	version := mc.Version
	if version == 0 {
		version = supportedVersion
	}
	if version != supportedVersion {
		return &errs.UnsupportedVersion{TypeName: "matchedcombat.MatchedCombat", Version: int64(version)}
	}
	w.WriteU32(version)

	game := extradata.GameUnknown
	if ed != nil {
		game = ed.GameIdentity()
	}
	if game == extradata.GameThreeKingdoms {
		encode3k(w, mc)
	} else {
		encodeClassic(w, mc)
	}
	return nil
}

func encodeClassic(w *bytecursor.Writer, mc *MatchedCombat) {
	w.WriteU32(uint32(len(mc.Sets))) //nolint:gosec
	for _, set := range mc.Sets {
		w.WriteU32(uint32(len(set))) //nolint:gosec
		for _, ca := range set {
			w.WriteU32(ca.Unknown1)
			w.WriteU32(ca.Unknown2)
			w.WriteU32(ca.Unknown3)
			w.WriteU32(ca.Unknown4)
			w.WriteU32(ca.Unknown5)
			w.WriteStringU16(ca.FilePath)
			w.WriteStringU16(ca.MountFilePath)
		}
	}
}

func encode3k(w *bytecursor.Writer, mc *MatchedCombat) {
	w.WriteU32(uint32(len(mc.Entries))) //nolint:gosec
	for _, entry := range mc.Entries {
		w.WriteStringU16(entry.ID)
		for _, participant := range entry.Participants {
			w.WriteU32(uint32(len(participant.EntityInfo))) //nolint:gosec
			for _, bundle := range participant.EntityInfo {
				w.WriteU32(uint32(len(bundle.Entities))) //nolint:gosec
				for _, entity := range bundle.Entities {
					encodeEntity(w, entity)
				}
			}
		}
	}
}

func encodeEntity(w *bytecursor.Writer, e Entity) {
	w.WriteU32(uint32(len(e.Filters))) //nolint:gosec
	for _, f := range e.Filters {
		w.WriteU32(f.Type)
		w.WriteStringU16(f.Value)
		w.WriteBool(f.Equals)
		w.WriteBool(f.Or)
	}

	w.WriteStringU16(e.AnimationFilename)
	w.WriteU32(uint32(len(e.MetadataFilenames))) //nolint:gosec
	for _, name := range e.MetadataFilenames {
		w.WriteStringU16(name)
	}

	w.WriteF32(e.BlendInTime)
	w.WriteU32(e.EquipmentDisplay)
	w.WriteU32(e.Unknown)
}
