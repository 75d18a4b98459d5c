// Package soundbank implements the Wwise sound-bank payload (.bnk): a
// sequence of sized sections, of which the bank header (BKHD) and the
// object hierarchy (HIRC) are the two that ship in game Packs. Event and
// settings objects are decoded structurally; every other HIRC object kind
// keeps its body as raw bytes so it round-trips untouched.
package soundbank

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

const (
	sigBKHD = "BKHD"
	sigHIRC = "HIRC"
)

// The bank header's version field carries a vendor bit in its top bit;
// it is stripped on decode and restored on encode.
const versionVendorBit = 0x8000_0000

// ObjectType tags one HIRC object.
type ObjectType uint8

const (
	ObjectSettings ObjectType = iota + 1
	ObjectSoundEffectOrVoice
	ObjectEventAction
	ObjectEvent
	ObjectRandomOrSequenceContainer
	ObjectSwitchContainer
	ObjectActorMixer
	ObjectAudioBus
	ObjectBlendContainer
	ObjectMusicSegment
	ObjectMusicTrack
	ObjectMusicSwitchContainer
	ObjectMusicPlaylistContainer
	ObjectAttenuation
	ObjectDialogueEvent
	ObjectMotionBus
	ObjectMotionFx
	ObjectEffect
	ObjectUnknown
	ObjectAuxiliaryBus
)

func (t ObjectType) valid() bool {
	return t >= ObjectSettings && t <= ObjectAuxiliaryBus
}

// Language is the bank header's language id.
type Language uint32

const (
	LanguageSfx Language = iota
	LanguageArabic
	LanguageBulgarian
	LanguageChineseHK
	LanguageChinesePRC
	LanguageChineseTaiwan
	LanguageCzech
	LanguageDanish
	LanguageDutch
	LanguageEnglishAustralia
	LanguageEnglishIndia
	LanguageEnglishUK
	LanguageEnglishUS
	LanguageFinnish
	LanguageFrenchCanada
	LanguageFrenchFrance
	LanguageGerman
	LanguageGreek
	LanguageHebrew
	LanguageHungarian
	LanguageIndonesian
	LanguageItalian
	LanguageJapanese
	LanguageKorean
	LanguageLatin
	LanguageNorwegian
	LanguagePolish
	LanguagePortugueseBrazil
	LanguagePortuguesePortugal
	LanguageRomanian
	LanguageRussian
	LanguageSlovenian
	LanguageSpanishMexico
	LanguageSpanishSpain
	LanguageSpanishUS
	LanguageSwedish
	LanguageTurkish
	LanguageUkrainian
	LanguageVietnamese
)

func (l Language) valid() bool { return l <= LanguageVietnamese }

// BankHeader is the decoded BKHD section.
type BankHeader struct {
	Version        uint32
	ID             uint32
	Language       Language
	FeedbackInBank uint32
	ProjectID      uint32
	Padding        []byte
}

// Setting is one index/value pair inside a settings object. Kept as an
// ordered list rather than a map so re-encoding is byte-stable.
type Setting struct {
	Index uint8
	Value float32
}

// ObjectData is the body of one HIRC object. Exactly one of the concrete
// types below implements it.
type ObjectData interface{ isObjectData() }

// SettingsData is the decoded body of an ObjectSettings object.
type SettingsData struct {
	Settings []Setting
}

// EventData is the decoded body of an ObjectEvent object: the action ids
// the event triggers.
type EventData struct {
	Values []uint32
}

// RawData keeps an object body this module does not decode structurally.
type RawData struct {
	Bytes []byte
}

func (SettingsData) isObjectData() {}
func (EventData) isObjectData()    {}
func (RawData) isObjectData()      {}

// Object is one entry of the HIRC object hierarchy.
type Object struct {
	Type ObjectType
	ID   uint32
	Data ObjectData
}

// Hierarchy is the decoded HIRC section.
type Hierarchy struct {
	Objects []Object
}

// SoundBank is the decoded payload: its sections in file order.
type SoundBank struct {
	Header    *BankHeader
	Hierarchy *Hierarchy

	// sectionOrder preserves the signatures in the order they appeared,
	// so a bank whose HIRC precedes its BKHD re-encodes identically.
	sectionOrder []string
}

func (SoundBank) Kind() filetype.Kind { return filetype.SoundBank }

// Codec implements codec.TypedFileCodec for sound banks.
type Codec struct{}

// Decode reads sections until the stream is exhausted. Unknown section
// signatures fail the whole decode: a bank is a concatenation of sized
// sections, so skipping one silently would desynchronize every later
// offset on re-encode.
func (Codec) Decode(r *bytecursor.Reader, _ *extradata.ExtraData) (*SoundBank, error) {
	bank := &SoundBank{}

	for !r.AtEnd() {
		sig, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		size, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		sectionEnd := r.Pos() + int64(size)

		switch string(sig) {
		case sigBKHD:
			hdr, err := decodeBankHeader(r, sectionEnd)
			if err != nil {
				return nil, err
			}
			bank.Header = hdr
		case sigHIRC:
			h, err := decodeHierarchy(r)
			if err != nil {
				return nil, err
			}
			bank.Hierarchy = h
		default:
			return nil, &errs.PayloadCorrupt{TypeName: "soundbank", Detail: "unknown section " + string(sig)}
		}

		if r.Pos() != sectionEnd {
			return nil, &errs.MismatchSize{Expected: sectionEnd, Got: r.Pos()}
		}
		bank.sectionOrder = append(bank.sectionOrder, string(sig))
	}

	return bank, nil
}

func decodeBankHeader(r *bytecursor.Reader, sectionEnd int64) (*BankHeader, error) {
	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	id, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	lang, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if !Language(lang).valid() {
		return nil, &errs.PayloadCorrupt{TypeName: "soundbank", Detail: "unknown language id"}
	}
	feedback, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	project, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	padding, err := r.ReadBytes(int(sectionEnd - r.Pos()))
	if err != nil {
		return nil, err
	}

	return &BankHeader{
		Version:        version ^ versionVendorBit,
		ID:             id,
		Language:       Language(lang),
		FeedbackInBank: feedback,
		ProjectID:      project,
		Padding:        append([]byte(nil), padding...),
	}, nil
}

func decodeHierarchy(r *bytecursor.Reader) (*Hierarchy, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	h := &Hierarchy{Objects: make([]Object, 0, count)}
	for i := uint32(0); i < count; i++ {
		rawType, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		objType := ObjectType(rawType)
		if !objType.valid() {
			return nil, &errs.PayloadCorrupt{TypeName: "soundbank", Detail: "unknown object type"}
		}
		size, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		objectEnd := r.Pos() + int64(size)

		id, err := r.ReadU32()
		if err != nil {
			return nil, err
		}

		var data ObjectData
		switch objType {
		case ObjectSettings:
			elemCount, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			settings := make([]Setting, 0, elemCount)
			for j := uint8(0); j < elemCount; j++ {
				idx, err := r.ReadU8()
				if err != nil {
					return nil, err
				}
				val, err := r.ReadF32()
				if err != nil {
					return nil, err
				}
				settings = append(settings, Setting{Index: idx, Value: val})
			}
			data = SettingsData{Settings: settings}
		case ObjectEvent:
			elemCount, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			values := make([]uint32, 0, elemCount)
			for j := uint32(0); j < elemCount; j++ {
				v, err := r.ReadU32()
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
			data = EventData{Values: values}
		default:
			raw, err := r.ReadBytes(int(objectEnd - r.Pos()))
			if err != nil {
				return nil, err
			}
			data = RawData{Bytes: append([]byte(nil), raw...)}
		}

		if r.Pos() != objectEnd {
			return nil, &errs.MismatchSize{Expected: objectEnd, Got: r.Pos()}
		}
		h.Objects = append(h.Objects, Object{Type: objType, ID: id, Data: data})
	}

	return h, nil
}

// Encode writes the bank's sections back in their original order,
// recomputing every section and object size.
func (Codec) Encode(w *bytecursor.Writer, bank *SoundBank, _ *extradata.EncodeExtraData) error {
	order := bank.sectionOrder
	if order == nil {
		// A bank built in memory has no recorded order; header first.
		if bank.Header != nil {
			order = append(order, sigBKHD)
		}
		if bank.Hierarchy != nil {
			order = append(order, sigHIRC)
		}
	}

	for _, sig := range order {
		switch sig {
		case sigBKHD:
			encodeBankHeader(w, bank.Header)
		case sigHIRC:
			encodeHierarchy(w, bank.Hierarchy)
		}
	}
	return nil
}

func encodeBankHeader(w *bytecursor.Writer, hdr *BankHeader) {
	body := bytecursor.NewWriter()
	body.WriteU32(hdr.Version | versionVendorBit)
	body.WriteU32(hdr.ID)
	body.WriteU32(uint32(hdr.Language))
	body.WriteU32(hdr.FeedbackInBank)
	body.WriteU32(hdr.ProjectID)
	body.WriteBytes(hdr.Padding)

	w.WriteBytes([]byte(sigBKHD))
	w.WriteU32(uint32(body.Len())) //nolint:gosec
	w.WriteBytes(body.Bytes())
}

func encodeHierarchy(w *bytecursor.Writer, h *Hierarchy) {
	body := bytecursor.NewWriter()
	body.WriteU32(uint32(len(h.Objects))) //nolint:gosec

	for _, obj := range h.Objects {
		objBody := bytecursor.NewWriter()
		objBody.WriteU32(obj.ID)

		switch data := obj.Data.(type) {
		case SettingsData:
			objBody.WriteU8(uint8(len(data.Settings))) //nolint:gosec
			for _, s := range data.Settings {
				objBody.WriteU8(s.Index)
				objBody.WriteF32(s.Value)
			}
		case EventData:
			objBody.WriteU32(uint32(len(data.Values))) //nolint:gosec
			for _, v := range data.Values {
				objBody.WriteU32(v)
			}
		case RawData:
			objBody.WriteBytes(data.Bytes)
		}

		body.WriteU8(uint8(obj.Type))
		body.WriteU32(uint32(objBody.Len())) //nolint:gosec
		body.WriteBytes(objBody.Bytes())
	}

	w.WriteBytes([]byte(sigHIRC))
	w.WriteU32(uint32(body.Len())) //nolint:gosec
	w.WriteBytes(body.Bytes())
}
