// Package portraitsettings implements the portrait-settings payload
// (portrait_settings_*.bin): per-character camera framing plus the
// texture variants the campaign UI composes a character portrait from.
//
// Only the v1 wire layout is implemented. v1 carries a head camera
// only, so the model has no body camera field.
package portraitsettings

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// CameraSetting frames the portrait render: spherical coordinates around
// the character's head plus the field of view.
type CameraSetting struct {
	Distance float32
	Theta    float32
	Phi      float32
	FOV      float32
}

// Variant is one composable portrait texture set.
type Variant struct {
	Filename      string
	FileDiffuse   string
	FileMask1     string
	FileMask2     string
	FileMask3     string
	Season        string
	Level         int32
	Age           int32
	Politician    bool
	FactionLeader bool
}

// Entry is one character's portrait configuration.
type Entry struct {
	ID         string
	HeadCamera CameraSetting
	Variants   []Variant
}

// PortraitSettings is the decoded payload.
type PortraitSettings struct {
	Version uint32
	Entries []Entry
}

func (PortraitSettings) Kind() filetype.Kind { return filetype.PortraitSettings }

const supportedVersion = 1

// Codec implements codec.TypedFileCodec for portrait-settings files.
type Codec struct{}

func (Codec) Decode(r *bytecursor.Reader, _ *extradata.ExtraData) (*PortraitSettings, error) {
	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != supportedVersion {
		return nil, &errs.UnsupportedVersion{TypeName: "portraitsettings.PortraitSettings", Version: int64(version)}
	}

	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	ps := &PortraitSettings{Version: version, Entries: make([]Entry, 0, count)}
	for i := uint32(0); i < count; i++ {
		var e Entry
		if e.ID, err = r.ReadStringU16(); err != nil {
			return nil, err
		}
		if e.HeadCamera.Distance, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if e.HeadCamera.Theta, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if e.HeadCamera.Phi, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if e.HeadCamera.FOV, err = r.ReadF32(); err != nil {
			return nil, err
		}

		variantCount, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		e.Variants = make([]Variant, 0, variantCount)
		for j := uint32(0); j < variantCount; j++ {
			v, err := decodeVariant(r)
			if err != nil {
				return nil, err
			}
			e.Variants = append(e.Variants, v)
		}

		ps.Entries = append(ps.Entries, e)
	}

	if !r.AtEnd() {
		return nil, &errs.MismatchSize{Expected: r.Len(), Got: r.Pos()}
	}
	return ps, nil
}

func decodeVariant(r *bytecursor.Reader) (Variant, error) {
	var v Variant
	var err error

	if v.Filename, err = r.ReadStringU16(); err != nil {
		return v, err
	}
	if v.FileDiffuse, err = r.ReadStringU16(); err != nil {
		return v, err
	}
	if v.FileMask1, err = r.ReadStringU16(); err != nil {
		return v, err
	}
	if v.FileMask2, err = r.ReadStringU16(); err != nil {
		return v, err
	}
	if v.FileMask3, err = r.ReadStringU16(); err != nil {
		return v, err
	}
	if v.Season, err = r.ReadStringU16(); err != nil {
		return v, err
	}
	if v.Level, err = r.ReadI32(); err != nil {
		return v, err
	}
	if v.Age, err = r.ReadI32(); err != nil {
		return v, err
	}
	if v.Politician, err = r.ReadBool(); err != nil {
		return v, err
	}
	if v.FactionLeader, err = r.ReadBool(); err != nil {
		return v, err
	}
	return v, nil
}

func (Codec) Encode(w *bytecursor.Writer, ps *PortraitSettings, _ *extradata.EncodeExtraData) error {
	version := ps.Version
	if version == 0 {
		version = supportedVersion
	}
	if version != supportedVersion {
		return &errs.UnsupportedVersion{TypeName: "portraitsettings.PortraitSettings", Version: int64(version)}
	}

	w.WriteU32(version)
	w.WriteU32(uint32(len(ps.Entries))) //nolint:gosec
	for _, e := range ps.Entries {
		w.WriteStringU16(e.ID)
		w.WriteF32(e.HeadCamera.Distance)
		w.WriteF32(e.HeadCamera.Theta)
		w.WriteF32(e.HeadCamera.Phi)
		w.WriteF32(e.HeadCamera.FOV)

		w.WriteU32(uint32(len(e.Variants))) //nolint:gosec
		for _, v := range e.Variants {
			w.WriteStringU16(v.Filename)
			w.WriteStringU16(v.FileDiffuse)
			w.WriteStringU16(v.FileMask1)
			w.WriteStringU16(v.FileMask2)
			w.WriteStringU16(v.FileMask3)
			w.WriteStringU16(v.Season)
			w.WriteI32(v.Level)
			w.WriteI32(v.Age)
			w.WriteBool(v.Politician)
			w.WriteBool(v.FactionLeader)
		}
	}
	return nil
}
