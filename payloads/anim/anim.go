// Package anim implements the skeletal-animation payload (.anim). Only the
// header is decoded; the bone-track data after it is kept as raw bytes,
// which is all the container-level tooling ever needs (the header carries
// the skeleton name and timing a mod manager filters on).
package anim

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// Anim is the decoded payload.
type Anim struct {
	Version      uint32
	Unknown1     uint32
	FrameRate    float32
	SkeletonName string
	EndTime      float32
	BoneCount    uint32

	// Data holds every byte after the header, undecoded.
	Data []byte
}

func (Anim) Kind() filetype.Kind { return filetype.Anim }

// Codec implements codec.TypedFileCodec for animation files.
type Codec struct{}

func (Codec) Decode(r *bytecursor.Reader, _ *extradata.ExtraData) (*Anim, error) {
	a := &Anim{}
	var err error

	if a.Version, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if a.Unknown1, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if a.FrameRate, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if a.SkeletonName, err = r.ReadStringU16(); err != nil {
		return nil, err
	}
	if a.EndTime, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if a.BoneCount, err = r.ReadU32(); err != nil {
		return nil, err
	}

	rest, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}
	a.Data = append(make([]byte, 0, len(rest)), rest...)

	return a, nil
}

func (Codec) Encode(w *bytecursor.Writer, a *Anim, _ *extradata.EncodeExtraData) error {
	w.WriteU32(a.Version)
	w.WriteU32(a.Unknown1)
	w.WriteF32(a.FrameRate)
	w.WriteStringU16(a.SkeletonName)
	w.WriteF32(a.EndTime)
	w.WriteU32(a.BoneCount)
	w.WriteBytes(a.Data)
	return nil
}
