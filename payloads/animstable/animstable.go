// Package animstable implements the animation-table payload
// (animation_tables.bin): the per-skeleton list of animation fragments a
// unit type can play, keyed by table name and mount table.
//
// Only the v2 wire layout is implemented; any other version fails with
// errs.UnsupportedVersion rather than guess at an unknown layout.
package animstable

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// Fragment is one playable animation fragment reference.
type Fragment struct {
	Name     string
	Unknown5 uint32
}

// Entry binds one skeleton's animation set: its table name, skeleton
// type, mount table, and the fragments available to it.
type Entry struct {
	TableName      string
	SkeletonType   string
	MountTableName string
	Fragments      []Fragment
	Unknown6       bool
	Unknown7       bool
}

// AnimsTable is the decoded payload.
type AnimsTable struct {
	Version uint32
	Entries []Entry
}

func (AnimsTable) Kind() filetype.Kind { return filetype.AnimsTable }

// Codec implements codec.TypedFileCodec for animation tables.
type Codec struct{}

func (Codec) Decode(r *bytecursor.Reader, _ *extradata.ExtraData) (*AnimsTable, error) {
	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != 2 {
		return nil, &errs.UnsupportedVersion{TypeName: "animstable.AnimsTable", Version: int64(version)}
	}

	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	at := &AnimsTable{Version: version, Entries: make([]Entry, 0, count)}
	for i := uint32(0); i < count; i++ {
		var e Entry
		if e.TableName, err = r.ReadStringU16(); err != nil {
			return nil, err
		}
		if e.SkeletonType, err = r.ReadStringU16(); err != nil {
			return nil, err
		}
		if e.MountTableName, err = r.ReadStringU16(); err != nil {
			return nil, err
		}

		fragCount, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		e.Fragments = make([]Fragment, 0, fragCount)
		for j := uint32(0); j < fragCount; j++ {
			name, err := r.ReadStringU16()
			if err != nil {
				return nil, err
			}
			uk5, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			e.Fragments = append(e.Fragments, Fragment{Name: name, Unknown5: uk5})
		}

		if e.Unknown6, err = r.ReadBool(); err != nil {
			return nil, err
		}
		if e.Unknown7, err = r.ReadBool(); err != nil {
			return nil, err
		}

		at.Entries = append(at.Entries, e)
	}

	if !r.AtEnd() {
		return nil, &errs.MismatchSize{Expected: r.Len(), Got: r.Pos()}
	}

	return at, nil
}

func (Codec) Encode(w *bytecursor.Writer, at *AnimsTable, _ *extradata.EncodeExtraData) error {
	version := at.Version
	if version == 0 {
		version = 2
	}
	if version != 2 {
		return &errs.UnsupportedVersion{TypeName: "animstable.AnimsTable", Version: int64(version)}
	}

	w.WriteU32(version)
	w.WriteU32(uint32(len(at.Entries))) //nolint:gosec
	for _, e := range at.Entries {
		w.WriteStringU16(e.TableName)
		w.WriteStringU16(e.SkeletonType)
		w.WriteStringU16(e.MountTableName)

		w.WriteU32(uint32(len(e.Fragments))) //nolint:gosec
		for _, f := range e.Fragments {
			w.WriteStringU16(f.Name)
			w.WriteU32(f.Unknown5)
		}

		w.WriteBool(e.Unknown6)
		w.WriteBool(e.Unknown7)
	}
	return nil
}
