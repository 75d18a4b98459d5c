// Package unitvariant implements the binary UnitVariant payload: the
// per-unit list of mesh/texture part combinations a battle model can be
// assembled from. Later titles store the same data as XML handled by the
// generic text payload; only Shogun 2 and its contemporaries ship this
// binary form.
package unitvariant

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

const signature = "VRNT"

const (
	headerLengthV1 uint32 = 20
	headerLengthV2 uint32 = 24
)

const fixedStringWidth = 512

// Variant is one mesh/texture-folder combination within a Category.
type Variant struct {
	MeshFile      string
	TextureFolder string
	Unknown       uint16
}

// Category groups the variants that belong to one named unit part (head,
// torso, weapon, ...).
type Category struct {
	Name     string
	ID       uint64
	Variants []Variant
}

// UnitVariant is the decoded payload.
type UnitVariant struct {
	Version    uint32
	Unknown1   uint32
	Categories []Category
}

func (UnitVariant) Kind() filetype.Kind { return filetype.UnitVariant }

func (uv *UnitVariant) headerSize() uint32 {
	if uv.Version == 2 {
		return headerLengthV2
	}
	return headerLengthV1
}

// Codec implements codec.TypedFileCodec for UnitVariant files.
type Codec struct{}

// Decode reads a UnitVariant. The header gives a category count and two
// byte offsets into the body (the start of the category list and the
// start of the variant list); this module ignores the offsets the same
// way the source reader does, since both lists are read sequentially
// regardless of what they claim.
func (Codec) Decode(r *bytecursor.Reader, _ *extradata.ExtraData) (*UnitVariant, error) {
	sig, err := r.ReadBytes(len(signature))
	if err != nil {
		return nil, err
	}
	if string(sig) != signature {
		return nil, &errs.PayloadCorrupt{TypeName: "unitvariant.UnitVariant", Detail: "missing VRNT signature"}
	}

	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	categoryCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadU32(); err != nil { // categories offset, unused
		return nil, err
	}
	if _, err := r.ReadU32(); err != nil { // variants offset, unused
		return nil, err
	}

	var unknown1 uint32
	if version == 2 {
		unknown1, err = r.ReadU32()
		if err != nil {
			return nil, err
		}
	}

	categories := make([]Category, 0, categoryCount)
	variantCounts := make([]uint32, 0, categoryCount)
	for i := uint32(0); i < categoryCount; i++ {
		name, err := r.ReadFixedUTF16(fixedStringWidth)
		if err != nil {
			return nil, err
		}
		id, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		count, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadU32(); err != nil { // variants-before-this-category, unused
			return nil, err
		}
		categories = append(categories, Category{Name: name, ID: id})
		variantCounts = append(variantCounts, count)
	}

	for i := range categories {
		variants := make([]Variant, 0, variantCounts[i])
		for j := uint32(0); j < variantCounts[i]; j++ {
			mesh, err := r.ReadFixedUTF16(fixedStringWidth)
			if err != nil {
				return nil, err
			}
			texFolder, err := r.ReadFixedUTF16(fixedStringWidth)
			if err != nil {
				return nil, err
			}
			unk, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			variants = append(variants, Variant{MeshFile: mesh, TextureFolder: texFolder, Unknown: unk})
		}
		categories[i].Variants = variants
	}

	return &UnitVariant{Version: version, Unknown1: unknown1, Categories: categories}, nil
}

// Encode writes uv back out, recomputing the category/variant offsets
// from its own header size the way the source writer does.
func (Codec) Encode(w *bytecursor.Writer, uv *UnitVariant, _ *extradata.EncodeExtraData) error {
	var categoriesBuf, variantsBuf bytecursor.Writer
	categoriesW, variantsW := &categoriesBuf, &variantsBuf

	var variantsBefore uint32
	for _, cat := range uv.Categories {
		categoriesW.WriteFixedUTF16(cat.Name, fixedStringWidth)
		categoriesW.WriteU64(cat.ID)
		categoriesW.WriteU32(uint32(len(cat.Variants)))
		categoriesW.WriteU32(variantsBefore)

		for _, v := range cat.Variants {
			variantsW.WriteFixedUTF16(v.MeshFile, fixedStringWidth)
			variantsW.WriteFixedUTF16(v.TextureFolder, fixedStringWidth)
			variantsW.WriteU16(v.Unknown)
		}
		variantsBefore += uint32(len(cat.Variants))
	}

	w.WriteBytes([]byte(signature))
	w.WriteU32(uv.Version)
	w.WriteU32(uint32(len(uv.Categories)))

	headerSize := uv.headerSize()
	w.WriteU32(headerSize)
	w.WriteU32(headerSize + uint32(len(categoriesW.Bytes())))

	if uv.Version == 2 {
		w.WriteU32(uv.Unknown1)
	}

	w.WriteBytes(categoriesW.Bytes())
	w.WriteBytes(variantsW.Bytes())
	return nil
}
