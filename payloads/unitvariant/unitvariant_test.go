package unitvariant

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func TestUnitVariantV1RoundTrip(t *testing.T) {
	require := require.New(t)

	uv := &UnitVariant{
		Version: 1,
		Categories: []Category{
			{
				Name: "head",
				ID:   100,
				Variants: []Variant{
					{MeshFile: "models/head_a.mesh", TextureFolder: "textures/heads/a"},
					{MeshFile: "models/head_b.mesh", TextureFolder: "textures/heads/b"},
				},
			},
			{
				Name:     "torso",
				ID:       200,
				Variants: []Variant{{MeshFile: "models/torso_a.mesh", TextureFolder: "textures/torsos/a"}},
			},
		},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, uv, nil))

	r := bytecursor.NewReader(w.Bytes())
	got, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.Equal(uv, got)
}

func TestUnitVariantV2CarriesUnknown1(t *testing.T) {
	require := require.New(t)

	uv := &UnitVariant{
		Version:    2,
		Unknown1:   42,
		Categories: []Category{{Name: "weapon", ID: 7, Variants: []Variant{{MeshFile: "w.mesh", TextureFolder: "tex"}}}},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, uv, nil))

	r := bytecursor.NewReader(w.Bytes())
	got, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.Equal(uint32(42), got.Unknown1)
	require.Equal(uv, got)
}

func TestUnitVariantRejectsBadSignature(t *testing.T) {
	require := require.New(t)

	w := bytecursor.NewWriter()
	w.WriteBytes([]byte("NOPE"))
	w.WriteU32(1)
	w.WriteU32(0)
	w.WriteU32(0)
	w.WriteU32(0)

	r := bytecursor.NewReader(w.Bytes())
	_, err := Codec{}.Decode(r, nil)
	require.Error(err)
}
