package esf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/extradata"
)

func sampleTree() *ESF {
	inner := &RecordNode{
		Name:    "REGION",
		Version: 2,
		Children: [][]Node{{
			{Kind: NodeAscii, Str: "region_key_1"},
			{Kind: NodeUtf16, Str: "Región"},
			{Kind: NodeU32, U: 42, Optimized: true},
			{Kind: NodeI32, I: -3, Optimized: true},
			{Kind: NodeF32, F: 1.5},
			{Kind: NodeCoord3d, X: 1, Y: 2, Z: 3},
			{Kind: NodeBool, Bool: true, Optimized: true},
			{Kind: NodeAngle, U: 90},
			{Kind: NodeU16Array, Bytes: []byte{1, 0, 2, 0}},
		}},
	}
	block := &RecordNode{
		Name:    "REGION_LIST",
		Version: 1,
		Block:   true,
		Children: [][]Node{
			{{Kind: NodeRecord, Record: inner}},
			{{Kind: NodeU32, U: 7}},
		},
	}
	root := &RecordNode{
		Name:    "ROOT",
		Version: 0,
		Children: [][]Node{{
			{Kind: NodeRecordBlock, Record: block},
			{Kind: NodeAscii, Str: "region_key_1"},
		}},
	}
	return &ESF{
		Unknown1:     0xABAD1DEA,
		CreationDate: 1_600_000_000,
		Root:         Node{Kind: NodeRecord, Record: root},
	}
}

func TestESFRoundTrip(t *testing.T) {
	require := require.New(t)

	e := sampleTree()

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, e, nil))

	decoded, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.NoError(err)
	require.Equal(e, decoded)
}

func TestESFEncodeIsByteStable(t *testing.T) {
	require := require.New(t)

	e := sampleTree()

	w1 := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w1, e, nil))
	first := append([]byte(nil), w1.Bytes()...)

	w2 := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w2, e, nil))
	require.Equal(first, w2.Bytes())
}

func TestESFRejectsUnknownSignature(t *testing.T) {
	w := bytecursor.NewWriter()
	w.WriteU32(0x1234)

	_, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.Error(t, err)
}

func TestESFCompressedAtRestRoundTrip(t *testing.T) {
	require := require.New(t)

	env := &RecordNode{
		Name:    "CAMPAIGN_ENV",
		Version: 3,
		Children: [][]Node{{
			{Kind: NodeAscii, Str: "campaign_main"},
			{Kind: NodeU32, U: 123456},
		}},
	}
	root := &RecordNode{
		Name:     "ROOT",
		Children: [][]Node{{{Kind: NodeRecord, Record: env}}},
	}
	e := &ESF{CreationDate: 99, Root: Node{Kind: NodeRecord, Record: root}}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, e, nil))

	// The wrapped output decodes back to the original tree: decode finds
	// the compressed-data record, decompresses, and replaces the root.
	decoded, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.NoError(err)
	require.Equal(e, decoded)

	// With compression disabled, the wrapper is visibly absent.
	plainED, err := extradata.NewEncode(extradata.WithEncodeDisableCompression(true))
	require.NoError(err)
	pw := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(pw, e, plainED))

	plain, err := Codec{}.Decode(bytecursor.NewReader(pw.Bytes()), nil)
	require.NoError(err)
	require.Equal(e, plain)
	require.NotEqual(pw.Bytes(), w.Bytes())
}
