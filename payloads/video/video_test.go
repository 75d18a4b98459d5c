package video

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func TestSniff(t *testing.T) {
	require.Equal(t, FlavorStandard, Sniff([]byte("DKIF")))
	require.Equal(t, FlavorCustom, Sniff([]byte("CAMV")))
	require.Equal(t, FlavorUnknown, Sniff([]byte("XXXX")))
}

func TestCustomRoundTrip(t *testing.T) {
	require := require.New(t)

	frame0 := make([]byte, 10)
	frame0[3], frame0[4], frame0[5] = 0x9D, 0x01, 0x2A

	tbl := &Table{
		Flavor:     FlavorCustom,
		FourCC:     "VP80",
		Width:      640,
		Height:     480,
		FrameCount: 1,
		Timebase:   30,
		Frames: []Frame{
			{Offset: 0, Size: uint32(len(frame0)), KeyFrame: true},
		},
		Payload: frame0,
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, tbl, nil))

	r := bytecursor.NewReader(w.Bytes())
	decoded, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.Equal(FlavorCustom, decoded.Flavor)
	require.Equal("VP80", decoded.FourCC)
	require.Equal(tbl.Frames, decoded.Frames)
	require.True(decoded.Frames[0].KeyFrame)
	require.Equal(frame0, decoded.Payload)
}

func TestStandardRoundTrip(t *testing.T) {
	require := require.New(t)

	frame0 := make([]byte, 8)
	frame0[3], frame0[4], frame0[5] = 0x9D, 0x01, 0x2A

	tbl := &Table{
		Flavor:     FlavorStandard,
		FourCC:     "VP80",
		Width:      320,
		Height:     240,
		FrameCount: 1,
		Timebase:   25,
		Frames:     []Frame{{Offset: 0, Size: uint32(len(frame0)), KeyFrame: true}},
		Payload:    frame0,
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, tbl, nil))

	r := bytecursor.NewReader(w.Bytes())
	decoded, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.Equal(tbl.Frames, decoded.Frames)
	require.Equal(frame0, decoded.Payload)
}

func TestFrameRowSizeDetection(t *testing.T) {
	require := require.New(t)
	sz, err := frameRowSize(13*3, 3)
	require.NoError(err)
	require.Equal(13, sz)

	sz, err = frameRowSize(9*3, 3)
	require.NoError(err)
	require.Equal(9, sz)
}
