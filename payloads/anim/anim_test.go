package anim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func TestAnimRoundTrip(t *testing.T) {
	require := require.New(t)

	a := &Anim{
		Version:      7,
		Unknown1:     2,
		FrameRate:    20,
		SkeletonName: "humanoid01",
		EndTime:      3.5,
		BoneCount:    64,
		Data:         []byte{0xDE, 0xAD, 0xBE, 0xEF},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, a, nil))

	decoded, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.NoError(err)
	require.Equal(a, decoded)
}

func TestAnimEmptyTrackData(t *testing.T) {
	require := require.New(t)

	a := &Anim{Version: 4, FrameRate: 15, SkeletonName: "mount_horse", Data: []byte{}}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, a, nil))

	decoded, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.NoError(err)
	require.Equal(a, decoded)
	require.Empty(decoded.Data)
}
