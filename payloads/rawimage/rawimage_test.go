package rawimage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func TestImageRoundTripIsByteExact(t *testing.T) {
	require := require.New(t)

	pngMagic := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x01, 0x02, 0x03}
	img := &Image{Data: pngMagic}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, img, nil))
	require.Equal(pngMagic, w.Bytes())

	r := bytecursor.NewReader(w.Bytes())
	got, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.Equal(img, got)
	require.True(r.AtEnd())
}

func TestImageEmptyData(t *testing.T) {
	require := require.New(t)

	r := bytecursor.NewReader(nil)
	got, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.Empty(got.Data)
}
