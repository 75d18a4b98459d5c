package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLZMACodecRoundTrip(t *testing.T) {
	require := require.New(t)
	codec := NewLZMACodec()

	input := []byte("hello world\n")
	compressed, err := codec.Compress(input)
	require.NoError(err)
	require.Equal([]byte{0x0C, 0x00, 0x00, 0x00}, compressed[:4])

	out, err := codec.Decompress(compressed)
	require.NoError(err)
	require.Equal(input, out)
}

func TestLZMACodecEmptyInput(t *testing.T) {
	require := require.New(t)
	codec := NewLZMACodec()

	out, err := codec.Decompress(nil)
	require.NoError(err)
	require.Empty(out)

	compressed, err := codec.Compress(nil)
	require.NoError(err)
	out, err = codec.Decompress(compressed)
	require.NoError(err)
	require.Empty(out)
}

func TestLZMACodecRejectsUndersizedInput(t *testing.T) {
	codec := NewLZMACodec()
	_, err := codec.Decompress([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.Error(t, err)
}

func TestLZMACodecLargerPayload(t *testing.T) {
	require := require.New(t)
	codec := NewLZMACodec()

	input := make([]byte, 64*1024)
	for i := range input {
		input[i] = byte(i % 251)
	}

	compressed, err := codec.Compress(input)
	require.NoError(err)
	require.Less(len(compressed), len(input))

	out, err := codec.Decompress(compressed)
	require.NoError(err)
	require.Equal(input, out)
}
