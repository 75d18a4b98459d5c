package obfuscate

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func TestDecryptBlocksLastBlockUnencrypted(t *testing.T) {
	require := require.New(t)

	plainA := uint64(0x1122334455667788)
	plainB := uint64(0xAABBCCDDEEFF0011) // last block, stays in clear

	ciphertext := make([]byte, 16)
	zero := uint64(0)
	ct := plainA ^ (dataKey * ^zero)
	binary.LittleEndian.PutUint64(ciphertext[0:8], ct)
	binary.LittleEndian.PutUint64(ciphertext[8:16], plainB)

	plaintext := DecryptBlocks(ciphertext)
	require.Equal(plainA, binary.LittleEndian.Uint64(plaintext[0:8]))
	require.Equal(plainB, binary.LittleEndian.Uint64(plaintext[8:16]))
}

func TestDecryptBlocksPadsToMultipleOfEight(t *testing.T) {
	require := require.New(t)
	ciphertext := []byte{1, 2, 3}
	plaintext := DecryptBlocks(ciphertext)
	require.Len(plaintext, 3)
	require.Equal(ciphertext, plaintext)
}

func TestDecryptU32(t *testing.T) {
	require.Equal(t, uint32(0x0FD6BFE5), DecryptU32(0x11223344, 0x000000AA))
}

func TestDecryptString(t *testing.T) {
	require := require.New(t)

	const secondKey = uint8(0x42)
	plain := "unit_cards"
	var ciphertext []byte
	for i, ch := range []byte(plain) {
		ciphertext = append(ciphertext, encodeByte(ch, i, secondKey))
	}
	ciphertext = append(ciphertext, encodeByte(0, len(plain), secondKey))

	r := bytecursor.NewReader(ciphertext)
	out, err := DecryptString(r, secondKey)
	require.NoError(err)
	require.Equal(plain, out)
	require.True(r.AtEnd())
}

func encodeByte(plain byte, pos int, secondKey uint8) byte {
	return plain ^ stringKey[pos%len(stringKey)] ^ ^secondKey
}
