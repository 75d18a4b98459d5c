// Package obfuscate implements the three decryption primitives used by the
// oldest, encrypted-index Pack generation. The library only ever consumes
// encrypted artifacts; it never produces them, so this package exposes no
// encrypt side.
package obfuscate

import (
	"encoding/binary"

	"github.com/twtools/packlib/bytecursor"
)

// dataKey is the multiplier used by block decryption.
const dataKey uint64 = 0x8FEB_2A67_40A6_920E

// indexU32Key is the first XOR term for obfuscated 32-bit integers.
const indexU32Key uint32 = 0xE10B_73F4

// stringKey is the 64-byte rolling XOR table for obfuscated strings.
var stringKey = [64]byte([]byte("#:AhppdV-!PEfz&}[]Nv?6w4guU%dF5.fq:n*-qGuhBJJBm&?2tPy!geW/+k#pG?"))

// DecryptBlocks reverses the 8-byte-block XOR-multiply cipher used for
// encrypted Pack indexes and payloads. The final block is never encrypted
// and is copied through unchanged, matching the quirk in the original
// decryptor this was ported from.
func DecryptBlocks(ciphertext []byte) []byte {
	size := len(ciphertext)
	padded := size
	if rem := size % 8; rem != 0 {
		padded += 8 - rem
	}

	padded8 := make([]byte, padded)
	copy(padded8, ciphertext)

	plaintext := make([]byte, padded)
	chunks := padded / 8
	for i := 0; i < chunks; i++ {
		start := i * 8
		block := padded8[start : start+8]
		if i == chunks-1 {
			copy(plaintext[start:start+8], block)
			continue
		}

		position := uint64(start) //nolint:gosec
		ct := binary.LittleEndian.Uint64(block)
		pt := ct ^ (dataKey * ^position)
		binary.LittleEndian.PutUint64(plaintext[start:start+8], pt)
	}

	return plaintext[:size]
}

// DecryptU32 reverses the obfuscated 32-bit integer cipher keyed by a
// caller-supplied secondary key (typically a running count of remaining
// index entries).
func DecryptU32(ciphertext uint32, secondKey uint32) uint32 {
	return ciphertext ^ indexU32Key ^ ^secondKey
}

// DecryptByte reverses a single byte of the obfuscated-string cipher at
// stream position pos, keyed by secondKey.
func DecryptByte(ciphertext byte, pos int, secondKey uint8) byte {
	return ciphertext ^ stringKey[pos%len(stringKey)] ^ ^secondKey
}

// DecryptString reads an obfuscated null-terminated ASCII string from r,
// one byte at a time, stopping at the first decoded NUL. The terminator
// itself is consumed but not appended.
func DecryptString(r *bytecursor.Reader, secondKey uint8) (string, error) {
	var out []byte
	for pos := 0; ; pos++ {
		b, err := r.ReadU8()
		if err != nil {
			return "", err
		}
		decoded := DecryptByte(b, pos, secondKey)
		if decoded == 0 {
			break
		}
		out = append(out, decoded)
	}
	return string(out), nil
}
