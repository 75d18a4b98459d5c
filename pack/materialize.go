package pack

import (
	"github.com/twtools/packlib/compress"
	"github.com/twtools/packlib/obfuscate"
)

var lzmaCodec = compress.NewLZMACodec()

// materialize pulls an on-disk window's bytes through decryption and
// decompression as required.
func (r onDiskRef) materialize(encryptedData bool) ([]byte, error) {
	raw := r.backing[r.offset : r.offset+r.length]

	if encryptedData {
		raw = obfuscate.DecryptBlocks(raw)
	}
	if r.compressed {
		return lzmaCodec.Decompress(raw)
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}
