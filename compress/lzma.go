package compress

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/ulikunitz/xz/lzma"

	"github.com/twtools/packlib/errs"
)

// level3DictCap approximates 7-Zip's "-mx=3" preset, which the original
// tooling used to produce vanilla compressed Pack payloads. The dictionary
// size travels inside the properties block, so a decoder never needs to
// know this constant: it reads whatever size the encoder wrote.
const level3DictCap = 1 << 20 // 1 MiB

// minCompressedSize is the shortest a wire payload can be and still contain
// a u32 length and a 5-byte properties block.
const minCompressedSize = 9

// LZMACodec implements the Pack file-payload compression format (see the
// package doc comment for the wire layout).
type LZMACodec struct{}

var _ Codec = LZMACodec{}

// NewLZMACodec returns the codec used for every compressed Pack payload.
func NewLZMACodec() LZMACodec { return LZMACodec{} }

// Compress encodes data at the classic "level 3" preset and rewrites the
// encoder's standard 13-byte alone-format header into the truncated,
// length-prefixed form Packs store on disk.
func (LZMACodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	cfg := lzma.WriterConfig{
		DictCap: level3DictCap,
		Size:    int64(len(data)),
	}
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, errs.ErrDataCannotBeCompressed
	}
	if _, err := w.Write(data); err != nil {
		return nil, errs.ErrDataCannotBeCompressed
	}
	if err := w.Close(); err != nil {
		return nil, errs.ErrDataCannotBeCompressed
	}

	encoded := buf.Bytes()
	if len(encoded) < 13 {
		return nil, errs.ErrDataCannotBeCompressed
	}

	out := make([]byte, 0, 4+5+len(encoded)-13)
	var lenBytes [4]byte
	binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(data))) //nolint:gosec
	out = append(out, lenBytes[:]...)
	out = append(out, encoded[:5]...)
	out = append(out, encoded[13:]...)

	return out, nil
}

// Decompress reverses Compress. It first reconstructs a standard
// alone-format header carrying the real uncompressed length; if that fails
// — which happens for a handful of malformed official files — it retries
// with the length field replaced by the alone format's "unknown size"
// sentinel (eight 0xFF bytes).
func (LZMACodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	if len(data) < minCompressedSize {
		return nil, errs.ErrDecompressionFailed
	}

	uncompressedLen := binary.LittleEndian.Uint32(data[0:4])
	props := data[4:9]
	payload := data[9:]

	if out, err := decodeAlone(props, sizeBytes(uint64(uncompressedLen)), payload); err == nil {
		return out, nil
	}

	out, err := decodeAlone(props, unknownSizeBytes(), payload)
	if err != nil {
		return nil, errs.ErrDecompressionFailed
	}

	return out, nil
}

func decodeAlone(props, size, payload []byte) ([]byte, error) {
	full := make([]byte, 0, len(props)+len(size)+len(payload))
	full = append(full, props...)
	full = append(full, size...)
	full = append(full, payload...)

	r, err := lzma.NewReader(bytes.NewReader(full))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func sizeBytes(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

func unknownSizeBytes() []byte {
	b := make([]byte, 8)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}
