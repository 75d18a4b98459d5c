package compress

// Compressor compresses a byte payload for storage inside a Pack.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec is the pairing every Pack-payload compressor/decompressor implements.
type Codec interface {
	Compressor
	Decompressor
}

// NoOpCodec passes data through unchanged. It exists for callers (tests,
// disable-compression ExtraData flags) that want the Codec interface without
// the LZMA codec's overhead, mirroring the escape hatch every codec menu in
// the pack ecosystem offers.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

func (NoOpCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
