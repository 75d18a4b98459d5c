package codec

import "github.com/twtools/packlib/errs"

// VersionTable dispatches a versioned payload to its per-version
// decode/encode pair, the shared mechanism behind every "deeply nested
// versioned type dispatched from an integer version field" payload. typeName is used only for error messages.
type VersionTable struct {
	TypeName string
	Decoders map[int64]VersionDecodeFunc
	Encoders map[int64]VersionEncodeFunc
}

// NewVersionTable returns an empty dispatch table for typeName.
func NewVersionTable(typeName string) *VersionTable {
	return &VersionTable{
		TypeName: typeName,
		Decoders: make(map[int64]VersionDecodeFunc),
		Encoders: make(map[int64]VersionEncodeFunc),
	}
}

// Register adds the decode/encode pair for one version.
func (vt *VersionTable) Register(version int64, dec VersionDecodeFunc, enc VersionEncodeFunc) {
	vt.Decoders[version] = dec
	vt.Encoders[version] = enc
}

// Decoder looks up the decode function for version, or
// errs.UnsupportedVersion carrying the type name and the offending version.
func (vt *VersionTable) Decoder(version int64) (VersionDecodeFunc, error) {
	fn, ok := vt.Decoders[version]
	if !ok {
		return nil, &errs.UnsupportedVersion{TypeName: vt.TypeName, Version: version}
	}
	return fn, nil
}

// Encoder looks up the encode function for version.
func (vt *VersionTable) Encoder(version int64) (VersionEncodeFunc, error) {
	fn, ok := vt.Encoders[version]
	if !ok {
		return nil, &errs.UnsupportedVersion{TypeName: vt.TypeName, Version: version}
	}
	return fn, nil
}
