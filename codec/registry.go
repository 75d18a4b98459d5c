package codec

import (
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/filetype"
)

// Registry maps a guessed filetype.Kind to the TypedFileCodec that owns it.
// PackContainer consults the registry once per file, the moment a lazy
// payload is first materialized.
type Registry struct {
	codecs map[filetype.Kind]TypedFileCodec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[filetype.Kind]TypedFileCodec)}
}

// Register binds a codec to a kind, replacing any existing binding.
func (r *Registry) Register(kind filetype.Kind, c TypedFileCodec) {
	r.codecs[kind] = c
}

// Lookup resolves kind to its codec, or errs.ErrUnknownFileType.
func (r *Registry) Lookup(kind filetype.Kind) (TypedFileCodec, error) {
	c, ok := r.codecs[kind]
	if !ok {
		return nil, errs.ErrUnknownFileType
	}
	return c, nil
}
