package rawimage

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/codec"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
)

// TypedCodec adapts Codec to codec.TypedFileCodec for registry use.
type TypedCodec struct{ Codec Codec }

var _ codec.TypedFileCodec = TypedCodec{}

func (tc TypedCodec) Decode(r *bytecursor.Reader, ed *extradata.ExtraData) (codec.Payload, error) {
	return tc.Codec.Decode(r, ed)
}

func (tc TypedCodec) Encode(w *bytecursor.Writer, p codec.Payload, ed *extradata.EncodeExtraData) error {
	v, ok := p.(*Image)
	if !ok {
		return &errs.PayloadCorrupt{TypeName: "rawimage", Detail: "encode called with non-image payload"}
	}
	return tc.Codec.Encode(w, v, ed)
}
