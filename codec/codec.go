// Package codec defines the decode/encode capability every versioned
// payload type implements, and the registry PackContainer consults when
// materializing a lazily-loaded file for the first time.
package codec

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// Payload is the decoded, in-memory form of one typed file. Concrete
// payload packages (payloads/loc, payloads/dbtable,...) implement it.
type Payload interface {
	// Kind reports which registry entry decoded this payload.
	Kind() filetype.Kind
}

// TypedFileCodec is the decode/encode capability every payload type
// exposes. Decode discipline: read a leading version marker
// when the type is versioned, dispatch to the matching sub-codec, and
// verify the cursor lands exactly on the payload's declared end.
type TypedFileCodec interface {
	Decode(r *bytecursor.Reader, ed *extradata.ExtraData) (Payload, error)
	Encode(w *bytecursor.Writer, p Payload, ed *extradata.EncodeExtraData) error
}

// VersionDecodeFunc decodes one version's wire layout into a Payload.
type VersionDecodeFunc func(r *bytecursor.Reader, ed *extradata.ExtraData) (Payload, error)

// VersionEncodeFunc encodes a Payload back to one version's wire layout.
type VersionEncodeFunc func(w *bytecursor.Writer, p Payload, ed *extradata.EncodeExtraData) error
