// Package rawimage implements the image payload: a deliberately dumb
// codec for texture files (.png, .dds, .tga, .jpg, .gif) that stores
// their bytes untouched rather than parsing any image format. A real
// viewer or converter downstream is expected to read Data directly; this
// module's job stops at byte-exact round-trip, matching how the source
// reader treats these extensions as opaque blobs it forwards to an
// external image library rather than decodes itself. DDS-to-PNG
// conversion for in-app preview is a GUI-only concern this module has no
// surface for and does not replicate.
package rawimage

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// Image holds a texture file's raw bytes, unparsed.
type Image struct {
	Data []byte
}

func (Image) Kind() filetype.Kind { return filetype.Image }

// Codec implements codec.TypedFileCodec for image files.
type Codec struct{}

// Decode stores every remaining byte on the reader as-is.
func (Codec) Decode(r *bytecursor.Reader, _ *extradata.ExtraData) (*Image, error) {
	data, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}
	return &Image{Data: data}, nil
}

// Encode writes Data back out unchanged.
func (Codec) Encode(w *bytecursor.Writer, img *Image, _ *extradata.EncodeExtraData) error {
	w.WriteBytes(img.Data)
	return nil
}
