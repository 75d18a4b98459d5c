// Package video implements the two packed-video container flavors: the
// engine's custom "CAMV" layout and the standard "DKIF" (IVF) layout. Both
// share fourcc/width/height/frame-count/timebase header fields; only the
// frame table's placement and row width differ.
package video

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// Flavor distinguishes the two container layouts.
type Flavor int

const (
	FlavorUnknown  Flavor = iota
	FlavorCustom          // "CAMV"
	FlavorStandard        // "DKIF"
)

const (
	customMagic   = "CAMV"
	standardMagic = "DKIF"

	keyFrameMarker0 = 0x9D
	keyFrameMarker1 = 0x01
	keyFrameMarker2 = 0x2A
)

// Frame is one entry of the frame table: an offset and size into the
// trailing frame-data blob, plus whether it is a key frame.
type Frame struct {
	Offset   uint32
	Size     uint32
	KeyFrame bool
}

// Table is a decoded packed-video payload.
type Table struct {
	Flavor     Flavor
	Version    int16
	FourCC     string
	Width      uint16
	Height     uint16
	FrameCount uint32
	Timebase   uint32 // DKIF: timebase denominator. CAMV: derived from ms-per-frame.
	Frames     []Frame
	Payload    []byte
}

func (Table) Kind() filetype.Kind { return filetype.Video }

// Codec implements codec.TypedFileCodec for packed video.
type Codec struct{}

// Sniff classifies a video payload by its first 4 bytes.
func Sniff(magic []byte) Flavor {
	switch string(magic) {
	case standardMagic:
		return FlavorStandard
	case customMagic:
		return FlavorCustom
	default:
		return FlavorUnknown
	}
}

// Decode dispatches on the leading 4-byte magic.
func (Codec) Decode(r *bytecursor.Reader, ed *extradata.ExtraData) (*Table, error) {
	magic, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	switch Sniff(magic) {
	case FlavorStandard:
		return decodeStandard(r)
	case FlavorCustom:
		return decodeCustom(r)
	default:
		return nil, errs.ErrUnknownFileType
	}
}

func decodeStandard(r *bytecursor.Reader) (*Table, error) {
	version, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadU16(); err != nil { // header length
		return nil, err
	}
	fourcc, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	width, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	height, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	timebaseDen, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadU32(); err != nil { // timebase numerator
		return nil, err
	}
	frameCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadU32(); err != nil { // reserved
		return nil, err
	}

	t := &Table{
		Flavor:     FlavorStandard,
		Version:    version,
		FourCC:     string(fourcc),
		Width:      width,
		Height:     height,
		FrameCount: frameCount,
		Timebase:   timebaseDen,
	}

	var payload []byte
	frames := make([]Frame, 0, frameCount)
	offset := uint32(0)
	for i := uint32(0); i < frameCount; i++ {
		size, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadU64(); err != nil { // presentation timestamp
			return nil, err
		}
		data, err := r.ReadBytes(int(size)) //nolint:gosec
		if err != nil {
			return nil, err
		}
		frames = append(frames, Frame{Offset: offset, Size: size, KeyFrame: isKeyFrame(data)})
		payload = append(payload, data...)
		offset += size
	}
	t.Frames = frames
	t.Payload = payload
	return t, nil
}

// decodeCustom follows the CAMV layout: header, then a `table-offset` field
// naming where the frame table starts (absolute offset from the start of
// the payload, magic included), then frame payload bytes up to that offset, then the
// frame table itself. The table's row width (9 or 13 bytes) is not stored;
// it is inferred from the table's byte length against frameCount.
func decodeCustom(r *bytecursor.Reader) (*Table, error) {
	version, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadU16(); err != nil { // header length
		return nil, err
	}
	fourcc, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	width, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	height, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	msPerFrame, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadU32(); err != nil { // mystery field
		return nil, err
	}
	if _, err := r.ReadU32(); err != nil { // frame count copy
		return nil, err
	}
	tableOffset, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	frameCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadU32(); err != nil { // largest frame size
		return nil, err
	}

	headerEnd := r.Pos()
	payloadLen := int64(tableOffset) - headerEnd
	if payloadLen < 0 {
		return nil, &errs.PayloadCorrupt{TypeName: "video", Detail: "frame-table offset precedes payload start"}
	}
	payload, err := r.ReadBytes(int(payloadLen))
	if err != nil {
		return nil, err
	}

	tail, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}
	rowSize, err := frameRowSize(len(tail), frameCount)
	if err != nil {
		return nil, err
	}

	tr := bytecursor.NewReader(tail)
	frames := make([]Frame, 0, frameCount)
	for i := uint32(0); i < frameCount; i++ {
		offset, err := tr.ReadU32()
		if err != nil {
			return nil, err
		}
		size, err := tr.ReadU32()
		if err != nil {
			return nil, err
		}
		if rowSize == 13 {
			if _, err := tr.ReadU32(); err != nil { // unknown field seen in some files
				return nil, err
			}
		}
		flag, err := tr.ReadU8()
		if err != nil {
			return nil, err
		}
		frames = append(frames, Frame{Offset: offset, Size: size, KeyFrame: flag != 0})
	}

	return &Table{
		Flavor:     FlavorCustom,
		Version:    version,
		FourCC:     string(fourcc),
		Width:      width,
		Height:     height,
		FrameCount: frameCount,
		Timebase:   uint32(1000 / msPerFrame), //nolint:gosec
		Frames:     frames,
		Payload:    payload,
	}, nil
}

// frameRowSize detects whether the custom-flavor frame table uses 9-byte or
// 13-byte rows: (tail_size % 13 == 0) and (tail_size/13 == frame_count)
// selects the 13-byte layout, a tail of exactly 9*frame_count bytes selects
// 9-byte rows, and a tail matching neither is reported as PayloadCorrupt.
func frameRowSize(tailSize int, frameCount uint32) (int, error) {
	if frameCount == 0 {
		return 9, nil
	}
	if tailSize%13 == 0 && uint32(tailSize/13) == frameCount { //nolint:gosec
		return 13, nil
	}
	if tailSize%9 == 0 && uint32(tailSize/9) == frameCount { //nolint:gosec
		return 9, nil
	}
	return 0, &errs.PayloadCorrupt{TypeName: "video", Detail: "cannot determine frame-table row width"}
}

// isKeyFrame reports whether payload's bytes 3..6 match the VP8 key-frame
// marker 9D 01 2A.
func isKeyFrame(payload []byte) bool {
	if len(payload) < 6 {
		return false
	}
	return payload[3] == keyFrameMarker0 && payload[4] == keyFrameMarker1 && payload[5] == keyFrameMarker2
}

// Encode mirrors Decode for the table's recorded Flavor.
func (Codec) Encode(w *bytecursor.Writer, t *Table, ed *extradata.EncodeExtraData) error {
	switch t.Flavor {
	case FlavorStandard:
		return encodeStandard(w, t)
	case FlavorCustom:
		return encodeCustom(w, t)
	default:
		return &errs.PayloadCorrupt{TypeName: "video", Detail: "unknown flavor"}
	}
}

func encodeStandard(w *bytecursor.Writer, t *Table) error {
	w.WriteBytes([]byte(standardMagic))
	w.WriteI16(t.Version)
	w.WriteU16(32)
	w.WriteBytes(fourCCBytes(t.FourCC))
	w.WriteU16(t.Width)
	w.WriteU16(t.Height)
	w.WriteU32(t.Timebase)
	w.WriteU32(1)
	w.WriteU32(uint32(len(t.Frames))) //nolint:gosec
	w.WriteU32(0)

	off := 0
	for _, f := range t.Frames {
		end := off + int(f.Size) //nolint:gosec
		if end > len(t.Payload) {
			end = len(t.Payload)
		}
		w.WriteU32(f.Size)
		w.WriteU64(0)
		w.WriteBytes(t.Payload[off:end])
		off = end
	}
	return nil
}

func encodeCustom(w *bytecursor.Writer, t *Table) error {
	const headerLen = 0x28

	tableRowSize := 9
	msPerFrame := float32(0)
	if t.Timebase != 0 {
		msPerFrame = 1000 / float32(t.Timebase)
	}
	largest := uint32(0)
	for _, f := range t.Frames {
		if f.Size > largest {
			largest = f.Size
		}
	}

	w.WriteBytes([]byte(customMagic))
	w.WriteI16(t.Version)
	w.WriteU16(headerLen)
	w.WriteBytes(fourCCBytes(t.FourCC))
	w.WriteU16(t.Width)
	w.WriteU16(t.Height)
	w.WriteF32(msPerFrame)
	w.WriteU32(1)
	w.WriteU32(uint32(len(t.Frames))) //nolint:gosec
	w.WriteU32(uint32(headerLen) + uint32(len(t.Payload)))
	w.WriteU32(uint32(len(t.Frames))) //nolint:gosec
	w.WriteU32(largest)

	w.WriteBytes(t.Payload)
	for _, f := range t.Frames {
		w.WriteU32(f.Offset)
		w.WriteU32(f.Size)
		if tableRowSize == 13 {
			w.WriteU32(0)
		}
		if f.KeyFrame {
			w.WriteU8(1)
		} else {
			w.WriteU8(0)
		}
	}
	return nil
}

func fourCCBytes(s string) []byte {
	b := []byte(s)
	for len(b) < 4 {
		b = append(b, 0)
	}
	return b[:4]
}
