package bytecursor

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// Writer is an append-only little-endian byte sink.
//
// Every wire format this module writes (Pack header/index/payload concat,
// and every typed payload's encode path) is produced in a single forward
// pass — nothing is ever backpatched — so unlike Reader, Writer never seeks.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated output. The returned slice aliases the
// Writer's internal buffer and must not be retained across further writes.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int64 { return int64(w.buf.Len()) }

func (w *Writer) WriteBytes(b []byte) { w.buf.Write(b) }

func (w *Writer) WriteU8(v uint8) { w.buf.WriteByte(v) }
func (w *Writer) WriteI8(v int8)  { w.buf.WriteByte(uint8(v)) } //nolint:gosec
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteI16(v int16) { w.WriteU16(uint16(v)) } //nolint:gosec

func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteI32(v int32) { w.WriteU32(uint32(v)) } //nolint:gosec

func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) } //nolint:gosec

func (w *Writer) WriteF32(v float32) { w.WriteU32(math.Float32bits(v)) }
func (w *Writer) WriteF64(v float64) { w.WriteU64(math.Float64bits(v)) }

// WriteStringU8 writes a 1-byte length prefix followed by s's UTF-8 bytes.
// Panics if len(s) exceeds 255; callers are expected to validate ahead of
// time since this is always a programmer error, never attacker input.
func (w *Writer) WriteStringU8(s string) {
	if len(s) > 0xFF {
		panic("bytecursor: string too long for u8 length prefix")
	}
	w.WriteU8(uint8(len(s))) //nolint:gosec
	w.buf.WriteString(s)
}

// WriteStringU16 writes a 2-byte little-endian length prefix followed by
// s's UTF-8 bytes.
func (w *Writer) WriteStringU16(s string) {
	if len(s) > 0xFFFF {
		panic("bytecursor: string too long for u16 length prefix")
	}
	w.WriteU16(uint16(len(s))) //nolint:gosec
	w.buf.WriteString(s)
}

// WriteStringU8Long writes a 1-byte count of UTF-16 code units followed by
// s re-encoded as UTF-16LE.
func (w *Writer) WriteStringU8Long(s string) {
	units := utf16.Encode([]rune(s))
	if len(units) > 0xFF {
		panic("bytecursor: string too long for u8-long length prefix")
	}
	w.WriteU8(uint8(len(units))) //nolint:gosec
	w.writeUTF16(units)
}

// WriteStringU16Long writes a 2-byte count of UTF-16 code units followed by
// s re-encoded as UTF-16LE.
func (w *Writer) WriteStringU16Long(s string) {
	units := utf16.Encode([]rune(s))
	if len(units) > 0xFFFF {
		panic("bytecursor: string too long for u16-long length prefix")
	}
	w.WriteU16(uint16(len(units))) //nolint:gosec
	w.writeUTF16(units)
}

// WriteStringU32 writes a 4-byte little-endian length prefix followed by
// s's UTF-8 bytes.
func (w *Writer) WriteStringU32(s string) {
	w.WriteU32(uint32(len(s))) //nolint:gosec
	w.buf.WriteString(s)
}

// WriteStringU32Long writes a 4-byte count of UTF-16 code units followed by
// s re-encoded as UTF-16LE.
func (w *Writer) WriteStringU32Long(s string) {
	units := utf16.Encode([]rune(s))
	w.WriteU32(uint32(len(units))) //nolint:gosec
	w.writeUTF16(units)
}

// WriteOptionalString writes a presence boolean followed, if s is non-empty,
// by a length-prefixed (u16) string.
func (w *Writer) WriteOptionalString(s string) {
	w.WriteBool(s != "")
	if s != "" {
		w.WriteStringU16(s)
	}
}

// WriteFixedUTF16 writes s as UTF-16LE zero-padded (or truncated) to exactly
// width code units.
func (w *Writer) WriteFixedUTF16(s string, width int) {
	units := utf16.Encode([]rune(s))
	if len(units) > width {
		units = units[:width]
	}
	w.writeUTF16(units)
	for i := len(units); i < width; i++ {
		w.WriteU16(0)
	}
}

// WriteCString writes s followed by a single NUL terminator.
func (w *Writer) WriteCString(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

func (w *Writer) writeUTF16(units []uint16) {
	for _, u := range units {
		w.WriteU16(u)
	}
}
