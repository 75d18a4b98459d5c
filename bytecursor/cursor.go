// Package bytecursor provides little-endian primitive reads and writes over
// an in-memory byte buffer.
//
// Every wire format this module decodes or encodes (the Pack container, its
// two string indexes, and every typed payload stored inside it) is
// little-endian, so unlike a generic binary-encoding helper this package does
// not parametrize byte order: there is exactly one engine, matching what
// every one of these formats actually uses on disk.
package bytecursor

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/twtools/packlib/errs"
)

// Reader is a seekable little-endian reader over an in-memory byte slice.
//
// It never copies the backing slice; ReadBytes returns sub-slices of it.
// Callers that need to retain a slice past the lifetime of further reads
// (or past mutation of the source) must copy it themselves.
type Reader struct {
	data []byte
	pos  int64
}

// NewReader wraps data for little-endian reads starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int64 { return int64(len(r.data)) }

// Pos returns the current absolute read position.
func (r *Reader) Pos() int64 { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int64 { return r.Len() - r.pos }

// AtEnd reports whether the cursor has consumed the entire buffer.
func (r *Reader) AtEnd() bool { return r.pos >= r.Len() }

// Seek moves the absolute read position to pos. It does not validate pos
// against the buffer length; a subsequent read past the end reports
// ErrShortRead.
func (r *Reader) Seek(pos int64) { r.pos = pos }

// Skip advances the read position by n bytes without copying them.
func (r *Reader) Skip(n int64) { r.pos += n }

// ReadBytes returns the next n bytes as a sub-slice of the backing buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+int64(n) > r.Len() {
		return nil, errs.ErrShortRead
	}
	b := r.data[r.pos : r.pos+int64(n)]
	r.pos += int64(n)
	return b, nil
}

// ReadBoundedBytes reads n bytes, failing with ErrOversizedRead instead of
// ErrShortRead when n exceeds the caller-supplied bound. Used by payload
// decoders that must never read past a container-declared data window.
func (r *Reader) ReadBoundedBytes(n, bound int) ([]byte, error) {
	if n > bound {
		return nil, errs.ErrOversizedRead
	}
	return r.ReadBytes(n)
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err //nolint:gosec
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	return v != 0, err
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err //nolint:gosec
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err //nolint:gosec
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err //nolint:gosec
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadStringU8 reads a 1-byte length prefix followed by that many ASCII/UTF-8
// bytes.
func (r *Reader) ReadStringU8() (string, error) {
	n, err := r.ReadU8()
	if err != nil {
		return "", err
	}
	return r.readString(int(n))
}

// ReadStringU16 reads a 2-byte little-endian length prefix followed by that
// many UTF-8 bytes.
func (r *Reader) ReadStringU16() (string, error) {
	n, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	return r.readString(int(n))
}

// ReadStringU8Long reads a 1-byte length prefix giving a UTF-16 code-unit
// count, followed by that many UTF-16LE code units re-encoded to UTF-8. This
// is the "u8-long" variant: the prefix is one byte wide but counts 16-bit
// units, not bytes.
func (r *Reader) ReadStringU8Long() (string, error) {
	n, err := r.ReadU8()
	if err != nil {
		return "", err
	}
	return r.readUTF16(int(n))
}

// ReadStringU16Long reads a 2-byte little-endian length prefix giving a
// UTF-16 code-unit count, followed by that many UTF-16LE code units.
func (r *Reader) ReadStringU16Long() (string, error) {
	n, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	return r.readUTF16(int(n))
}

// ReadStringU32 reads a 4-byte little-endian length prefix followed by that
// many UTF-8 bytes.
func (r *Reader) ReadStringU32() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	return r.readString(int(n))
}

// ReadStringU32Long reads a 4-byte little-endian length prefix giving a
// UTF-16 code-unit count, followed by that many UTF-16LE code units.
func (r *Reader) ReadStringU32Long() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	return r.readUTF16(int(n))
}

// ReadOptionalString reads one boolean byte; if true, a length-prefixed
// (u16) string follows, otherwise the result is the empty string.
func (r *Reader) ReadOptionalString() (string, error) {
	present, err := r.ReadBool()
	if err != nil {
		return "", err
	}
	if !present {
		return "", nil
	}
	return r.ReadStringU16()
}

// ReadFixedUTF16 reads a fixed-width field of width code units, decodes it
// as UTF-16LE, and trims the trailing NUL padding.
func (r *Reader) ReadFixedUTF16(width int) (string, error) {
	b, err := r.ReadBytes(width * 2)
	if err != nil {
		return "", err
	}
	units := make([]uint16, width)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}
	// Trim at the first NUL; the remainder is zero padding.
	for i, u := range units {
		if u == 0 {
			units = units[:i]
			break
		}
	}
	// Reject unpaired surrogates instead of letting Decode map them to U+FFFD.
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xD800 && u < 0xDC00 && i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] < 0xE000 {
			i++
			continue
		}
		if u >= 0xD800 && u < 0xE000 {
			return "", errs.ErrInvalidUTF8
		}
	}
	runes := utf16.Decode(units)
	return string(runes), nil
}

// ReadCString reads bytes up to and including the next NUL and returns them
// as a string without the terminator. Used by the dependency index and
// (after obfuscation is reversed) file-index paths.
func (r *Reader) ReadCString() (string, error) {
	start := r.pos
	for {
		if r.pos >= r.Len() {
			return "", errs.ErrShortRead
		}
		if r.data[r.pos] == 0 {
			s := string(r.data[start:r.pos])
			r.pos++
			return s, nil
		}
		r.pos++
	}
}

func (r *Reader) readString(n int) (string, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8Valid(b) {
		return "", errs.ErrInvalidUTF8
	}
	return string(b), nil
}

func (r *Reader) readUTF16(units int) (string, error) {
	b, err := r.ReadBytes(units * 2)
	if err != nil {
		return "", err
	}
	u16 := make([]uint16, units)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}
	return string(utf16.Decode(u16)), nil
}

func utf8Valid(b []byte) bool {
	return utf8.Valid(b)
}
