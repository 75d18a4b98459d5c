package bytecursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderPrimitivesRoundTrip(t *testing.T) {
	require := require.New(t)

	w := NewWriter()
	w.WriteU8(0xAB)
	w.WriteI16(-7)
	w.WriteU32(0xDEADBEEF)
	w.WriteI64(-123456789)
	w.WriteF32(3.5)
	w.WriteBool(true)
	w.WriteStringU16("hello")
	w.WriteOptionalString("")
	w.WriteOptionalString("present")
	w.WriteCString("path/to/file")

	r := NewReader(w.Bytes())

	u8, err := r.ReadU8()
	require.NoError(err)
	require.Equal(uint8(0xAB), u8)

	i16, err := r.ReadI16()
	require.NoError(err)
	require.Equal(int16(-7), i16)

	u32, err := r.ReadU32()
	require.NoError(err)
	require.Equal(uint32(0xDEADBEEF), u32)

	i64, err := r.ReadI64()
	require.NoError(err)
	require.Equal(int64(-123456789), i64)

	f32, err := r.ReadF32()
	require.NoError(err)
	require.InDelta(float32(3.5), f32, 0.0001)

	b, err := r.ReadBool()
	require.NoError(err)
	require.True(b)

	s, err := r.ReadStringU16()
	require.NoError(err)
	require.Equal("hello", s)

	opt1, err := r.ReadOptionalString()
	require.NoError(err)
	require.Equal("", opt1)

	opt2, err := r.ReadOptionalString()
	require.NoError(err)
	require.Equal("present", opt2)

	cs, err := r.ReadCString()
	require.NoError(err)
	require.Equal("path/to/file", cs)

	require.True(r.AtEnd())
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	_, err := r.ReadU32()
	require.Error(t, err)
}

func TestReaderSeekAndSkip(t *testing.T) {
	require := require.New(t)
	r := NewReader([]byte{0, 1, 2, 3, 4, 5})
	r.Skip(2)
	require.Equal(int64(2), r.Pos())
	r.Seek(0)
	b, err := r.ReadBytes(3)
	require.NoError(err)
	require.Equal([]byte{0, 1, 2}, b)
}

func TestFixedUTF16RoundTrip(t *testing.T) {
	require := require.New(t)
	w := NewWriter()
	w.WriteFixedUTF16("tool", 8)
	r := NewReader(w.Bytes())
	s, err := r.ReadFixedUTF16(8)
	require.NoError(err)
	require.Equal("tool", s)
}

func TestReadBoundedBytesRejectsOversize(t *testing.T) {
	r := NewReader(make([]byte, 100))
	_, err := r.ReadBoundedBytes(50, 10)
	require.Error(t, err)
}
