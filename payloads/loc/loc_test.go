package loc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func TestLocRoundTrip(t *testing.T) {
	require := require.New(t)

	table := &Table{
		Version: 1,
		Entries: []Entry{
			{Key: "K", Text: "T", Tooltip: true},
			{Key: "multi\tline", Text: "has\nnewline", Tooltip: false},
		},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, table, nil))

	r := bytecursor.NewReader(w.Bytes())
	decoded, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.Equal(table, decoded)
}

func TestLocWireLayout(t *testing.T) {
	require := require.New(t)

	// One entry {key:"K", text:"T", tooltip:true}; strings are UTF-16LE
	// with a u16 code-unit-count prefix.
	raw := []byte{
		0xFF, 0xFE, 'L', 'O', 'C', 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x4B, 0x00,
		0x01, 0x00, 0x54, 0x00,
		0x01,
	}

	decoded, err := Codec{}.Decode(bytecursor.NewReader(raw), nil)
	require.NoError(err)
	require.Equal([]Entry{{Key: "K", Text: "T", Tooltip: true}}, decoded.Entries)

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, decoded, nil))
	require.Equal(raw, w.Bytes())
}

func TestLocRejectsBadMagic(t *testing.T) {
	w := bytecursor.NewWriter()
	w.WriteU16(byteOrderMark)
	w.WriteBytes([]byte("XXX"))
	r := bytecursor.NewReader(w.Bytes())
	_, err := Codec{}.Decode(r, nil)
	require.Error(t, err)
}
