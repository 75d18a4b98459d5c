package soundbank

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func buildTestBank(t *testing.T) []byte {
	t.Helper()

	w := bytecursor.NewWriter()

	// BKHD: 5 u32 fields plus 4 bytes of padding.
	w.WriteBytes([]byte("BKHD"))
	w.WriteU32(24)
	w.WriteU32(0x88 | versionVendorBit)
	w.WriteU32(12345)
	w.WriteU32(uint32(LanguageEnglishUK))
	w.WriteU32(0)
	w.WriteU32(777)
	w.WriteBytes([]byte{0, 0, 0, 0})

	// HIRC: one settings object, one event, one raw action.
	hirc := bytecursor.NewWriter()
	hirc.WriteU32(3)

	hirc.WriteU8(uint8(ObjectSettings))
	hirc.WriteU32(4 + 1 + 2*5)
	hirc.WriteU32(100)
	hirc.WriteU8(2)
	hirc.WriteU8(1)
	hirc.WriteF32(0.5)
	hirc.WriteU8(3)
	hirc.WriteF32(-2)

	hirc.WriteU8(uint8(ObjectEvent))
	hirc.WriteU32(4 + 4 + 4)
	hirc.WriteU32(200)
	hirc.WriteU32(1)
	hirc.WriteU32(300)

	hirc.WriteU8(uint8(ObjectEventAction))
	hirc.WriteU32(4 + 3)
	hirc.WriteU32(300)
	hirc.WriteBytes([]byte{0xAA, 0xBB, 0xCC})

	w.WriteBytes([]byte("HIRC"))
	w.WriteU32(uint32(hirc.Len()))
	w.WriteBytes(hirc.Bytes())

	return append([]byte(nil), w.Bytes()...)
}

func TestSoundBankRoundTrip(t *testing.T) {
	require := require.New(t)

	raw := buildTestBank(t)
	bank, err := Codec{}.Decode(bytecursor.NewReader(raw), nil)
	require.NoError(err)

	require.NotNil(bank.Header)
	require.Equal(uint32(0x88), bank.Header.Version)
	require.Equal(uint32(12345), bank.Header.ID)
	require.Equal(LanguageEnglishUK, bank.Header.Language)
	require.Equal(uint32(777), bank.Header.ProjectID)
	require.Len(bank.Header.Padding, 4)

	require.NotNil(bank.Hierarchy)
	require.Len(bank.Hierarchy.Objects, 3)

	settings, ok := bank.Hierarchy.Objects[0].Data.(SettingsData)
	require.True(ok)
	require.Equal([]Setting{{Index: 1, Value: 0.5}, {Index: 3, Value: -2}}, settings.Settings)

	event, ok := bank.Hierarchy.Objects[1].Data.(EventData)
	require.True(ok)
	require.Equal([]uint32{300}, event.Values)

	raw2, ok := bank.Hierarchy.Objects[2].Data.(RawData)
	require.True(ok)
	require.Equal([]byte{0xAA, 0xBB, 0xCC}, raw2.Bytes)

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, bank, nil))
	require.Equal(raw, w.Bytes())
}

func TestSoundBankRejectsUnknownSection(t *testing.T) {
	w := bytecursor.NewWriter()
	w.WriteBytes([]byte("XXXX"))
	w.WriteU32(0)

	_, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.Error(t, err)
}

func TestSoundBankRejectsObjectSizeMismatch(t *testing.T) {
	w := bytecursor.NewWriter()
	hirc := bytecursor.NewWriter()
	hirc.WriteU32(1)
	hirc.WriteU8(uint8(ObjectEvent))
	hirc.WriteU32(4 + 4 + 8) // declares more bytes than the event body uses
	hirc.WriteU32(1)
	hirc.WriteU32(1)
	hirc.WriteU32(2)
	hirc.WriteU32(3)

	w.WriteBytes([]byte("HIRC"))
	w.WriteU32(uint32(hirc.Len()))
	w.WriteBytes(hirc.Bytes())

	_, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.Error(t, err)
}
