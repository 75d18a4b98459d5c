package portraitsettings

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func TestPortraitSettingsRoundTrip(t *testing.T) {
	require := require.New(t)

	ps := &PortraitSettings{
		Version: 1,
		Entries: []Entry{
			{
				ID:         "general_zhang",
				HeadCamera: CameraSetting{Distance: 1.5, Theta: 90, Phi: -12.5, FOV: 35},
				Variants: []Variant{
					{
						Filename:      "zhang_01",
						FileDiffuse:   "zhang_01_diffuse.dds",
						FileMask1:     "zhang_01_mask1.dds",
						Season:        "summer",
						Level:         2,
						Age:           40,
						FactionLeader: true,
					},
				},
			},
			{
				ID:         "spy_female_01",
				HeadCamera: CameraSetting{Distance: 1.1, FOV: 30},
				Variants:   []Variant{},
			},
		},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, ps, nil))

	decoded, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.NoError(err)
	require.Equal(ps, decoded)
}

func TestPortraitSettingsRejectsUnknownVersion(t *testing.T) {
	w := bytecursor.NewWriter()
	w.WriteU32(4)
	w.WriteU32(0)

	_, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.Error(t, err)
}
