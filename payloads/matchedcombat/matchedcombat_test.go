package matchedcombat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/extradata"
)

func TestMatchedCombatClassicRoundTrip(t *testing.T) {
	require := require.New(t)

	mc := &MatchedCombat{
		Version: 1,
		Sets: [][]CombatAnimation{
			{
				{Unknown1: 0, Unknown2: 0, Unknown3: 1, FilePath: "attacker.anim", MountFilePath: ""},
				{Unknown1: 1, Unknown2: 0, Unknown3: 1, FilePath: "victim.anim", MountFilePath: "horse.anim"},
			},
			{},
		},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, mc, nil))

	decoded, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.NoError(err)
	require.Equal(mc, decoded)
	require.Nil(decoded.Entries)
}

func TestMatchedCombatThreeKingdomsRoundTrip(t *testing.T) {
	require := require.New(t)

	mc := &MatchedCombat{
		Version: 1,
		Entries: []MatchedEntry{
			{
				ID: "duel_spear_vs_sword",
				Participants: []Participant{
					{
						EntityInfo: []EntityBundle{
							{
								Entities: []Entity{
									{
										Filters: []Filter{
											{Type: 2, Value: "spear", Equals: true},
										},
										AnimationFilename: "duel_a.anim",
										MetadataFilenames: []string{"duel_a.meta"},
										BlendInTime:       0.25,
										EquipmentDisplay:  1,
									},
								},
							},
						},
					},
				},
			},
		},
	}

	encodeED, err := extradata.NewEncode(extradata.WithEncodeGameIdentity(extradata.GameThreeKingdoms))
	require.NoError(err)
	decodeED, err := extradata.New(extradata.WithGameIdentity(extradata.GameThreeKingdoms))
	require.NoError(err)

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, mc, encodeED))

	decoded, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), decodeED)
	require.NoError(err)
	require.Equal(mc, decoded)
	require.Nil(decoded.Sets)
}

func TestMatchedCombatRejectsUnknownVersion(t *testing.T) {
	w := bytecursor.NewWriter()
	w.WriteU32(9)

	_, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.Error(t, err)
}
