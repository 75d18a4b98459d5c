package animstable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
)

func TestAnimsTableRoundTrip(t *testing.T) {
	require := require.New(t)

	at := &AnimsTable{
		Version: 2,
		Entries: []Entry{
			{
				TableName:      "sword_infantry",
				SkeletonType:   "humanoid01",
				MountTableName: "",
				Fragments: []Fragment{
					{Name: "attack_01", Unknown5: 0},
					{Name: "idle_01", Unknown5: 3},
				},
				Unknown6: true,
			},
			{
				TableName:      "cavalry_lance",
				SkeletonType:   "humanoid01",
				MountTableName: "horse01",
				Fragments:      []Fragment{},
				Unknown7:       true,
			},
		},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, at, nil))

	decoded, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.NoError(err)
	require.Equal(at, decoded)
}

func TestAnimsTableRejectsUnknownVersion(t *testing.T) {
	w := bytecursor.NewWriter()
	w.WriteU32(5)
	w.WriteU32(0)

	_, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), nil)
	require.Error(t, err)

	var uv *errs.UnsupportedVersion
	require.ErrorAs(t, err, &uv)
	require.EqualValues(t, 5, uv.Version)
}
