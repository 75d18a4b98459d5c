package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func minimal() *SceneGraph {
	return &SceneGraph{Version: 27}
}

func TestRoundTripEmpty(t *testing.T) {
	require := require.New(t)

	g := minimal()
	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, g, nil))

	r := bytecursor.NewReader(w.Bytes())
	decoded, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.True(r.AtEnd())
	require.Equal(g, decoded)
}

func TestRoundTripPopulated(t *testing.T) {
	require := require.New(t)

	g := minimal()
	g.BattlefieldBuildings = []Building{
		{
			UID:         42,
			BuildingKey: "building_onscreen",
			Properties:  BuildingProperties{StartingDamageUnary: 0.5, Indestructible: true},
			Transform:   Transform3x4{M: [3][4]float32{{1, 0, 0, 10}, {0, 1, 0, 20}, {0, 0, 1, 30}}},
			HeightMode:  "BHM_TERRAIN",
		},
	}
	g.GoOutlines = []Outline2d{{Points: []Point2d{{X: 1, Y: 2}, {X: 3, Y: 4}}}}
	g.LightProbes = []LightProbe{
		{Version: 3, Position: Point3d{X: 1, Y: 2, Z: 3}, OuterRadius: 5, InnerRadius: 2, IsPrimary: true, HeightMode: "BHM_NONE"},
	}
	g.ParticleEmitters = []ParticleEmitter{
		{
			Version:      9,
			Key:          "fx_smoke",
			Transform:    Transform3x4{},
			EmissionRate: 2.5,
			InstanceName: "smoke_01",
			Flags:        Flags{Version: 3, Spring: true, Winter: true},
			HeightMode:   "BHM_NONE",
			PDLCMask:     0xFF,
			ParentID:     -1,
		},
	}
	g.AIHints = []string{"hint_a", "hint_b"}
	g.PlayableArea = Rectangle{X: -100, Y: -100, Width: 200, Height: 200}
	g.SpotLights = []SpotLight{
		{Version: 7, Position: Point3d{X: 1}, End: Quaternion{W: 1}, Length: 10, Colour: Colour{R: 1, G: 1, B: 1}, Gobo: "gobo01", HeightMode: "BHM_NONE"},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, g, nil))

	r := bytecursor.NewReader(w.Bytes())
	decoded, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.True(r.AtEnd())
	require.Equal(g, decoded)
}

func TestUnsupportedTopLevelVersion(t *testing.T) {
	require := require.New(t)
	w := bytecursor.NewWriter()
	w.WriteU32(99)
	r := bytecursor.NewReader(w.Bytes())
	_, err := Codec{}.Decode(r, nil)
	require.Error(err)
}

func TestParticleEmitterUnsupportedVersion(t *testing.T) {
	require := require.New(t)
	_, err := decodeParticleEmitter(bytecursor.NewReader([]byte{5, 0}))
	require.Error(err)
}

func TestTreeListReferenceOddEncoding(t *testing.T) {
	require := require.New(t)
	g := minimal()
	g.TreeListReferenceCount = 7
	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, g, nil))

	r := bytecursor.NewReader(w.Bytes())
	decoded, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.Equal(uint32(7), decoded.TreeListReferenceCount)
}
