package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
)

func TestCollisionV0RoundTrip(t *testing.T) {
	require := require.New(t)

	c := &Collision{
		Version: 0,
		Meshes: []Mesh{{
			Name: "hull_a",
			UK1:  1,
			UK2:  2,
			Vertices: []Point3d{
				{X: 0, Y: 0, Z: 0},
				{X: 1, Y: 0, Z: 0},
				{X: 0, Y: 1, Z: 0},
			},
			Triangles: []CollisionTriangle{{
				FaceIndex: 0,
				Vertex1:   0,
				Vertex2:   1,
				Vertex3:   2,
				Zero1:     0,
				Zero2:     0,
				Zero3:     0,
				Zero4:     0,
			}},
		}},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, c, nil))

	r := bytecursor.NewReader(w.Bytes())
	got, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.True(r.AtEnd())
	require.Equal(c, got)
}

func TestCollisionV20RoundTripMultipleMeshes(t *testing.T) {
	require := require.New(t)

	c := &Collision{
		Version:     20,
		BoundingBox: Cube{Min: Point3d{X: -1, Y: -1, Z: -1}, Max: Point3d{X: 1, Y: 1, Z: 1}},
		Meshes: []Mesh{
			{
				Name:     "tower_base",
				UK1:      5,
				UK2:      6,
				Vertices: []Point3d{{X: 0, Y: 0, Z: 0}},
				Triangles: []CollisionTriangle{
					{FaceIndex: 1, Vertex1: 0, Vertex2: 0, Vertex3: 0},
				},
				TrailingZero: 0,
				BoundingBox:  Cube{Min: Point3d{X: -2, Y: -2, Z: -2}, Max: Point3d{X: 2, Y: 2, Z: 2}},
			},
			{
				Name:         "tower_roof",
				Vertices:     []Point3d{},
				Triangles:    []CollisionTriangle{},
				TrailingZero: 0,
				BoundingBox:  Cube{},
			},
		},
	}

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, c, nil))

	r := bytecursor.NewReader(w.Bytes())
	got, err := Codec{}.Decode(r, nil)
	require.NoError(err)
	require.True(r.AtEnd())
	require.Equal(c, got)
}

func TestCollisionUnsupportedVersion(t *testing.T) {
	require := require.New(t)

	w := bytecursor.NewWriter()
	w.WriteU32(7)
	r := bytecursor.NewReader(w.Bytes())

	_, err := Codec{}.Decode(r, nil)
	require.Error(err)
}
