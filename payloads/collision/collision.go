// Package collision implements the 3D collision-mesh payload: the
// per-model navmesh/hitbox geometry used for melee collision and siege
// pathing, stored as one or more named triangle meshes plus their
// bounding boxes.
//
// Two per-mesh wire layouts exist, keyed by a leading version integer:
// 0 (no trailing zero marker or bounding box per mesh) and 20 (adds
// both, plus a file-level bounding box ahead of the mesh list). Any
// other version fails with errs.UnsupportedVersion rather than guess at
// an unknown layout.
package collision

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// Point3d is a plain XYZ float triple, the vertex and bounding-box corner
// shape this payload shares with every other binary geometry format in
// this module.
type Point3d struct{ X, Y, Z float32 }

// Cube is an axis-aligned bounding box, min corner then max corner.
type Cube struct{ Min, Max Point3d }

// CollisionTriangle is one face of a collision mesh: the triangle's own
// three vertex indices plus the adjacency data (shared edges and the
// triangle across each one) the engine's pathing code walks at runtime.
// Every field here is read and written in this exact order; none of the
// "zero"/"padding" names are known to carry meaning beyond being reserved.
type CollisionTriangle struct {
	FaceIndex        int32
	Padding          int8
	Vertex1          int32
	Vertex2          int32
	Vertex3          int32
	Edge1Vertex1     int32
	Edge1Vertex2     int32
	FaceIndex1       int32
	Zero1            int32
	AcrossFaceIndex1 int32
	Edge2Vertex1     int32
	Edge2Vertex2     int32
	FaceIndex2       int32
	Zero2            int32
	AcrossFaceIndex2 int32
	Edge3Vertex1     int32
	Edge3Vertex2     int32
	FaceIndex3       int32
	Zero3            int32
	AcrossFaceIndex3 int32
	Zero4            int32
}

// Mesh is one named collision mesh: a vertex cloud and the triangles
// connecting them. BoundingBox and TrailingZero are only populated by the
// v20 wire layout; v0 leaves them zero.
type Mesh struct {
	Name         string
	UK1          int32
	UK2          int32
	Vertices     []Point3d
	Triangles    []CollisionTriangle
	TrailingZero int32
	BoundingBox  Cube
}

// Collision is the decoded payload: every mesh carried by one file, plus
// the file-level bounding box the v20 layout stores ahead of them.
type Collision struct {
	Version     uint32
	BoundingBox Cube
	Meshes      []Mesh
}

func (Collision) Kind() filetype.Kind { return filetype.Collision }

// Codec implements codec.TypedFileCodec for collision-mesh files.
type Codec struct{}

func decodePoint3d(r *bytecursor.Reader) (Point3d, error) {
	x, err := r.ReadF32()
	if err != nil {
		return Point3d{}, err
	}
	y, err := r.ReadF32()
	if err != nil {
		return Point3d{}, err
	}
	z, err := r.ReadF32()
	if err != nil {
		return Point3d{}, err
	}
	return Point3d{X: x, Y: y, Z: z}, nil
}

func (p Point3d) encode(w *bytecursor.Writer) {
	w.WriteF32(p.X)
	w.WriteF32(p.Y)
	w.WriteF32(p.Z)
}

func decodeCube(r *bytecursor.Reader) (Cube, error) {
	min, err := decodePoint3d(r)
	if err != nil {
		return Cube{}, err
	}
	max, err := decodePoint3d(r)
	if err != nil {
		return Cube{}, err
	}
	return Cube{Min: min, Max: max}, nil
}

func (c Cube) encode(w *bytecursor.Writer) {
	c.Min.encode(w)
	c.Max.encode(w)
}

func decodeTriangle(r *bytecursor.Reader) (CollisionTriangle, error) {
	var t CollisionTriangle
	face, err := r.ReadI32()
	if err != nil {
		return t, err
	}
	t.FaceIndex = face
	pad, err := r.ReadI8()
	if err != nil {
		return t, err
	}
	t.Padding = pad
	for _, dst := range []*int32{
		&t.Vertex1, &t.Vertex2, &t.Vertex3,
		&t.Edge1Vertex1, &t.Edge1Vertex2, &t.FaceIndex1, &t.Zero1, &t.AcrossFaceIndex1,
		&t.Edge2Vertex1, &t.Edge2Vertex2, &t.FaceIndex2, &t.Zero2, &t.AcrossFaceIndex2,
		&t.Edge3Vertex1, &t.Edge3Vertex2, &t.FaceIndex3, &t.Zero3, &t.AcrossFaceIndex3,
		&t.Zero4,
	} {
		v, err := r.ReadI32()
		if err != nil {
			return t, err
		}
		*dst = v
	}
	return t, nil
}

func (t CollisionTriangle) encode(w *bytecursor.Writer) {
	w.WriteI32(t.FaceIndex)
	w.WriteI8(t.Padding)
	for _, v := range []int32{
		t.Vertex1, t.Vertex2, t.Vertex3,
		t.Edge1Vertex1, t.Edge1Vertex2, t.FaceIndex1, t.Zero1, t.AcrossFaceIndex1,
		t.Edge2Vertex1, t.Edge2Vertex2, t.FaceIndex2, t.Zero2, t.AcrossFaceIndex2,
		t.Edge3Vertex1, t.Edge3Vertex2, t.FaceIndex3, t.Zero3, t.AcrossFaceIndex3,
		t.Zero4,
	} {
		w.WriteI32(v)
	}
}

func decodeMeshCommon(r *bytecursor.Reader, name string) (Mesh, error) {
	m := Mesh{Name: name}
	uk1, err := r.ReadI32()
	if err != nil {
		return m, err
	}
	m.UK1 = uk1
	uk2, err := r.ReadI32()
	if err != nil {
		return m, err
	}
	m.UK2 = uk2

	vertexCount, err := r.ReadU32()
	if err != nil {
		return m, err
	}
	m.Vertices = make([]Point3d, 0, vertexCount)
	for i := uint32(0); i < vertexCount; i++ {
		v, err := decodePoint3d(r)
		if err != nil {
			return m, err
		}
		m.Vertices = append(m.Vertices, v)
	}

	triCount, err := r.ReadU32()
	if err != nil {
		return m, err
	}
	m.Triangles = make([]CollisionTriangle, 0, triCount)
	for i := uint32(0); i < triCount; i++ {
		t, err := decodeTriangle(r)
		if err != nil {
			return m, err
		}
		m.Triangles = append(m.Triangles, t)
	}
	return m, nil
}

func (m Mesh) encodeCommon(w *bytecursor.Writer) {
	w.WriteI32(m.UK1)
	w.WriteI32(m.UK2)
	w.WriteU32(uint32(len(m.Vertices)))
	for _, v := range m.Vertices {
		v.encode(w)
	}
	w.WriteU32(uint32(len(m.Triangles)))
	for _, t := range m.Triangles {
		t.encode(w)
	}
}

// Decode reads a collision-mesh payload. Version 0 is a single mesh
// preceded by its u16-length-prefixed name; version 20 is a file-level bounding box
// followed by a name-prefixed-sequence of meshes, each closed by a
// trailing zero and its own bounding box, read until the source is
// exhausted.
func (Codec) Decode(r *bytecursor.Reader, _ *extradata.ExtraData) (*Collision, error) {
	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	c := &Collision{Version: version}
	switch version {
	case 0:
		name, err := r.ReadStringU16()
		if err != nil {
			return nil, err
		}
		m, err := decodeMeshCommon(r, name)
		if err != nil {
			return nil, err
		}
		c.Meshes = append(c.Meshes, m)
		return c, nil

	case 20:
		bb, err := decodeCube(r)
		if err != nil {
			return nil, err
		}
		c.BoundingBox = bb
		for !r.AtEnd() {
			name, err := r.ReadStringU8()
			if err != nil {
				return nil, err
			}
			m, err := decodeMeshCommon(r, name)
			if err != nil {
				return nil, err
			}
			zero, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			m.TrailingZero = zero
			box, err := decodeCube(r)
			if err != nil {
				return nil, err
			}
			m.BoundingBox = box
			c.Meshes = append(c.Meshes, m)
		}
		return c, nil

	default:
		return nil, &errs.UnsupportedVersion{TypeName: "collision.Collision", Version: int64(version)}
	}
}

// Encode writes c back out in its own Version's wire layout.
func (Codec) Encode(w *bytecursor.Writer, c *Collision, _ *extradata.EncodeExtraData) error {
	w.WriteU32(c.Version)
	switch c.Version {
	case 0:
		if len(c.Meshes) != 1 {
			return &errs.PayloadCorrupt{TypeName: "collision.Collision", Detail: "version 0 carries exactly one mesh"}
		}
		m := c.Meshes[0]
		w.WriteStringU16(m.Name)
		m.encodeCommon(w)
		return nil

	case 20:
		c.BoundingBox.encode(w)
		for _, m := range c.Meshes {
			w.WriteStringU8(m.Name)
			m.encodeCommon(w)
			w.WriteI32(m.TrailingZero)
			m.BoundingBox.encode(w)
		}
		return nil

	default:
		return &errs.UnsupportedVersion{TypeName: "collision.Collision", Version: int64(c.Version)}
	}
}
