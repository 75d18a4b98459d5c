package scenegraph

import (
	"math"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
)

// Point2d and Point3d are the fixed-width float tuples used as a recurring
// wire pattern across every versioned payload in this package.
type Point2d struct{ X, Y float32 }

type Point3d struct{ X, Y, Z float32 }

func decodePoint2d(r *bytecursor.Reader) (Point2d, error) {
	x, err := r.ReadF32()
	if err != nil {
		return Point2d{}, err
	}
	y, err := r.ReadF32()
	if err != nil {
		return Point2d{}, err
	}
	return Point2d{X: x, Y: y}, nil
}

func (p Point2d) encode(w *bytecursor.Writer) {
	w.WriteF32(p.X)
	w.WriteF32(p.Y)
}

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

// Rectangle is an axis-aligned 2D area: origin plus width/height, the
// shape BmdCatchmentArea's "area" field and the generic zone-template
// sections use.
type Rectangle struct {
	X, Y, Width, Height float32
}

func decodeRectangle(r *bytecursor.Reader) (Rectangle, error) {
	vals := [4]float32{}
	for i := range vals {
		v, err := r.ReadF32()
		if err != nil {
			return Rectangle{}, err
		}
		vals[i] = v
	}
	return Rectangle{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

func (rect Rectangle) encode(w *bytecursor.Writer) {
	w.WriteF32(rect.X)
	w.WriteF32(rect.Y)
	w.WriteF32(rect.Width)
	w.WriteF32(rect.Height)
}

// Cube is an axis-aligned 3D bounding box, min corner then max corner.
type Cube struct {
	Min, Max Point3d
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

// Quaternion is the 4-float rotation tuple used by SpotLight's "end"
// orientation field and other transform-bearing scene nodes.
type Quaternion struct{ X, Y, Z, W float32 }

func decodeQuaternion(r *bytecursor.Reader) (Quaternion, error) {
	vals := [4]float32{}
	for i := range vals {
		v, err := r.ReadF32()
		if err != nil {
			return Quaternion{}, err
		}
		vals[i] = v
	}
	return Quaternion{X: vals[0], Y: vals[1], Z: vals[2], W: vals[3]}, nil
}

func (q Quaternion) encode(w *bytecursor.Writer) {
	w.WriteF32(q.X)
	w.WriteF32(q.Y)
	w.WriteF32(q.Z)
	w.WriteF32(q.W)
}

// Colour is a float-channel RGB triple as scene-graph lighting nodes
// (SpotLight.Colour, the generic PointLight section) carry it. This is a
// distinct wire shape from the table engine's 24-bit merged-RGB recipe
// (schema.FieldColourRGB, schema.RecipeMergedRGB): that one packs three
// adjacent i32 columns, this one is three adjacent f32 fields inline in a
// single record.
type Colour struct{ R, G, B float32 }

func decodeColour(r *bytecursor.Reader) (Colour, error) {
	vals := [3]float32{}
	for i := range vals {
		v, err := r.ReadF32()
		if err != nil {
			return Colour{}, err
		}
		vals[i] = v
	}
	return Colour{R: vals[0], G: vals[1], B: vals[2]}, nil
}

func (c Colour) encode(w *bytecursor.Writer) {
	w.WriteF32(c.R)
	w.WriteF32(c.G)
	w.WriteF32(c.B)
}

// Transform3x4 is a row-major 3x4 affine transform: three rows of
// (rotation/scale 3x3, translation column), matching the engine's battle
// placement transform used by props, particle emitters and prefabs.
type Transform3x4 struct {
	M [3][4]float32
}

func decodeTransform3x4(r *bytecursor.Reader) (Transform3x4, error) {
	var t Transform3x4
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			v, err := r.ReadF32()
			if err != nil {
				return Transform3x4{}, err
			}
			t.M[row][col] = v
		}
	}
	return t, nil
}

func (t Transform3x4) encode(w *bytecursor.Writer) {
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			w.WriteF32(t.M[row][col])
		}
	}
}

// Position returns the translation column (m30, m31, m32 in the engine's
// own row/column naming, mirrored from battlefield_building_list's
// ECTransform emission).
func (t Transform3x4) Position() Point3d {
	return Point3d{X: t.M[0][3], Y: t.M[1][3], Z: t.M[2][3]}
}

// Scales extracts the per-axis scale as the length of each rotation
// column, the same derivation the original layer exporter performs before
// normalizing the rotation matrix.
func (t Transform3x4) Scales() (sx, sy, sz float32) {
	sx = vec3Len(t.M[0][0], t.M[1][0], t.M[2][0])
	sy = vec3Len(t.M[0][1], t.M[1][1], t.M[2][1])
	sz = vec3Len(t.M[0][2], t.M[1][2], t.M[2][2])
	return
}

// NormalizedRotation divides each rotation column by its scale, producing
// a pure rotation matrix ready for Euler extraction.
func (t Transform3x4) NormalizedRotation() [3][3]float32 {
	sx, sy, sz := t.Scales()
	var n [3][3]float32
	for row := 0; row < 3; row++ {
		n[row][0] = safeDiv(t.M[row][0], sx)
		n[row][1] = safeDiv(t.M[row][1], sy)
		n[row][2] = safeDiv(t.M[row][2], sz)
	}
	return n
}

// EulerAngles extracts X-Y-Z ordered Euler angles from a normalized
// rotation matrix, in degrees when degrees is true, radians otherwise.
// The X-Y-Z order is fixed so re-serialization through Transform3x4 stays
// bit-stable regardless of caller convention.
func EulerAngles(rot [3][3]float32, degrees bool) (x, y, z float32) {
	// Standard X-Y-Z (roll-pitch-yaw) extraction from a column-major
	// rotation matrix, matching the engine's own Euler decomposition.
	sy := -rot[2][0]
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	yRad := float32(math.Asin(float64(sy)))

	var xRad, zRad float32
	if math.Abs(float64(sy)) < 0.99999 {
		xRad = float32(math.Atan2(float64(rot[2][1]), float64(rot[2][2])))
		zRad = float32(math.Atan2(float64(rot[1][0]), float64(rot[0][0])))
	} else {
		xRad = float32(math.Atan2(float64(-rot[1][2]), float64(rot[1][1])))
		zRad = 0
	}

	if !degrees {
		return xRad, yRad, zRad
	}
	const r2d = 180 / math.Pi
	return xRad * r2d, yRad * r2d, zRad * r2d
}

func vec3Len(x, y, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y + z*z)))
}

func safeDiv(v, denom float32) float32 {
	if denom == 0 {
		return 0
	}
	return v / denom
}

// Transform4x4 is the 4x4 row-major counterpart used by PrefabInstance,
// which (unlike the 3x4 placement transform) also carries a projective
// last row.
type Transform4x4 struct {
	M [4][4]float32
}

func decodeTransform4x4(r *bytecursor.Reader) (Transform4x4, error) {
	var t Transform4x4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			v, err := r.ReadF32()
			if err != nil {
				return Transform4x4{}, err
			}
			t.M[row][col] = v
		}
	}
	return t, nil
}

func (t Transform4x4) encode(w *bytecursor.Writer) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			w.WriteF32(t.M[row][col])
		}
	}
}

// Flags is the shared per-node bitset type (allow-in-outfield, seasonal
// visibility, terrain clamping, ...) referenced by particle emitters and
// terrain stencil triangles. Only the v3 wire layout is implemented;
// any other leading version fails with errs.UnsupportedVersion rather
// than guess at field count.
type Flags struct {
	Version             uint16
	AllowInOutfield     bool
	ClampToWaterSurface bool
	Spring, Summer      bool
	Autumn, Winter      bool
}

func decodeFlags(r *bytecursor.Reader) (Flags, error) {
	var f Flags
	v, err := r.ReadU16()
	if err != nil {
		return Flags{}, err
	}
	f.Version = v
	if v != 3 {
		return Flags{}, &errs.UnsupportedVersion{TypeName: "scenegraph.Flags", Version: int64(v)}
	}
	for _, dst := range []*bool{&f.AllowInOutfield, &f.ClampToWaterSurface, &f.Spring, &f.Summer, &f.Autumn, &f.Winter} {
		b, err := r.ReadBool()
		if err != nil {
			return Flags{}, err
		}
		*dst = b
	}
	return f, nil
}

func (f Flags) encode(w *bytecursor.Writer) error {
	if f.Version != 3 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.Flags", Version: int64(f.Version)}
	}
	w.WriteU16(f.Version)
	for _, v := range []bool{f.AllowInOutfield, f.ClampToWaterSurface, f.Spring, f.Summer, f.Autumn, f.Winter} {
		w.WriteBool(v)
	}
	return nil
}

func readStringList(r *bytecursor.Reader) ([]string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]string, 0, n)
	for i := uint32(0); i < n; i++ {
		s, err := r.ReadStringU8()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func writeStringList(w *bytecursor.Writer, ss []string) {
	w.WriteU32(uint32(len(ss)))
	for _, s := range ss {
		w.WriteStringU8(s)
	}
}
