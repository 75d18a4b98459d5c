package scenegraph

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
)

// decodeList reads a u32 element count followed by that many elements via
// decodeElem, the count-then-elements pattern recurring across every
// versioned payload in this module.
func decodeList[T any](r *bytecursor.Reader, decodeElem func(*bytecursor.Reader) (T, error)) ([]T, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]T, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := decodeElem(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func encodeList[T any](w *bytecursor.Writer, items []T, encodeElem func(*bytecursor.Writer, T) error) error {
	w.WriteU32(uint32(len(items)))
	for _, v := range items {
		if err := encodeElem(w, v); err != nil {
			return err
		}
	}
	return nil
}

// Outline2d is a closed polyline of 2D points, the element type shared by
// every "*outline(s)" section (go_outlines and its siblings
// non_terrain_outlines, bmd_outline_list, terrain_outlines,
// lite_building_outlines, water_outlines); all of them share the same
// point-list wrapper.
type Outline2d struct {
	Points []Point2d
}

func decodeOutline2d(r *bytecursor.Reader) (Outline2d, error) {
	pts, err := decodeList(r, decodePoint2d)
	if err != nil {
		return Outline2d{}, err
	}
	return Outline2d{Points: pts}, nil
}

func encodeOutline2dElem(w *bytecursor.Writer, o Outline2d) error {
	return encodeList(w, o.Points, func(w *bytecursor.Writer, p Point2d) error { p.encode(w); return nil })
}

// BuildingProperties carries a placed building's gameplay flags (starting
// damage, indestructible, toggleable, ...).
type BuildingProperties struct {
	StartingDamageUnary         float32
	Indestructible              bool
	Toggleable                  bool
	KeyBuilding                 bool
	HideTooltip                 bool
	SettlementLevelConfigurable bool
	CaptureLocation             bool
	CastShadows                 bool
	ClampToSurface              bool
}

func decodeBuildingProperties(r *bytecursor.Reader) (BuildingProperties, error) {
	var p BuildingProperties
	v, err := r.ReadF32()
	if err != nil {
		return BuildingProperties{}, err
	}
	p.StartingDamageUnary = v
	bools := []*bool{&p.Indestructible, &p.Toggleable, &p.KeyBuilding, &p.HideTooltip, &p.SettlementLevelConfigurable, &p.CaptureLocation, &p.CastShadows, &p.ClampToSurface}
	for _, dst := range bools {
		b, err := r.ReadBool()
		if err != nil {
			return BuildingProperties{}, err
		}
		*dst = b
	}
	return p, nil
}

func (p BuildingProperties) encode(w *bytecursor.Writer) {
	w.WriteF32(p.StartingDamageUnary)
	for _, v := range []bool{p.Indestructible, p.Toggleable, p.KeyBuilding, p.HideTooltip, p.SettlementLevelConfigurable, p.CaptureLocation, p.CastShadows, p.ClampToSurface} {
		w.WriteBool(v)
	}
}

// Building is one placed battlefield building.
type Building struct {
	UID         uint64
	BuildingKey string
	Properties  BuildingProperties
	Transform   Transform3x4
	HeightMode  string
}

func decodeBuilding(r *bytecursor.Reader) (Building, error) {
	var b Building
	uid, err := r.ReadU64()
	if err != nil {
		return Building{}, err
	}
	b.UID = uid
	if b.BuildingKey, err = r.ReadStringU8(); err != nil {
		return Building{}, err
	}
	if b.Properties, err = decodeBuildingProperties(r); err != nil {
		return Building{}, err
	}
	if b.Transform, err = decodeTransform3x4(r); err != nil {
		return Building{}, err
	}
	if b.HeightMode, err = r.ReadStringU8(); err != nil {
		return Building{}, err
	}
	return b, nil
}

func encodeBuildingElem(w *bytecursor.Writer, b Building) error {
	w.WriteU64(b.UID)
	w.WriteStringU8(b.BuildingKey)
	b.Properties.encode(w)
	b.Transform.encode(w)
	w.WriteStringU8(b.HeightMode)
	return nil
}

// BuildingLink ties a capture location to the building index (or uid) it
// controls.
type BuildingLink struct {
	BuildingIndex int32
	UID           uint64
}

func decodeBuildingLink(r *bytecursor.Reader) (BuildingLink, error) {
	idx, err := r.ReadI32()
	if err != nil {
		return BuildingLink{}, err
	}
	uid, err := r.ReadU64()
	if err != nil {
		return BuildingLink{}, err
	}
	return BuildingLink{BuildingIndex: idx, UID: uid}, nil
}

func encodeBuildingLinkElem(w *bytecursor.Writer, l BuildingLink) error {
	w.WriteI32(l.BuildingIndex)
	w.WriteU64(l.UID)
	return nil
}

// CaptureLocation is one capturable point with the building links that
// garrison it.
type CaptureLocation struct {
	ID            int32
	Position      Point3d
	Radius        float32
	BuildingLinks []BuildingLink
}

func decodeCaptureLocation(r *bytecursor.Reader) (CaptureLocation, error) {
	var c CaptureLocation
	id, err := r.ReadI32()
	if err != nil {
		return CaptureLocation{}, err
	}
	c.ID = id
	if c.Position, err = decodePoint3d(r); err != nil {
		return CaptureLocation{}, err
	}
	if c.Radius, err = r.ReadF32(); err != nil {
		return CaptureLocation{}, err
	}
	if c.BuildingLinks, err = decodeList(r, decodeBuildingLink); err != nil {
		return CaptureLocation{}, err
	}
	return c, nil
}

func encodeCaptureLocationElem(w *bytecursor.Writer, c CaptureLocation) error {
	w.WriteI32(c.ID)
	c.Position.encode(w)
	w.WriteF32(c.Radius)
	return encodeList(w, c.BuildingLinks, encodeBuildingLinkElem)
}

// CaptureLocationGroup is one "capture_location_sets" entry: a named group
// of capture locations.
type CaptureLocationGroup struct {
	Key              string
	CaptureLocations []CaptureLocation
}

func decodeCaptureLocationGroup(r *bytecursor.Reader) (CaptureLocationGroup, error) {
	var g CaptureLocationGroup
	key, err := r.ReadStringU8()
	if err != nil {
		return CaptureLocationGroup{}, err
	}
	g.Key = key
	if g.CaptureLocations, err = decodeList(r, decodeCaptureLocation); err != nil {
		return CaptureLocationGroup{}, err
	}
	return g, nil
}

func encodeCaptureLocationGroupElem(w *bytecursor.Writer, g CaptureLocationGroup) error {
	w.WriteStringU8(g.Key)
	return encodeList(w, g.CaptureLocations, encodeCaptureLocationElem)
}

// LightProbe is a single ambient-light sample point.
type LightProbe struct {
	Version     uint16
	Position    Point3d
	OuterRadius float32
	InnerRadius float32
	IsCylinder  bool
	IsPrimary   bool
	HeightMode  string
}

func decodeLightProbe(r *bytecursor.Reader) (LightProbe, error) {
	var p LightProbe
	v, err := r.ReadU16()
	if err != nil {
		return LightProbe{}, err
	}
	p.Version = v
	if v != 3 {
		return LightProbe{}, &errs.UnsupportedVersion{TypeName: "scenegraph.LightProbe", Version: int64(v)}
	}
	if p.Position, err = decodePoint3d(r); err != nil {
		return LightProbe{}, err
	}
	if p.OuterRadius, err = r.ReadF32(); err != nil {
		return LightProbe{}, err
	}
	if p.InnerRadius, err = r.ReadF32(); err != nil {
		return LightProbe{}, err
	}
	if p.IsCylinder, err = r.ReadBool(); err != nil {
		return LightProbe{}, err
	}
	if p.IsPrimary, err = r.ReadBool(); err != nil {
		return LightProbe{}, err
	}
	if p.HeightMode, err = r.ReadStringU8(); err != nil {
		return LightProbe{}, err
	}
	return p, nil
}

func encodeLightProbeElem(w *bytecursor.Writer, p LightProbe) error {
	if p.Version != 3 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.LightProbe", Version: int64(p.Version)}
	}
	w.WriteU16(p.Version)
	p.Position.encode(w)
	w.WriteF32(p.OuterRadius)
	w.WriteF32(p.InnerRadius)
	w.WriteBool(p.IsCylinder)
	w.WriteBool(p.IsPrimary)
	w.WriteStringU8(p.HeightMode)
	return nil
}

// ParticleEmitter is a placed FX emitter. Only version 9 is implemented;
// v5-v8/v10 fail with errs.UnsupportedVersion.
type ParticleEmitter struct {
	Version         uint16
	Key             string
	Transform       Transform3x4
	EmissionRate    float32
	InstanceName    string
	Flags           Flags
	HeightMode      string
	PDLCMask        uint64
	Autoplay        bool
	VisibleInShroud bool
	ParentID        int32
}

func decodeParticleEmitter(r *bytecursor.Reader) (ParticleEmitter, error) {
	var e ParticleEmitter
	v, err := r.ReadU16()
	if err != nil {
		return ParticleEmitter{}, err
	}
	e.Version = v
	if v != 9 {
		return ParticleEmitter{}, &errs.UnsupportedVersion{TypeName: "scenegraph.ParticleEmitter", Version: int64(v)}
	}
	if e.Key, err = r.ReadStringU8(); err != nil {
		return ParticleEmitter{}, err
	}
	if e.Transform, err = decodeTransform3x4(r); err != nil {
		return ParticleEmitter{}, err
	}
	if e.EmissionRate, err = r.ReadF32(); err != nil {
		return ParticleEmitter{}, err
	}
	if e.InstanceName, err = r.ReadStringU8(); err != nil {
		return ParticleEmitter{}, err
	}
	if e.Flags, err = decodeFlags(r); err != nil {
		return ParticleEmitter{}, err
	}
	if e.HeightMode, err = r.ReadStringU8(); err != nil {
		return ParticleEmitter{}, err
	}
	if e.PDLCMask, err = r.ReadU64(); err != nil {
		return ParticleEmitter{}, err
	}
	if e.Autoplay, err = r.ReadBool(); err != nil {
		return ParticleEmitter{}, err
	}
	if e.VisibleInShroud, err = r.ReadBool(); err != nil {
		return ParticleEmitter{}, err
	}
	if e.ParentID, err = r.ReadI32(); err != nil {
		return ParticleEmitter{}, err
	}
	return e, nil
}

func encodeParticleEmitterElem(w *bytecursor.Writer, e ParticleEmitter) error {
	if e.Version != 9 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.ParticleEmitter", Version: int64(e.Version)}
	}
	w.WriteU16(e.Version)
	w.WriteStringU8(e.Key)
	e.Transform.encode(w)
	w.WriteF32(e.EmissionRate)
	w.WriteStringU8(e.InstanceName)
	if err := e.Flags.encode(w); err != nil {
		return err
	}
	w.WriteStringU8(e.HeightMode)
	w.WriteU64(e.PDLCMask)
	w.WriteBool(e.Autoplay)
	w.WriteBool(e.VisibleInShroud)
	w.WriteI32(e.ParentID)
	return nil
}

// RiverNode is one vertex of a SoundShape's river path.
type RiverNode struct {
	Vertex    Point3d
	Width     float32
	FlowSpeed float32
}

func decodeRiverNode(r *bytecursor.Reader) (RiverNode, error) {
	var n RiverNode
	var err error
	if n.Vertex, err = decodePoint3d(r); err != nil {
		return RiverNode{}, err
	}
	if n.Width, err = r.ReadF32(); err != nil {
		return RiverNode{}, err
	}
	if n.FlowSpeed, err = r.ReadF32(); err != nil {
		return RiverNode{}, err
	}
	return n, nil
}

func encodeRiverNodeElem(w *bytecursor.Writer, n RiverNode) error {
	n.Vertex.encode(w)
	w.WriteF32(n.Width)
	w.WriteF32(n.FlowSpeed)
	return nil
}

// SoundShape is a volume that triggers ambient audio. Only version 10,
// the latest sub-codec, is implemented; 6-9 fail with
// errs.UnsupportedVersion.
type SoundShape struct {
	Version          uint16
	Key              string
	RType            string
	Points           []Point3d
	InnerRadius      float32
	OuterRadius      float32
	InnerCube        Cube
	OuterCube        Cube
	RiverNodes       []RiverNode
	ClampToSurface   bool
	HeightMode       string
	CampaignTypeMask uint64
	PDLCMask         uint64
	Direction        Point3d
	Up               Point3d
	Scope            string
}

func decodeSoundShape(r *bytecursor.Reader) (SoundShape, error) {
	var s SoundShape
	v, err := r.ReadU16()
	if err != nil {
		return SoundShape{}, err
	}
	s.Version = v
	if v != 10 {
		return SoundShape{}, &errs.UnsupportedVersion{TypeName: "scenegraph.SoundShape", Version: int64(v)}
	}
	if s.Key, err = r.ReadStringU8(); err != nil {
		return SoundShape{}, err
	}
	if s.RType, err = r.ReadStringU8(); err != nil {
		return SoundShape{}, err
	}
	if s.Points, err = decodeList(r, decodePoint3d); err != nil {
		return SoundShape{}, err
	}
	if s.InnerRadius, err = r.ReadF32(); err != nil {
		return SoundShape{}, err
	}
	if s.OuterRadius, err = r.ReadF32(); err != nil {
		return SoundShape{}, err
	}
	if s.InnerCube, err = decodeCube(r); err != nil {
		return SoundShape{}, err
	}
	if s.OuterCube, err = decodeCube(r); err != nil {
		return SoundShape{}, err
	}
	if s.RiverNodes, err = decodeList(r, decodeRiverNode); err != nil {
		return SoundShape{}, err
	}
	if s.ClampToSurface, err = r.ReadBool(); err != nil {
		return SoundShape{}, err
	}
	if s.HeightMode, err = r.ReadStringU8(); err != nil {
		return SoundShape{}, err
	}
	if s.CampaignTypeMask, err = r.ReadU64(); err != nil {
		return SoundShape{}, err
	}
	if s.PDLCMask, err = r.ReadU64(); err != nil {
		return SoundShape{}, err
	}
	if s.Direction, err = decodePoint3d(r); err != nil {
		return SoundShape{}, err
	}
	if s.Up, err = decodePoint3d(r); err != nil {
		return SoundShape{}, err
	}
	if s.Scope, err = r.ReadStringU8(); err != nil {
		return SoundShape{}, err
	}
	return s, nil
}

func encodeSoundShapeElem(w *bytecursor.Writer, s SoundShape) error {
	if s.Version != 10 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.SoundShape", Version: int64(s.Version)}
	}
	w.WriteU16(s.Version)
	w.WriteStringU8(s.Key)
	w.WriteStringU8(s.RType)
	if err := encodeList(w, s.Points, func(w *bytecursor.Writer, p Point3d) error { p.encode(w); return nil }); err != nil {
		return err
	}
	w.WriteF32(s.InnerRadius)
	w.WriteF32(s.OuterRadius)
	s.InnerCube.encode(w)
	s.OuterCube.encode(w)
	if err := encodeList(w, s.RiverNodes, encodeRiverNodeElem); err != nil {
		return err
	}
	w.WriteBool(s.ClampToSurface)
	w.WriteStringU8(s.HeightMode)
	w.WriteU64(s.CampaignTypeMask)
	w.WriteU64(s.PDLCMask)
	s.Direction.encode(w)
	s.Up.encode(w)
	w.WriteStringU8(s.Scope)
	return nil
}

// SpotLight is a cone light source.
type SpotLight struct {
	Version     uint16
	Position    Point3d
	End         Quaternion
	Length      float32
	InnerAngle  float32
	OuterAngle  float32
	Colour      Colour
	Falloff     float32
	Gobo        string
	Volumetric  bool
	HeightMode  string
	PDLCVersion uint64
}

func decodeSpotLight(r *bytecursor.Reader) (SpotLight, error) {
	var l SpotLight
	v, err := r.ReadU16()
	if err != nil {
		return SpotLight{}, err
	}
	l.Version = v
	if v != 7 {
		return SpotLight{}, &errs.UnsupportedVersion{TypeName: "scenegraph.SpotLight", Version: int64(v)}
	}
	if l.Position, err = decodePoint3d(r); err != nil {
		return SpotLight{}, err
	}
	if l.End, err = decodeQuaternion(r); err != nil {
		return SpotLight{}, err
	}
	if l.Length, err = r.ReadF32(); err != nil {
		return SpotLight{}, err
	}
	if l.InnerAngle, err = r.ReadF32(); err != nil {
		return SpotLight{}, err
	}
	if l.OuterAngle, err = r.ReadF32(); err != nil {
		return SpotLight{}, err
	}
	if l.Colour, err = decodeColour(r); err != nil {
		return SpotLight{}, err
	}
	if l.Falloff, err = r.ReadF32(); err != nil {
		return SpotLight{}, err
	}
	if l.Gobo, err = r.ReadStringU8(); err != nil {
		return SpotLight{}, err
	}
	if l.Volumetric, err = r.ReadBool(); err != nil {
		return SpotLight{}, err
	}
	if l.HeightMode, err = r.ReadStringU8(); err != nil {
		return SpotLight{}, err
	}
	if l.PDLCVersion, err = r.ReadU64(); err != nil {
		return SpotLight{}, err
	}
	return l, nil
}

func encodeSpotLightElem(w *bytecursor.Writer, l SpotLight) error {
	if l.Version != 7 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.SpotLight", Version: int64(l.Version)}
	}
	w.WriteU16(l.Version)
	l.Position.encode(w)
	l.End.encode(w)
	w.WriteF32(l.Length)
	w.WriteF32(l.InnerAngle)
	w.WriteF32(l.OuterAngle)
	l.Colour.encode(w)
	w.WriteF32(l.Falloff)
	w.WriteStringU8(l.Gobo)
	w.WriteBool(l.Volumetric)
	w.WriteStringU8(l.HeightMode)
	w.WriteU64(l.PDLCVersion)
	return nil
}

// TerrainStencilTriangle is a flattened-ground patch. Only version 3,
// the latest sub-codec, is implemented.
type TerrainStencilTriangle struct {
	Version                         uint16
	Position0, Position1, Position2 Point3d
	HeightMode                      string
	Flags                           Flags
}

func decodeTerrainStencilTriangle(r *bytecursor.Reader) (TerrainStencilTriangle, error) {
	var t TerrainStencilTriangle
	v, err := r.ReadU16()
	if err != nil {
		return TerrainStencilTriangle{}, err
	}
	t.Version = v
	if v != 3 {
		return TerrainStencilTriangle{}, &errs.UnsupportedVersion{TypeName: "scenegraph.TerrainStencilTriangle", Version: int64(v)}
	}
	if t.Position0, err = decodePoint3d(r); err != nil {
		return TerrainStencilTriangle{}, err
	}
	if t.Position1, err = decodePoint3d(r); err != nil {
		return TerrainStencilTriangle{}, err
	}
	if t.Position2, err = decodePoint3d(r); err != nil {
		return TerrainStencilTriangle{}, err
	}
	if t.HeightMode, err = r.ReadStringU8(); err != nil {
		return TerrainStencilTriangle{}, err
	}
	if t.Flags, err = decodeFlags(r); err != nil {
		return TerrainStencilTriangle{}, err
	}
	return t, nil
}

func encodeTerrainStencilTriangleElem(w *bytecursor.Writer, t TerrainStencilTriangle) error {
	if t.Version != 3 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.TerrainStencilTriangle", Version: int64(t.Version)}
	}
	w.WriteU16(t.Version)
	t.Position0.encode(w)
	t.Position1.encode(w)
	t.Position2.encode(w)
	w.WriteStringU8(t.HeightMode)
	return t.Flags.encode(w)
}

// CompositeSceneReference embeds another scene file at a transform.
type CompositeSceneReference struct {
	Version         uint16
	Transform       Transform3x4
	SceneFile       string
	HeightMode      string
	PDLCMask        uint64
	Autoplay        bool
	VisibleInShroud bool
	NoCulling       bool
}

func decodeCompositeSceneReference(r *bytecursor.Reader) (CompositeSceneReference, error) {
	var c CompositeSceneReference
	v, err := r.ReadU16()
	if err != nil {
		return CompositeSceneReference{}, err
	}
	c.Version = v
	if v != 7 {
		return CompositeSceneReference{}, &errs.UnsupportedVersion{TypeName: "scenegraph.CompositeSceneReference", Version: int64(v)}
	}
	if c.Transform, err = decodeTransform3x4(r); err != nil {
		return CompositeSceneReference{}, err
	}
	if c.SceneFile, err = r.ReadStringU8(); err != nil {
		return CompositeSceneReference{}, err
	}
	if c.HeightMode, err = r.ReadStringU8(); err != nil {
		return CompositeSceneReference{}, err
	}
	if c.PDLCMask, err = r.ReadU64(); err != nil {
		return CompositeSceneReference{}, err
	}
	if c.Autoplay, err = r.ReadBool(); err != nil {
		return CompositeSceneReference{}, err
	}
	if c.VisibleInShroud, err = r.ReadBool(); err != nil {
		return CompositeSceneReference{}, err
	}
	if c.NoCulling, err = r.ReadBool(); err != nil {
		return CompositeSceneReference{}, err
	}
	return c, nil
}

func encodeCompositeSceneReferenceElem(w *bytecursor.Writer, c CompositeSceneReference) error {
	if c.Version != 7 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.CompositeSceneReference", Version: int64(c.Version)}
	}
	w.WriteU16(c.Version)
	c.Transform.encode(w)
	w.WriteStringU8(c.SceneFile)
	w.WriteStringU8(c.HeightMode)
	w.WriteU64(c.PDLCMask)
	w.WriteBool(c.Autoplay)
	w.WriteBool(c.VisibleInShroud)
	w.WriteBool(c.NoCulling)
	return nil
}

// Boundary is one vertex of a deployment region's polygon.
type Boundary = Point3d

// DeploymentRegion is one polygonal region of a deployment zone.
type DeploymentRegion struct {
	Boundary    []Boundary
	Orientation float32
	SnapFacing  bool
	ID          uint32
}

func decodeDeploymentRegion(r *bytecursor.Reader) (DeploymentRegion, error) {
	var d DeploymentRegion
	var err error
	if d.Boundary, err = decodeList(r, decodePoint3d); err != nil {
		return DeploymentRegion{}, err
	}
	if d.Orientation, err = r.ReadF32(); err != nil {
		return DeploymentRegion{}, err
	}
	if d.SnapFacing, err = r.ReadBool(); err != nil {
		return DeploymentRegion{}, err
	}
	if d.ID, err = r.ReadU32(); err != nil {
		return DeploymentRegion{}, err
	}
	return d, nil
}

func encodeDeploymentRegionElem(w *bytecursor.Writer, d DeploymentRegion) error {
	if err := encodeList(w, d.Boundary, func(w *bytecursor.Writer, p Point3d) error { p.encode(w); return nil }); err != nil {
		return err
	}
	w.WriteF32(d.Orientation)
	w.WriteBool(d.SnapFacing)
	w.WriteU32(d.ID)
	return nil
}

// DeploymentZone groups the regions a faction may deploy into.
type DeploymentZone struct {
	Regions []DeploymentRegion
}

func decodeDeploymentZone(r *bytecursor.Reader) (DeploymentZone, error) {
	regions, err := decodeList(r, decodeDeploymentRegion)
	if err != nil {
		return DeploymentZone{}, err
	}
	return DeploymentZone{Regions: regions}, nil
}

func encodeDeploymentZoneElem(w *bytecursor.Writer, z DeploymentZone) error {
	return encodeList(w, z.Regions, encodeDeploymentRegionElem)
}

// DeploymentArea is one named deployment area of zones.
type DeploymentArea struct {
	Key   string
	Zones []DeploymentZone
}

func decodeDeploymentArea(r *bytecursor.Reader) (DeploymentArea, error) {
	var a DeploymentArea
	key, err := r.ReadStringU8()
	if err != nil {
		return DeploymentArea{}, err
	}
	a.Key = key
	if a.Zones, err = decodeList(r, decodeDeploymentZone); err != nil {
		return DeploymentArea{}, err
	}
	return a, nil
}

func encodeDeploymentAreaElem(w *bytecursor.Writer, a DeploymentArea) error {
	w.WriteStringU8(a.Key)
	return encodeList(w, a.Zones, encodeDeploymentZoneElem)
}

// ValidLocationFlags marks the cardinal directions a catchment area
// accepts attackers from. Only version 1 exists.
type ValidLocationFlags struct {
	Version                  uint16
	North, South, East, West bool
}

func decodeValidLocationFlags(r *bytecursor.Reader) (ValidLocationFlags, error) {
	var f ValidLocationFlags
	v, err := r.ReadU16()
	if err != nil {
		return ValidLocationFlags{}, err
	}
	f.Version = v
	if v != 1 {
		return ValidLocationFlags{}, &errs.UnsupportedVersion{TypeName: "scenegraph.ValidLocationFlags", Version: int64(v)}
	}
	for _, dst := range []*bool{&f.North, &f.South, &f.East, &f.West} {
		b, err := r.ReadBool()
		if err != nil {
			return ValidLocationFlags{}, err
		}
		*dst = b
	}
	return f, nil
}

func (f ValidLocationFlags) encode(w *bytecursor.Writer) error {
	if f.Version != 1 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.ValidLocationFlags", Version: int64(f.Version)}
	}
	w.WriteU16(f.Version)
	for _, v := range []bool{f.North, f.South, f.East, f.West} {
		w.WriteBool(v)
	}
	return nil
}

// BmdCatchmentArea is one siege catchment area. Only version 6 is
// implemented.
type BmdCatchmentArea struct {
	Version                     uint16
	Name                        string
	Area                        Rectangle
	BattleType                  string
	DefendingFactionRestriction string
	ValidLocationFlags          ValidLocationFlags
}

func decodeBmdCatchmentArea(r *bytecursor.Reader) (BmdCatchmentArea, error) {
	var a BmdCatchmentArea
	v, err := r.ReadU16()
	if err != nil {
		return BmdCatchmentArea{}, err
	}
	a.Version = v
	if v != 6 {
		return BmdCatchmentArea{}, &errs.UnsupportedVersion{TypeName: "scenegraph.BmdCatchmentArea", Version: int64(v)}
	}
	if a.Name, err = r.ReadStringU8(); err != nil {
		return BmdCatchmentArea{}, err
	}
	if a.Area, err = decodeRectangle(r); err != nil {
		return BmdCatchmentArea{}, err
	}
	if a.BattleType, err = r.ReadStringU8(); err != nil {
		return BmdCatchmentArea{}, err
	}
	if a.DefendingFactionRestriction, err = r.ReadStringU8(); err != nil {
		return BmdCatchmentArea{}, err
	}
	if a.ValidLocationFlags, err = decodeValidLocationFlags(r); err != nil {
		return BmdCatchmentArea{}, err
	}
	return a, nil
}

func encodeBmdCatchmentAreaElem(w *bytecursor.Writer, a BmdCatchmentArea) error {
	if a.Version != 6 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.BmdCatchmentArea", Version: int64(a.Version)}
	}
	w.WriteU16(a.Version)
	w.WriteStringU8(a.Name)
	a.Area.encode(w)
	w.WriteStringU8(a.BattleType)
	w.WriteStringU8(a.DefendingFactionRestriction)
	return a.ValidLocationFlags.encode(w)
}

// PropertyOverride is one scripted override applied to a prefab instance.
type PropertyOverride struct {
	Key   string
	Value string
}

func decodePropertyOverride(r *bytecursor.Reader) (PropertyOverride, error) {
	var p PropertyOverride
	var err error
	if p.Key, err = r.ReadStringU8(); err != nil {
		return PropertyOverride{}, err
	}
	if p.Value, err = r.ReadStringU8(); err != nil {
		return PropertyOverride{}, err
	}
	return p, nil
}

func encodePropertyOverrideElem(w *bytecursor.Writer, p PropertyOverride) error {
	w.WriteStringU8(p.Key)
	w.WriteStringU8(p.Value)
	return nil
}

// PrefabInstance is a placed prefab. Only version 9, the latest
// sub-codec, is implemented.
type PrefabInstance struct {
	Version           uint16
	Key               string
	Transform         Transform4x4
	PropertyOverrides []PropertyOverride
	CampaignTypeMask  uint64
	CampaignRegionKey string
	ClampToSurface    bool
	HeightMode        string
	UID               uint64
}

func decodePrefabInstance(r *bytecursor.Reader) (PrefabInstance, error) {
	var p PrefabInstance
	v, err := r.ReadU16()
	if err != nil {
		return PrefabInstance{}, err
	}
	p.Version = v
	if v != 9 {
		return PrefabInstance{}, &errs.UnsupportedVersion{TypeName: "scenegraph.PrefabInstance", Version: int64(v)}
	}
	if p.Key, err = r.ReadStringU8(); err != nil {
		return PrefabInstance{}, err
	}
	if p.Transform, err = decodeTransform4x4(r); err != nil {
		return PrefabInstance{}, err
	}
	if p.PropertyOverrides, err = decodeList(r, decodePropertyOverride); err != nil {
		return PrefabInstance{}, err
	}
	if p.CampaignTypeMask, err = r.ReadU64(); err != nil {
		return PrefabInstance{}, err
	}
	if p.CampaignRegionKey, err = r.ReadStringU8(); err != nil {
		return PrefabInstance{}, err
	}
	if p.ClampToSurface, err = r.ReadBool(); err != nil {
		return PrefabInstance{}, err
	}
	if p.HeightMode, err = r.ReadStringU8(); err != nil {
		return PrefabInstance{}, err
	}
	if p.UID, err = r.ReadU64(); err != nil {
		return PrefabInstance{}, err
	}
	return p, nil
}

func encodePrefabInstanceElem(w *bytecursor.Writer, p PrefabInstance) error {
	if p.Version != 9 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph.PrefabInstance", Version: int64(p.Version)}
	}
	w.WriteU16(p.Version)
	w.WriteStringU8(p.Key)
	p.Transform.encode(w)
	if err := encodeList(w, p.PropertyOverrides, encodePropertyOverrideElem); err != nil {
		return err
	}
	w.WriteU64(p.CampaignTypeMask)
	w.WriteStringU8(p.CampaignRegionKey)
	w.WriteBool(p.ClampToSurface)
	w.WriteStringU8(p.HeightMode)
	w.WriteU64(p.UID)
	return nil
}

// ToggleableBuildingsSlot is one slot a player can toggle a building on
// or off in.
type ToggleableBuildingsSlot struct {
	Key            string
	DefaultEnabled bool
}

func decodeToggleableBuildingsSlot(r *bytecursor.Reader) (ToggleableBuildingsSlot, error) {
	var s ToggleableBuildingsSlot
	var err error
	if s.Key, err = r.ReadStringU8(); err != nil {
		return ToggleableBuildingsSlot{}, err
	}
	if s.DefaultEnabled, err = r.ReadBool(); err != nil {
		return ToggleableBuildingsSlot{}, err
	}
	return s, nil
}

func encodeToggleableBuildingsSlotElem(w *bytecursor.Writer, s ToggleableBuildingsSlot) error {
	w.WriteStringU8(s.Key)
	w.WriteBool(s.DefaultEnabled)
	return nil
}

// Prop is the generic "named object placed at a transform" shape shared by
// prop_list, building_projectile_emitter_list and terrain_decal_list.
type Prop struct {
	Key        string
	Transform  Transform3x4
	HeightMode string
}

func decodeProp(r *bytecursor.Reader) (Prop, error) {
	var p Prop
	var err error
	if p.Key, err = r.ReadStringU8(); err != nil {
		return Prop{}, err
	}
	if p.Transform, err = decodeTransform3x4(r); err != nil {
		return Prop{}, err
	}
	if p.HeightMode, err = r.ReadStringU8(); err != nil {
		return Prop{}, err
	}
	return p, nil
}

func encodePropElem(w *bytecursor.Writer, p Prop) error {
	w.WriteStringU8(p.Key)
	p.Transform.encode(w)
	w.WriteStringU8(p.HeightMode)
	return nil
}

// PointLight is the omnidirectional sibling of SpotLight, modeled on the
// same position/colour/falloff fields minus the cone-specific angle and
// direction fields SpotLight declares.
type PointLight struct {
	Position Point3d
	Radius   float32
	Colour   Colour
	Falloff  float32
}

func decodePointLight(r *bytecursor.Reader) (PointLight, error) {
	var l PointLight
	var err error
	if l.Position, err = decodePoint3d(r); err != nil {
		return PointLight{}, err
	}
	if l.Radius, err = r.ReadF32(); err != nil {
		return PointLight{}, err
	}
	if l.Colour, err = decodeColour(r); err != nil {
		return PointLight{}, err
	}
	if l.Falloff, err = r.ReadF32(); err != nil {
		return PointLight{}, err
	}
	return l, nil
}

func encodePointLightElem(w *bytecursor.Writer, l PointLight) error {
	l.Position.encode(w)
	w.WriteF32(l.Radius)
	l.Colour.encode(w)
	w.WriteF32(l.Falloff)
	return nil
}

// ZoneTemplate is the named rectangular area shape used by
// zones_template_list.
type ZoneTemplate struct {
	Key  string
	Area Rectangle
}

func decodeZoneTemplate(r *bytecursor.Reader) (ZoneTemplate, error) {
	var z ZoneTemplate
	var err error
	if z.Key, err = r.ReadStringU8(); err != nil {
		return ZoneTemplate{}, err
	}
	if z.Area, err = decodeRectangle(r); err != nil {
		return ZoneTemplate{}, err
	}
	return z, nil
}

func encodeZoneTemplateElem(w *bytecursor.Writer, z ZoneTemplate) error {
	w.WriteStringU8(z.Key)
	z.Area.encode(w)
	return nil
}

// CameraZone is the named cuboid volume shape used by camera_zones.
type CameraZone struct {
	Key    string
	Bounds Cube
}

func decodeCameraZone(r *bytecursor.Reader) (CameraZone, error) {
	var z CameraZone
	var err error
	if z.Key, err = r.ReadStringU8(); err != nil {
		return CameraZone{}, err
	}
	if z.Bounds, err = decodeCube(r); err != nil {
		return CameraZone{}, err
	}
	return z, nil
}

func encodeCameraZoneElem(w *bytecursor.Writer, z CameraZone) error {
	w.WriteStringU8(z.Key)
	z.Bounds.encode(w)
	return nil
}

// Shelter is the named cuboid volume with a capacity used by
// civilian_shelter_list.
type Shelter struct {
	Key      string
	Area     Cube
	Capacity int32
}

func decodeShelter(r *bytecursor.Reader) (Shelter, error) {
	var s Shelter
	var err error
	if s.Key, err = r.ReadStringU8(); err != nil {
		return Shelter{}, err
	}
	if s.Area, err = decodeCube(r); err != nil {
		return Shelter{}, err
	}
	if s.Capacity, err = r.ReadI32(); err != nil {
		return Shelter{}, err
	}
	return s, nil
}

func encodeShelterElem(w *bytecursor.Writer, s Shelter) error {
	w.WriteStringU8(s.Key)
	s.Area.encode(w)
	w.WriteI32(s.Capacity)
	return nil
}

// MaterialMeshOverride swaps a named material onto a named mesh, used by
// custom_material_mesh_list.
type MaterialMeshOverride struct {
	MaterialKey string
	MeshKey     string
}

func decodeMaterialMeshOverride(r *bytecursor.Reader) (MaterialMeshOverride, error) {
	var m MaterialMeshOverride
	var err error
	if m.MaterialKey, err = r.ReadStringU8(); err != nil {
		return MaterialMeshOverride{}, err
	}
	if m.MeshKey, err = r.ReadStringU8(); err != nil {
		return MaterialMeshOverride{}, err
	}
	return m, nil
}

func encodeMaterialMeshOverrideElem(w *bytecursor.Writer, m MaterialMeshOverride) error {
	w.WriteStringU8(m.MaterialKey)
	w.WriteStringU8(m.MeshKey)
	return nil
}

// TerrainDecal is a textured quad painted onto the terrain.
type TerrainDecal struct {
	Key       string
	Transform Transform3x4
	Texture   string
}

func decodeTerrainDecal(r *bytecursor.Reader) (TerrainDecal, error) {
	var d TerrainDecal
	var err error
	if d.Key, err = r.ReadStringU8(); err != nil {
		return TerrainDecal{}, err
	}
	if d.Transform, err = decodeTransform3x4(r); err != nil {
		return TerrainDecal{}, err
	}
	if d.Texture, err = r.ReadStringU8(); err != nil {
		return TerrainDecal{}, err
	}
	return d, nil
}

func encodeTerrainDecalElem(w *bytecursor.Writer, d TerrainDecal) error {
	w.WriteStringU8(d.Key)
	d.Transform.encode(w)
	w.WriteStringU8(d.Texture)
	return nil
}

// LinePoint is the named start/end segment shape used by ef_line_list.
type LinePoint struct {
	Key        string
	Start, End Point3d
}

func decodeLinePoint(r *bytecursor.Reader) (LinePoint, error) {
	var l LinePoint
	var err error
	if l.Key, err = r.ReadStringU8(); err != nil {
		return LinePoint{}, err
	}
	if l.Start, err = decodePoint3d(r); err != nil {
		return LinePoint{}, err
	}
	if l.End, err = decodePoint3d(r); err != nil {
		return LinePoint{}, err
	}
	return l, nil
}

func encodeLinePointElem(w *bytecursor.Writer, l LinePoint) error {
	w.WriteStringU8(l.Key)
	l.Start.encode(w)
	l.End.encode(w)
	return nil
}
