package scenegraph

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
)

// SceneGraph is the top-level "battlefield map description" (BMD) composite
// record: a fixed ordered sequence of named child lists. Every field must
// decode for the record to be valid; a missing or truncated section fails
// the whole payload.
type SceneGraph struct {
	Version uint32

	BattlefieldBuildings         []Building
	BattlefieldBuildingsFar      []Building
	CaptureLocationSets          []CaptureLocationGroup
	EFLines                      []LinePoint
	GoOutlines                   []Outline2d
	NonTerrainOutlines           []Outline2d
	ZonesTemplate                []ZoneTemplate
	PrefabInstances              []PrefabInstance
	BmdOutlines                  []Outline2d
	TerrainOutlines              []Outline2d
	LiteBuildingOutlines         []Outline2d
	CameraZones                  []CameraZone
	CivilianDeployments          []DeploymentArea
	CivilianShelters             []Shelter
	Props                        []Prop
	ParticleEmitters             []ParticleEmitter
	AIHints                      []string
	LightProbes                  []LightProbe
	TerrainStencilTriangles      []TerrainStencilTriangle
	PointLights                  []PointLight
	BuildingProjectileEmitters   []Prop
	PlayableArea                 Rectangle
	CustomMaterialMeshes         []MaterialMeshOverride
	TerrainStencilBlendTriangles []TerrainStencilTriangle
	SpotLights                   []SpotLight
	SoundShapes                  []SoundShape
	CompositeScenes              []CompositeSceneReference
	DeploymentAreas              []DeploymentArea
	BmdCatchmentAreas            []BmdCatchmentArea
	ToggleableBuildingsSlots     []ToggleableBuildingsSlot
	TerrainDecals                []TerrainDecal
	TreeListReferenceCount       uint32 // faithful to v27's odd empty-element list; see Decode
	GrassListReferences          []string
	WaterOutlines                []Outline2d
}

func (SceneGraph) Kind() filetype.Kind { return filetype.SceneGraph }

// Codec implements codec.TypedFileCodec for battlefield scene graphs.
// Only BMD generation 27 is implemented; any other leading version fails
// with errs.UnsupportedVersion rather than guess at the child-list
// sequence for an untested generation.
type Codec struct{}

func (Codec) Decode(r *bytecursor.Reader, _ *extradata.ExtraData) (*SceneGraph, error) {
	v, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if v != 27 {
		return nil, &errs.UnsupportedVersion{TypeName: "scenegraph", Version: int64(v)}
	}

	g := &SceneGraph{Version: v}
	var derr error

	g.BattlefieldBuildings, derr = decodeList(r, decodeBuilding)
	if derr != nil {
		return nil, derr
	}
	g.BattlefieldBuildingsFar, derr = decodeList(r, decodeBuilding)
	if derr != nil {
		return nil, derr
	}
	g.CaptureLocationSets, derr = decodeList(r, decodeCaptureLocationGroup)
	if derr != nil {
		return nil, derr
	}
	g.EFLines, derr = decodeList(r, decodeLinePoint)
	if derr != nil {
		return nil, derr
	}
	g.GoOutlines, derr = decodeList(r, decodeOutline2d)
	if derr != nil {
		return nil, derr
	}
	g.NonTerrainOutlines, derr = decodeList(r, decodeOutline2d)
	if derr != nil {
		return nil, derr
	}
	g.ZonesTemplate, derr = decodeList(r, decodeZoneTemplate)
	if derr != nil {
		return nil, derr
	}
	g.PrefabInstances, derr = decodeList(r, decodePrefabInstance)
	if derr != nil {
		return nil, derr
	}
	g.BmdOutlines, derr = decodeList(r, decodeOutline2d)
	if derr != nil {
		return nil, derr
	}
	g.TerrainOutlines, derr = decodeList(r, decodeOutline2d)
	if derr != nil {
		return nil, derr
	}
	g.LiteBuildingOutlines, derr = decodeList(r, decodeOutline2d)
	if derr != nil {
		return nil, derr
	}
	g.CameraZones, derr = decodeList(r, decodeCameraZone)
	if derr != nil {
		return nil, derr
	}
	g.CivilianDeployments, derr = decodeList(r, decodeDeploymentArea)
	if derr != nil {
		return nil, derr
	}
	g.CivilianShelters, derr = decodeList(r, decodeShelter)
	if derr != nil {
		return nil, derr
	}
	g.Props, derr = decodeList(r, decodeProp)
	if derr != nil {
		return nil, derr
	}
	g.ParticleEmitters, derr = decodeList(r, decodeParticleEmitter)
	if derr != nil {
		return nil, derr
	}
	g.AIHints, derr = readStringList(r)
	if derr != nil {
		return nil, derr
	}
	g.LightProbes, derr = decodeList(r, decodeLightProbe)
	if derr != nil {
		return nil, derr
	}
	g.TerrainStencilTriangles, derr = decodeList(r, decodeTerrainStencilTriangle)
	if derr != nil {
		return nil, derr
	}
	g.PointLights, derr = decodeList(r, decodePointLight)
	if derr != nil {
		return nil, derr
	}
	g.BuildingProjectileEmitters, derr = decodeList(r, decodeProp)
	if derr != nil {
		return nil, derr
	}
	g.PlayableArea, derr = decodeRectangle(r)
	if derr != nil {
		return nil, derr
	}
	g.CustomMaterialMeshes, derr = decodeList(r, decodeMaterialMeshOverride)
	if derr != nil {
		return nil, derr
	}
	g.TerrainStencilBlendTriangles, derr = decodeList(r, decodeTerrainStencilTriangle)
	if derr != nil {
		return nil, derr
	}
	g.SpotLights, derr = decodeList(r, decodeSpotLight)
	if derr != nil {
		return nil, derr
	}
	g.SoundShapes, derr = decodeList(r, decodeSoundShape)
	if derr != nil {
		return nil, derr
	}
	g.CompositeScenes, derr = decodeList(r, decodeCompositeSceneReference)
	if derr != nil {
		return nil, derr
	}
	g.DeploymentAreas, derr = decodeList(r, decodeDeploymentArea)
	if derr != nil {
		return nil, derr
	}
	g.BmdCatchmentAreas, derr = decodeList(r, decodeBmdCatchmentArea)
	if derr != nil {
		return nil, derr
	}
	g.ToggleableBuildingsSlots, derr = decodeList(r, decodeToggleableBuildingsSlot)
	if derr != nil {
		return nil, derr
	}
	g.TerrainDecals, derr = decodeList(r, decodeTerrainDecal)
	if derr != nil {
		return nil, derr
	}
	// No known file carries element data after this count, and the
	// element layout is undocumented. The raw count is kept and re-emitted
	// verbatim instead of zeroed, so a Pack with content here still
	// round-trips byte-exact.
	g.TreeListReferenceCount, derr = r.ReadU32()
	if derr != nil {
		return nil, derr
	}
	g.GrassListReferences, derr = readStringList(r)
	if derr != nil {
		return nil, derr
	}
	g.WaterOutlines, derr = decodeList(r, decodeOutline2d)
	if derr != nil {
		return nil, derr
	}

	return g, nil
}

func (Codec) Encode(w *bytecursor.Writer, g *SceneGraph, _ *extradata.EncodeExtraData) error {
	if g.Version != 27 {
		return &errs.UnsupportedVersion{TypeName: "scenegraph", Version: int64(g.Version)}
	}
	w.WriteU32(g.Version)

	steps := []func() error{
		func() error { return encodeList(w, g.BattlefieldBuildings, encodeBuildingElem) },
		func() error { return encodeList(w, g.BattlefieldBuildingsFar, encodeBuildingElem) },
		func() error { return encodeList(w, g.CaptureLocationSets, encodeCaptureLocationGroupElem) },
		func() error { return encodeList(w, g.EFLines, encodeLinePointElem) },
		func() error { return encodeList(w, g.GoOutlines, encodeOutline2dElem) },
		func() error { return encodeList(w, g.NonTerrainOutlines, encodeOutline2dElem) },
		func() error { return encodeList(w, g.ZonesTemplate, encodeZoneTemplateElem) },
		func() error { return encodeList(w, g.PrefabInstances, encodePrefabInstanceElem) },
		func() error { return encodeList(w, g.BmdOutlines, encodeOutline2dElem) },
		func() error { return encodeList(w, g.TerrainOutlines, encodeOutline2dElem) },
		func() error { return encodeList(w, g.LiteBuildingOutlines, encodeOutline2dElem) },
		func() error { return encodeList(w, g.CameraZones, encodeCameraZoneElem) },
		func() error { return encodeList(w, g.CivilianDeployments, encodeDeploymentAreaElem) },
		func() error { return encodeList(w, g.CivilianShelters, encodeShelterElem) },
		func() error { return encodeList(w, g.Props, encodePropElem) },
		func() error { return encodeList(w, g.ParticleEmitters, encodeParticleEmitterElem) },
		func() error { writeStringList(w, g.AIHints); return nil },
		func() error { return encodeList(w, g.LightProbes, encodeLightProbeElem) },
		func() error { return encodeList(w, g.TerrainStencilTriangles, encodeTerrainStencilTriangleElem) },
		func() error { return encodeList(w, g.PointLights, encodePointLightElem) },
		func() error { return encodeList(w, g.BuildingProjectileEmitters, encodePropElem) },
		func() error { g.PlayableArea.encode(w); return nil },
		func() error { return encodeList(w, g.CustomMaterialMeshes, encodeMaterialMeshOverrideElem) },
		func() error { return encodeList(w, g.TerrainStencilBlendTriangles, encodeTerrainStencilTriangleElem) },
		func() error { return encodeList(w, g.SpotLights, encodeSpotLightElem) },
		func() error { return encodeList(w, g.SoundShapes, encodeSoundShapeElem) },
		func() error { return encodeList(w, g.CompositeScenes, encodeCompositeSceneReferenceElem) },
		func() error { return encodeList(w, g.DeploymentAreas, encodeDeploymentAreaElem) },
		func() error { return encodeList(w, g.BmdCatchmentAreas, encodeBmdCatchmentAreaElem) },
		func() error { return encodeList(w, g.ToggleableBuildingsSlots, encodeToggleableBuildingsSlotElem) },
		func() error { return encodeList(w, g.TerrainDecals, encodeTerrainDecalElem) },
		func() error { w.WriteU32(g.TreeListReferenceCount); return nil },
		func() error { writeStringList(w, g.GrassListReferences); return nil },
		func() error { return encodeList(w, g.WaterOutlines, encodeOutline2dElem) },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
