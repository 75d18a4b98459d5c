package pack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/filetype"
)

func TestPatchSiegeAIReplacesMarkerWhenAreaNodePresent(t *testing.T) {
	require := require.New(t)

	p := New(PFH5)
	data := []byte("xxxAIH_SIEGE_AREA_NODExxxAIH_DEFENSIVE_HILLxxx")
	require.NoError(p.Insert(NewRawRecord(
		"terrain/tiles/battle/_assembly_kit/bmd_data.bin", filetype.SceneGraph, data)))
	require.NoError(p.Insert(NewRawRecord(
		"terrain/tiles/battle/_assembly_kit/leftover.xml", filetype.Unknown, []byte("<xml/>"))))

	result, err := p.PatchSiegeAI()
	require.NoError(err)
	require.Equal(1, result.FilesPatched)
	require.Equal([]string{"terrain/tiles/battle/_assembly_kit/leftover.xml"}, result.FilesDeleted)
	require.False(result.MultipleDefensiveHillHints)

	require.False(p.Has("terrain/tiles/battle/_assembly_kit/leftover.xml"))

	rec, ok := p.File("terrain/tiles/battle/_assembly_kit/bmd_data.bin")
	require.True(ok)
	patched, err := rec.RawBytes(false)
	require.NoError(err)
	require.Contains(string(patched), "AIH_FORT_PERIMETER")
	require.NotContains(string(patched), "AIH_DEFENSIVE_HILL")
}

func TestPatchSiegeAISkipsFileWithoutAreaNode(t *testing.T) {
	require := require.New(t)

	p := New(PFH5)
	data := []byte("xxxAIH_DEFENSIVE_HILLxxx")
	require.NoError(p.Insert(NewRawRecord(
		"terrain/tiles/battle/_assembly_kit/bmd_data.bin", filetype.SceneGraph, data)))

	_, err := p.PatchSiegeAI()
	require.ErrorIs(err, errs.ErrSiegeAINoPatchableFiles)
}

func TestPatchSiegeAIWarnsOnMultipleHints(t *testing.T) {
	require := require.New(t)

	p := New(PFH5)
	data := []byte("AIH_SIEGE_AREA_NODE AIH_DEFENSIVE_HILL ... AIH_DEFENSIVE_HILL")
	require.NoError(p.Insert(NewRawRecord(
		"terrain/tiles/battle/_assembly_kit/catchment_01.bin", filetype.SceneGraph, data)))

	result, err := p.PatchSiegeAI()
	require.NoError(err)
	require.Equal(1, result.FilesPatched)
	require.True(result.MultipleDefensiveHillHints)
	require.Contains(result.Summary(), "WARNING")
}

func TestPatchSiegeAIEmptyPack(t *testing.T) {
	require := require.New(t)
	p := New(PFH5)
	_, err := p.PatchSiegeAI()
	require.ErrorIs(err, errs.ErrSiegeAIEmptyPack)
}
