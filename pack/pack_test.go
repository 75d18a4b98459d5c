package pack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/filetype"
)

func newTestPack() *Pack {
	p := New(PFH5)
	p.SetDependencies([]string{"data.pack", "models.pack"})
	_ = p.Insert(NewRawRecord("db/land_units_tables/data__", filetype.DB, []byte("db-bytes")))
	_ = p.Insert(NewRawRecord("text/names.loc", filetype.Loc, []byte("loc-bytes")))
	_ = p.Insert(NewRawRecord("ui/icon.png", filetype.Image, []byte("png-bytes")))
	return p
}

func TestRoundTripPreservesPathsAndBytes(t *testing.T) {
	require := require.New(t)

	p := newTestPack()
	raw, err := p.Bytes(WithTestMode(true))
	require.NoError(err)

	reopened, err := Open(raw, WithLazyLoad(false))
	require.NoError(err)

	require.Equal(p.Paths(), reopened.Paths())
	require.Equal(p.Dependencies(), reopened.Dependencies())
	require.Equal(PFH5, reopened.Generation())

	for _, path := range p.Paths() {
		wantRec, _ := p.File(path)
		gotRec, ok := reopened.File(path)
		require.True(ok)

		want, err := wantRec.rawBytes(false)
		require.NoError(err)
		got, err := gotRec.rawBytes(false)
		require.NoError(err)
		require.Equal(want, got)
	}
}

func TestRoundTripAttachesReservedFiles(t *testing.T) {
	require := require.New(t)

	p := newTestPack()
	p.Notes().PackNotes = "hello"
	p.Settings().SetBool("auto_update", true)

	raw, err := p.Bytes()
	require.NoError(err)

	reopened, err := Open(raw, WithLazyLoad(false))
	require.NoError(err)

	require.Equal("hello", reopened.Notes().PackNotes)
	v, ok := reopened.Settings().GetBool("auto_update")
	require.True(ok)
	require.True(v)

	// Reserved files never show up in normal enumeration.
	require.False(reopened.Has(ReservedNotes))
	require.False(reopened.Has(ReservedSettings))
	require.NotContains(reopened.Paths(), ReservedNotes)
}

func TestInsertOrderPreservedAcrossEdits(t *testing.T) {
	require := require.New(t)

	p := New(PFH5)
	require.NoError(p.Insert(NewRawRecord("a.txt", filetype.Unknown, []byte("a"))))
	require.NoError(p.Insert(NewRawRecord("b.txt", filetype.Unknown, []byte("b"))))
	require.NoError(p.Insert(NewRawRecord("c.txt", filetype.Unknown, []byte("c"))))

	require.NoError(p.Remove("b.txt"))
	require.NoError(p.Insert(NewRawRecord("b.txt", filetype.Unknown, []byte("b2"))))

	require.Equal([]string{"a.txt", "c.txt", "b.txt"}, p.Paths())
}

func TestInsertRejectsReservedAndEmptyPaths(t *testing.T) {
	require := require.New(t)

	p := New(PFH5)
	require.ErrorIs(p.Insert(NewRawRecord("", filetype.Unknown, nil)), errs.ErrEmptyDestination)
	require.ErrorIs(p.Insert(NewRawRecord(ReservedNotes, filetype.Unknown, nil)), errs.ErrReservedPath)
}

func TestMoveFolderTakesWholeSubtree(t *testing.T) {
	require := require.New(t)

	p := New(PFH5)
	require.NoError(p.Insert(NewRawRecord("db/old_table/a", filetype.DB, []byte("a"))))
	require.NoError(p.Insert(NewRawRecord("db/old_table/b", filetype.DB, []byte("b"))))
	require.NoError(p.Insert(NewRawRecord("db/old_table_extra/c", filetype.DB, []byte("c"))))

	require.NoError(p.Move("db/old_table", "db/new_table"))

	require.True(p.Has("db/new_table/a"))
	require.True(p.Has("db/new_table/b"))
	require.False(p.Has("db/old_table/a"))
	// A similarly-prefixed sibling folder must not be swept up by the move.
	require.True(p.Has("db/old_table_extra/c"))
}

func TestRenameMovesWithinSameParent(t *testing.T) {
	require := require.New(t)

	p := New(PFH5)
	require.NoError(p.Insert(NewRawRecord("text/names.loc", filetype.Loc, []byte("x"))))
	require.NoError(p.Rename("text/names.loc", "renamed.loc"))

	require.True(p.Has("text/renamed.loc"))
	require.False(p.Has("text/names.loc"))
}

func TestMergeMultipleOverridesByRoleThenPath(t *testing.T) {
	require := require.New(t)

	base := New(PFH5)
	base.SetRole(RoleRelease)
	base.SetDependencies([]string{"z_mod.pack"})
	_ = base.Insert(NewRawRecord("db/shared/a", filetype.DB, []byte("base")))
	baseBytes, err := base.Bytes(WithTestMode(true))
	require.NoError(err)

	override := New(PFH5)
	override.SetRole(RoleMod)
	_ = override.Insert(NewRawRecord("db/shared/a", filetype.DB, []byte("override")))
	_ = override.Insert(NewRawRecord("db/shared/b", filetype.DB, []byte("only-in-mod")))
	overrideBytes, err := override.Bytes(WithTestMode(true))
	require.NoError(err)

	merged, err := MergeMultiple(map[string][]byte{
		"1_base.pack":     baseBytes,
		"2_override.pack": overrideBytes,
	}, WithLazyLoad(false))
	require.NoError(err)

	rec, ok := merged.File("db/shared/a")
	require.True(ok)
	raw, err := rec.rawBytes(false)
	require.NoError(err)
	require.Equal([]byte("override"), raw)

	require.True(merged.Has("db/shared/b"))
	require.Equal(RoleRelease, merged.Role())
	require.Contains(merged.Dependencies(), "z_mod.pack")
}

func TestFilesByTypeAndFolder(t *testing.T) {
	require := require.New(t)

	p := newTestPack()
	dbFiles := p.FilesByType(filetype.DB)
	require.Len(dbFiles, 1)
	require.Equal("db/land_units_tables/data__", dbFiles[0].Path())

	folder := p.FilesByFolder("db/land_units_tables")
	require.Len(folder, 1)
}
