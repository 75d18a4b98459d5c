package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraphReferencingColumns(t *testing.T) {
	require := require.New(t)

	units := &TableDefinitions{
		Name: "land_units_tables",
		Definitions: []Definition{{
			Version: 1,
			Fields: []Field{
				{Name: "key", Kind: FieldStringU8, IsKey: true},
				{Name: "unit_category", Kind: FieldStringU8, ReferenceTable: "unit_category_tables", ReferenceColumn: "key"},
			},
		}},
	}
	categories := &TableDefinitions{
		Name: "unit_category_tables",
		Definitions: []Definition{{
			Version: 1,
			Fields: []Field{
				{Name: "key", Kind: FieldStringU8, IsKey: true},
			},
		}},
	}

	s := New([]*TableDefinitions{units, categories})

	refs := s.Graph().ReferencingColumns("unit_category_tables", "key")
	require.Len(refs, 1)
	require.Equal("land_units_tables", refs[0].Table)
	require.Equal("unit_category", refs[0].Column)
}

func TestDefinitionByVersion(t *testing.T) {
	require := require.New(t)
	td := &TableDefinitions{
		Name: "t",
		Definitions: []Definition{
			{Version: 0, Fields: []Field{{Name: "a", Kind: FieldI32}}},
			{Version: 1, Fields: []Field{{Name: "a", Kind: FieldI32}, {Name: "b", Kind: FieldI32}}},
		},
	}

	def, ok := td.ByVersion(1)
	require.True(ok)
	require.Len(def.Fields, 2)

	_, ok = td.ByVersion(2)
	require.False(ok)

	require.Len(td.AutoVersionCandidates(), 1)
}

func TestMergeSplitRGB(t *testing.T) {
	require := require.New(t)
	merged := MergeRGB(0x11, 0x22, 0x33)
	require.Equal(int32(0x112233), merged)

	r, g, b := SplitRGB(merged)
	require.Equal(int32(0x11), r)
	require.Equal(int32(0x22), g)
	require.Equal(int32(0x33), b)
}

func TestFlagSplitMergeRoundTrip(t *testing.T) {
	require := require.New(t)
	flags := []bool{true, false, true, true}
	v := MergeFlags(flags)
	out := SplitFlags(v, 4)
	require.Equal(flags, out)
}
