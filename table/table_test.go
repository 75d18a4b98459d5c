package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/schema"
)

func unitDefinition() *schema.Definition {
	return &schema.Definition{
		Version: 1,
		Fields: []schema.Field{
			{Name: "key", Kind: schema.FieldStringU8, IsKey: true},
			{Name: "health", Kind: schema.FieldI32},
			{Name: "is_mount", Kind: schema.FieldBoolean},
		},
	}
}

func buildSchema(def *schema.Definition) *schema.Schema {
	return schema.New([]*schema.TableDefinitions{{Name: "land_units_tables", Definitions: []schema.Definition{*def}}})
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	require := require.New(t)
	def := unitDefinition()
	sch := buildSchema(def)

	row1 := Row{{Kind: schema.FieldStringU8, Str: "swordsmen"}, {Kind: schema.FieldI32, I32: 120}, {Kind: schema.FieldBoolean, Bool: false}}
	row2 := Row{{Kind: schema.FieldStringU8, Str: "cavalry"}, {Kind: schema.FieldI32, I32: 90}, {Kind: schema.FieldBoolean, Bool: true}}
	original := &Table{Name: "land_units_tables", Definition: def, Rows: []Row{row1, row2}}

	encoded := Encode(original)
	decoded, err := Decode(encoded, "land_units_tables", 1, 2, sch)
	require.NoError(err)
	require.Equal(original.Rows, decoded.Rows)

	reencoded := Encode(decoded)
	require.Equal(encoded, reencoded)
}

func TestDecodeAutoVersionDetection(t *testing.T) {
	require := require.New(t)

	v0 := schema.Definition{Version: 0, Fields: []schema.Field{{Name: "key", Kind: schema.FieldStringU8}}}
	v1 := schema.Definition{Version: 0, Fields: []schema.Field{{Name: "key", Kind: schema.FieldStringU8}, {Name: "extra", Kind: schema.FieldI32}}}
	sch := schema.New([]*schema.TableDefinitions{{Name: "t", Definitions: []schema.Definition{v0, v1}}})

	row := Row{{Kind: schema.FieldStringU8, Str: "x"}, {Kind: schema.FieldI32, I32: 5}}
	data := Encode(&Table{Definition: &v1, Rows: []Row{row}})

	decoded, err := Decode(data, "t", 0, 1, sch)
	require.NoError(err)
	require.Len(decoded.Definition.Fields, 2)
}

func TestTSVRoundTrip(t *testing.T) {
	require := require.New(t)
	def := unitDefinition()

	tbl := &Table{
		Name:       "land_units_tables",
		Definition: def,
		Rows: []Row{
			{{Kind: schema.FieldStringU8, Str: "pike\tmen"}, {Kind: schema.FieldI32, I32: 80}, {Kind: schema.FieldBoolean, Bool: false}},
		},
	}

	tsv := TSVExport(tbl)
	imported, err := TSVImport(tsv, "land_units_tables", 1, def)
	require.NoError(err)
	require.Equal(tbl.Rows, imported.Rows)
}

func TestTSVMergedRGBAndFlagSplitRoundTrip(t *testing.T) {
	require := require.New(t)

	def := &schema.Definition{Version: 1, Fields: []schema.Field{
		{Name: "key", Kind: schema.FieldStringU8, IsKey: true},
		{Name: "colour_r", Kind: schema.FieldI32, Recipe: schema.RecipeMergedRGB, MergedGroup: "banner_colour"},
		{Name: "colour_g", Kind: schema.FieldI32, Recipe: schema.RecipeMergedRGB, MergedGroup: "banner_colour"},
		{Name: "colour_b", Kind: schema.FieldI32, Recipe: schema.RecipeMergedRGB, MergedGroup: "banner_colour"},
		{Name: "bits", Kind: schema.FieldI32, Recipe: schema.RecipeFlagSplit, FlagWidth: 3},
	}}

	tbl := &Table{
		Name:       "land_units_tables",
		Definition: def,
		Rows: []Row{
			{
				{Kind: schema.FieldStringU8, Str: "swordsmen"},
				{Kind: schema.FieldI32, I32: 0x11},
				{Kind: schema.FieldI32, I32: 0x22},
				{Kind: schema.FieldI32, I32: 0x33},
				{Kind: schema.FieldI32, I32: 0b101},
			},
		},
	}

	tsv := TSVExport(tbl)
	require.Contains(tsv, "banner_colour\tbits_0\tbits_1\tbits_2")
	require.Contains(tsv, "#112233\ttrue\tfalse\ttrue")

	imported, err := TSVImport(tsv, "land_units_tables", 1, def)
	require.NoError(err)
	require.Equal(tbl.Rows, imported.Rows)
}

func TestTSVImportRejectsUnknownColumn(t *testing.T) {
	def := unitDefinition()
	tsv := "#land_units_tables v1\nkey\tbogus\nx\ty\n"
	_, err := TSVImport(tsv, "land_units_tables", 1, def)
	require.Error(t, err)
}

func TestCascadeEditRewritesReferencingColumn(t *testing.T) {
	require := require.New(t)

	catDef := schema.Definition{Version: 1, Fields: []schema.Field{{Name: "key", Kind: schema.FieldStringU8, IsKey: true}}}
	unitDef := schema.Definition{Version: 1, Fields: []schema.Field{
		{Name: "key", Kind: schema.FieldStringU8, IsKey: true},
		{Name: "unit_category", Kind: schema.FieldStringU8, ReferenceTable: "unit_category_tables", ReferenceColumn: "key"},
	}}

	sch := schema.New([]*schema.TableDefinitions{
		{Name: "unit_category_tables", Definitions: []schema.Definition{catDef}},
		{Name: "land_units_tables", Definitions: []schema.Definition{unitDef}},
	})

	tables := map[string]*Table{
		"unit_category_tables": {Name: "unit_category_tables", Definition: &catDef, Rows: []Row{
			{{Kind: schema.FieldStringU8, Str: "inf"}},
		}},
		"land_units_tables": {Name: "land_units_tables", Definition: &unitDef, Rows: []Row{
			{{Kind: schema.FieldStringU8, Str: "swordsmen"}, {Kind: schema.FieldStringU8, Str: "inf"}},
		}},
	}

	oldVal := Cell{Kind: schema.FieldStringU8, Str: "inf"}
	newVal := Cell{Kind: schema.FieldStringU8, Str: "infantry"}
	affected := CascadeEdit(sch.Graph(), tables, nil, "unit_category_tables", "key", oldVal, newVal)

	require.ElementsMatch([]string{"unit_category_tables", "land_units_tables"}, affected)
	require.Equal("infantry", tables["land_units_tables"].Rows[0][1].Str)
}

func TestCascadeEditStartsAtReferencingColumn(t *testing.T) {
	require := require.New(t)

	catDef := schema.Definition{Version: 1, Fields: []schema.Field{{Name: "key", Kind: schema.FieldStringU8, IsKey: true}}}
	unitDef := schema.Definition{Version: 1, Fields: []schema.Field{
		{Name: "key", Kind: schema.FieldStringU8, IsKey: true},
		{Name: "unit_category", Kind: schema.FieldStringU8, ReferenceTable: "unit_category_tables", ReferenceColumn: "key"},
	}}
	bannerDef := schema.Definition{Version: 1, Fields: []schema.Field{
		{Name: "category", Kind: schema.FieldStringU8, ReferenceTable: "unit_category_tables", ReferenceColumn: "key"},
	}}

	sch := schema.New([]*schema.TableDefinitions{
		{Name: "unit_category_tables", Definitions: []schema.Definition{catDef}},
		{Name: "land_units_tables", Definitions: []schema.Definition{unitDef}},
		{Name: "banner_tables", Definitions: []schema.Definition{bannerDef}},
	})

	tables := map[string]*Table{
		"unit_category_tables": {Name: "unit_category_tables", Definition: &catDef, Rows: []Row{
			{{Kind: schema.FieldStringU8, Str: "inf"}},
		}},
		"land_units_tables": {Name: "land_units_tables", Definition: &unitDef, Rows: []Row{
			{{Kind: schema.FieldStringU8, Str: "swordsmen"}, {Kind: schema.FieldStringU8, Str: "inf"}},
		}},
		"banner_tables": {Name: "banner_tables", Definition: &bannerDef, Rows: []Row{
			{{Kind: schema.FieldStringU8, Str: "inf"}},
		}},
	}

	// The edit starts at land_units' FK column: it must resolve to the
	// category key table and close over every table referencing it.
	oldVal := Cell{Kind: schema.FieldStringU8, Str: "inf"}
	newVal := Cell{Kind: schema.FieldStringU8, Str: "infantry"}
	affected := CascadeEdit(sch.Graph(), tables, nil, "land_units_tables", "unit_category", oldVal, newVal)

	require.ElementsMatch([]string{"unit_category_tables", "land_units_tables", "banner_tables"}, affected)
	require.Equal("infantry", tables["unit_category_tables"].Rows[0][0].Str)
	require.Equal("infantry", tables["land_units_tables"].Rows[0][1].Str)
	require.Equal("infantry", tables["banner_tables"].Rows[0][0].Str)
}

func TestCascadeEditNoOpWhenEqual(t *testing.T) {
	sch := schema.New(nil)
	affected := CascadeEdit(sch.Graph(), map[string]*Table{}, nil, "t", "c", Cell{Kind: schema.FieldI32, I32: 1}, Cell{Kind: schema.FieldI32, I32: 1})
	require.Nil(t, affected)
}

type fakeLocaleEntry struct{ key string }

func (e *fakeLocaleEntry) LocaleKey() string     { return e.key }
func (e *fakeLocaleEntry) SetLocaleKey(k string) { e.key = k }

func TestCascadeEditRewritesComposedLocaleKeys(t *testing.T) {
	require := require.New(t)

	unitDef := schema.Definition{Version: 1, Fields: []schema.Field{
		{Name: "key", Kind: schema.FieldStringU8, IsKey: true},
		{Name: "onscreen_name", Kind: schema.FieldStringU8, IsLocKey: true},
	}}
	sch := schema.New([]*schema.TableDefinitions{
		{Name: "land_units_tables", Definitions: []schema.Definition{unitDef}},
	})

	tables := map[string]*Table{
		"land_units_tables": {Name: "land_units_tables", Definition: &unitDef, Rows: []Row{
			{{Kind: schema.FieldStringU8, Str: "swordsmen"}, {Kind: schema.FieldStringU8, Str: "Swordsmen"}},
		}},
	}
	locEntries := []LocaleEntry{
		&fakeLocaleEntry{key: "land_units_onscreen_name_swordsmen"},
		&fakeLocaleEntry{key: "some_other_key"},
	}

	oldVal := Cell{Kind: schema.FieldStringU8, Str: "swordsmen"}
	newVal := Cell{Kind: schema.FieldStringU8, Str: "swordsmen_2"}
	affected := CascadeEdit(sch.Graph(), tables, locEntries, "land_units_tables", "key", oldVal, newVal)

	require.ElementsMatch([]string{"land_units_tables"}, affected)
	require.Equal("land_units_onscreen_name_swordsmen_2", locEntries[0].LocaleKey())
	require.Equal("some_other_key", locEntries[1].LocaleKey())
}

func TestMergeConcatenatesRows(t *testing.T) {
	require := require.New(t)
	def := unitDefinition()

	a := &Table{Name: "land_units_tables", Definition: def, Rows: []Row{
		{{Kind: schema.FieldStringU8, Str: "a"}, {Kind: schema.FieldI32, I32: 1}, {Kind: schema.FieldBoolean}},
	}}
	b := &Table{Name: "land_units_tables", Definition: def, Rows: []Row{
		{{Kind: schema.FieldStringU8, Str: "b"}, {Kind: schema.FieldI32, I32: 2}, {Kind: schema.FieldBoolean}},
	}}

	merged, err := Merge([]*Table{a, b})
	require.NoError(err)
	require.Len(merged.Rows, 2)
}

func TestMergeCarriesBasePatches(t *testing.T) {
	require := require.New(t)
	def := unitDefinition()

	patches := schema.DefinitionPatch{"health": {"default_value": "50"}}
	a := &Table{Name: "land_units_tables", Definition: def, Patches: patches, Rows: []Row{
		{{Kind: schema.FieldStringU8, Str: "a"}, {Kind: schema.FieldI32, I32: 1}, {Kind: schema.FieldBoolean}},
	}}

	// b lacks the health column entirely; its rebased rows take the
	// patched default.
	shortDef := &schema.Definition{Version: 1, Fields: []schema.Field{
		{Name: "key", Kind: schema.FieldStringU8, IsKey: true},
	}}
	b := &Table{Name: "land_units_tables", Definition: shortDef, Rows: []Row{
		{{Kind: schema.FieldStringU8, Str: "b"}},
	}}

	merged, err := Merge([]*Table{a, b})
	require.NoError(err)
	require.Equal(patches, merged.Patches)
	require.EqualValues(50, merged.Rows[1][1].I32)
}

func TestNewRowAppliesPatchedDefault(t *testing.T) {
	require := require.New(t)
	def := unitDefinition()

	row := NewRow(def, schema.DefinitionPatch{"health": {"default_value": "75"}})
	require.EqualValues(75, row[1].I32)

	row = NewRow(def, nil)
	require.EqualValues(0, row[1].I32)
}

func TestMergeRejectsNameMismatch(t *testing.T) {
	def := unitDefinition()
	a := &Table{Name: "land_units_tables", Definition: def}
	b := &Table{Name: "other_tables", Definition: def}
	_, err := Merge([]*Table{a, b})
	require.Error(t, err)
}
