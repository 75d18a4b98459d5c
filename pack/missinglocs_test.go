package pack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/filetype"
	"github.com/twtools/packlib/payloads/dbtable"
	"github.com/twtools/packlib/payloads/loc"
	"github.com/twtools/packlib/schema"
	"github.com/twtools/packlib/table"
)

func landUnitsSchema() *schema.Schema {
	def := schema.Definition{
		Version: 1,
		Fields: []schema.Field{
			{Name: "key", Kind: schema.FieldStringU8, IsKey: true},
			{Name: "onscreen_name", Kind: schema.FieldStringU8, IsLocKey: true},
		},
	}
	return schema.New([]*schema.TableDefinitions{
		{Name: "land_units_tables", Definitions: []schema.Definition{def}},
	})
}

func encodedDBRecord(t *testing.T, def *schema.Definition, keys []string) []byte {
	t.Helper()
	db := dbtable.New(def, "land_units_tables")
	for _, k := range keys {
		row := table.NewRow(def, nil)
		row[0] = table.Cell{Kind: schema.FieldStringU8, Str: k}
		row[1] = table.Cell{Kind: schema.FieldStringU8, Str: "Unnamed"}
		db.Table.Rows = append(db.Table.Rows, row)
	}

	w := bytecursor.NewWriter()
	require.NoError(t, dbtable.Codec{}.Encode(w, db, nil))
	return w.Bytes()
}

func TestSynthesizeMissingLocalesEmitsPlaceholders(t *testing.T) {
	require := require.New(t)

	sch := landUnitsSchema()
	def, ok := sch.Table("land_units_tables")
	require.True(ok)

	p := New(PFH5)
	require.NoError(p.Insert(NewRawRecord(
		"db/land_units_tables/data__", filetype.DB, encodedDBRecord(t, &def.Definitions[0], []string{"unit_spearmen", "unit_archers"}))))

	locW := bytecursor.NewWriter()
	existing := &loc.Table{Version: 1, Entries: []loc.Entry{{Key: "land_units_onscreen_name_unit_spearmen", Text: "Spearmen"}}}
	require.NoError(loc.Codec{}.Encode(locW, existing, nil))
	require.NoError(p.Insert(NewRawRecord("text/names.loc", filetype.Loc, locW.Bytes())))

	rec, err := p.SynthesizeMissingLocales(sch)
	require.NoError(err)
	require.NotNil(rec)
	require.Equal(MissingLocsPath, rec.Path())

	payload, err := p.Decode(MissingLocsPath, nil)
	require.NoError(err)
	missing := payload.(*loc.Table)
	require.Len(missing.Entries, 1)
	require.Equal("land_units_onscreen_name_unit_archers", missing.Entries[0].Key)
	require.Equal("PLACEHOLDER", missing.Entries[0].Text)
}

func TestSynthesizeMissingLocalesNoGapReturnsNil(t *testing.T) {
	require := require.New(t)

	sch := landUnitsSchema()
	def, ok := sch.Table("land_units_tables")
	require.True(ok)

	p := New(PFH5)
	require.NoError(p.Insert(NewRawRecord(
		"db/land_units_tables/data__", filetype.DB, encodedDBRecord(t, &def.Definitions[0], []string{"unit_spearmen"}))))

	locW := bytecursor.NewWriter()
	existing := &loc.Table{Version: 1, Entries: []loc.Entry{{Key: "land_units_onscreen_name_unit_spearmen", Text: "Spearmen"}}}
	require.NoError(loc.Codec{}.Encode(locW, existing, nil))
	require.NoError(p.Insert(NewRawRecord("text/names.loc", filetype.Loc, locW.Bytes())))

	rec, err := p.SynthesizeMissingLocales(sch)
	require.NoError(err)
	require.Nil(rec)
}
