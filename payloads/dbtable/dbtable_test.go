package dbtable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/schema"
	"github.com/twtools/packlib/table"
)

func unitDefinition() *schema.Definition {
	return &schema.Definition{
		Version: 1,
		Fields: []schema.Field{
			{Name: "key", Kind: schema.FieldStringU8, IsKey: true},
			{Name: "cost", Kind: schema.FieldI32},
		},
	}
}

func buildSchema() *schema.Schema {
	def := unitDefinition()
	return schema.New([]*schema.TableDefinitions{
		{Name: "land_units_tables", Definitions: []schema.Definition{*def}},
	})
}

func TestDBRoundTrip(t *testing.T) {
	require := require.New(t)

	def := unitDefinition()
	tbl := &table.Table{
		Name:       "land_units_tables",
		Definition: def,
		Rows: []table.Row{
			{
				{Kind: schema.FieldStringU8, Str: "swordsmen"},
				{Kind: schema.FieldI32, I32: 120},
			},
		},
	}
	db := &DB{MysteriousByte: true, GUID: "test-guid", Table: tbl}

	ed, err := extradata.NewEncode()
	require.NoError(err)

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, db, ed))

	sch := buildSchema()
	rEd, err := extradata.New(extradata.WithSchema(sch), extradata.WithTableName("land_units_tables"))
	require.NoError(err)

	r := bytecursor.NewReader(w.Bytes())
	decoded, err := Codec{}.Decode(r, rEd)
	require.NoError(err)
	require.Equal(db.MysteriousByte, decoded.MysteriousByte)
	require.Equal(db.GUID, decoded.GUID)
	require.Equal(tbl.Rows, decoded.Table.Rows)
}

func TestDBEncodeOmitsGUIDForEmpireAndNapoleon(t *testing.T) {
	require := require.New(t)

	def := unitDefinition()
	tbl := &table.Table{
		Name:       "land_units_tables",
		Definition: def,
		Rows: []table.Row{
			{
				{Kind: schema.FieldStringU8, Str: "swordsmen"},
				{Kind: schema.FieldI32, I32: 120},
			},
		},
	}
	db := &DB{MysteriousByte: true, GUID: "test-guid", Table: tbl}

	ed, err := extradata.NewEncode(extradata.WithEncodeGameIdentity(extradata.GameNapoleon))
	require.NoError(err)

	w := bytecursor.NewWriter()
	require.NoError(Codec{}.Encode(w, db, ed))

	sch := buildSchema()
	rEd, err := extradata.New(extradata.WithSchema(sch), extradata.WithTableName("land_units_tables"))
	require.NoError(err)

	decoded, err := Codec{}.Decode(bytecursor.NewReader(w.Bytes()), rEd)
	require.NoError(err)
	require.Empty(decoded.GUID)
	require.Equal(tbl.Rows, decoded.Table.Rows)
}

func TestDBDecodeRejectsTooShort(t *testing.T) {
	sch := buildSchema()
	ed, err := extradata.New(extradata.WithSchema(sch), extradata.WithTableName("land_units_tables"))
	require.NoError(t, err)

	r := bytecursor.NewReader([]byte{1, 2})
	_, err = Codec{}.Decode(r, ed)
	require.Error(t, err)
}
