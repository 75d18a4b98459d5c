// Package dbtable implements the DB payload: a thin framing header (an
// optional GUID, an optional version marker, a "mysterious" bool, and a row
// count) wrapped around the generic tabular-data engine in package table.
package dbtable

import (
	"github.com/google/uuid"

	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
	"github.com/twtools/packlib/schema"
	"github.com/twtools/packlib/table"
)

var (
	guidMarker    = [4]byte{0xFD, 0xFE, 0xFC, 0xFF}
	versionMarker = [4]byte{0xFC, 0xFD, 0xFE, 0xFF}
)

const minHeaderSize = 5

// DB is a decoded DB table payload: the generic Table plus the framing
// fields the container format stores alongside it.
type DB struct {
	MysteriousByte bool
	GUID           string
	Table          *table.Table
}

func (DB) Kind() filetype.Kind { return filetype.DB }

// Codec implements codec.TypedFileCodec for DB tables.
type Codec struct{}

// Decode reads the framing header then hands the remaining bytes to the
// generic table engine (table.Decode), using ed.Schema()/ed.TableName() to
// resolve the row definition and ed.DataSize() minus the consumed header
// bytes is not required: table.Decode reads exactly rowCount rows and
// verifies the cursor lands on end-of-stream itself.
func (Codec) Decode(r *bytecursor.Reader, ed *extradata.ExtraData) (*DB, error) {
	if ed == nil {
		return nil, errs.ErrMissingExtraData
	}
	sch, ok := ed.Schema()
	if !ok {
		return nil, &errs.MissingExtraDataField{Field: "schema"}
	}
	tableName, ok := ed.TableName()
	if !ok {
		return nil, &errs.MissingExtraDataField{Field: "table_name"}
	}

	if r.Remaining() < minHeaderSize {
		return nil, &errs.PayloadCorrupt{TypeName: "db", Detail: "too short to be a DB table"}
	}

	guid, err := readGUID(r)
	if err != nil {
		return nil, err
	}
	version, err := readVersion(r)
	if err != nil {
		return nil, err
	}
	mysterious, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	rowCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	rest, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, err
	}

	t, err := table.Decode(rest, tableName, version, rowCount, sch)
	if err != nil {
		return nil, err
	}

	return &DB{MysteriousByte: mysterious, GUID: guid, Table: t}, nil
}

func readGUID(r *bytecursor.Reader) (string, error) {
	peek, err := r.ReadBytes(4)
	if err != nil {
		return "", err
	}
	if [4]byte(peek) != guidMarker {
		r.Seek(r.Pos() - 4)
		return "", nil
	}
	return r.ReadStringU16Long()
}

func readVersion(r *bytecursor.Reader) (int32, error) {
	peek, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	if [4]byte(peek) != versionMarker {
		r.Seek(r.Pos() - 4)
		return 0, nil
	}
	v, err := r.ReadI32()
	return v, err
}

// Encode writes the GUID marker and GUID for every game except Napoleon
// and Empire, whose titles crash on tables carrying one, and the version
// marker only for versioned definitions (version > 0).
func (Codec) Encode(w *bytecursor.Writer, db *DB, ed *extradata.EncodeExtraData) error {
	tableHasGUID := true
	regenerate := false
	if ed != nil {
		regenerate = ed.RegenerateTableGUID()
		switch ed.GameIdentity() {
		case extradata.GameEmpire, extradata.GameNapoleon:
			tableHasGUID = false
		}
	}

	if tableHasGUID {
		w.WriteBytes(guidMarker[:])
		guid := db.GUID
		if regenerate || guid == "" {
			guid = uuid.NewString()
		}
		w.WriteStringU16Long(guid)
	}

	if db.Table.Definition != nil && db.Table.Definition.Version > 0 {
		w.WriteBytes(versionMarker[:])
		w.WriteI32(db.Table.Definition.Version)
	}

	w.WriteBool(db.MysteriousByte)
	w.WriteU32(uint32(len(db.Table.Rows))) //nolint:gosec

	w.WriteBytes(table.Encode(db.Table))
	return nil
}

// New builds an empty DB table for the given definition. The mysterious
// byte defaults to true, which is what every shipped table carries.
func New(def *schema.Definition, tableName string) *DB {
	return &DB{
		MysteriousByte: true,
		Table:          &table.Table{Name: tableName, Definition: def},
	}
}
