package table

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/schema"
)

// Decode reads rowCount rows from data against the matching Definition.
//
// version == 0 triggers the auto-detection loop: every
// candidate definition declared with version < 1 for tableName is tried in
// schema order; the first that decodes rowCount rows and lands exactly on
// end-of-stream is adopted. Any explicit version must match exactly.
func Decode(data []byte, tableName string, version int32, rowCount uint32, sch *schema.Schema) (*Table, error) {
	tdefs, ok := sch.Table(tableName)
	if !ok {
		return nil, errs.ErrSchemaDefinitionNotFound
	}

	patches := sch.PatchesForTable(tableName)

	if version == 0 {
		for _, def := range tdefs.AutoVersionCandidates() {
			r := bytecursor.NewReader(data)
			rows, err := decodeRows(r, def, rowCount)
			if err == nil && r.AtEnd() {
				return &Table{Name: tableName, Definition: def, Patches: patches, Rows: rows}, nil
			}
		}
		return nil, errs.ErrSchemaDefinitionNotFound
	}

	def, ok := tdefs.ByVersion(version)
	if !ok {
		return nil, &errs.UnsupportedVersion{TypeName: tableName, Version: int64(version)}
	}

	r := bytecursor.NewReader(data)
	rows, err := decodeRows(r, def, rowCount)
	if err != nil {
		return nil, err
	}
	if !r.AtEnd() {
		return nil, &errs.MismatchSize{Expected: int64(len(data)), Got: r.Pos()}
	}
	return &Table{Name: tableName, Definition: def, Patches: patches, Rows: rows}, nil
}

func decodeRows(r *bytecursor.Reader, def *schema.Definition, rowCount uint32) ([]Row, error) {
	rows := make([]Row, 0, rowCount)
	for i := uint32(0); i < rowCount; i++ {
		row, err := DecodeRow(r, def)
		if err != nil {
			return nil, &errs.IncompleteTable{Detail: err.Error(), Partial: &Table{Definition: def, Rows: rows}}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DecodeRow reads one row, one field at a time, in definition order.
func DecodeRow(r *bytecursor.Reader, def *schema.Definition) (Row, error) {
	row := make(Row, len(def.Fields))
	for i, f := range def.Fields {
		cell, err := decodeCell(r, f)
		if err != nil {
			return nil, err
		}
		row[i] = cell
	}
	return row, nil
}

func decodeCell(r *bytecursor.Reader, f schema.Field) (Cell, error) {
	switch f.Kind {
	case schema.FieldBoolean:
		v, err := r.ReadBool()
		return Cell{Kind: f.Kind, Bool: v}, err
	case schema.FieldI16:
		v, err := r.ReadI16()
		return Cell{Kind: f.Kind, I16: v}, err
	case schema.FieldI32:
		v, err := r.ReadI32()
		return Cell{Kind: f.Kind, I32: v}, err
	case schema.FieldI64:
		v, err := r.ReadI64()
		return Cell{Kind: f.Kind, I64: v}, err
	case schema.FieldF32:
		v, err := r.ReadF32()
		return Cell{Kind: f.Kind, F32: v}, err
	case schema.FieldF64:
		v, err := r.ReadF64()
		return Cell{Kind: f.Kind, F64: v}, err
	case schema.FieldColourRGB:
		v, err := r.ReadI32()
		return Cell{Kind: f.Kind, I32: v}, err
	case schema.FieldStringU8:
		v, err := r.ReadStringU8()
		return Cell{Kind: f.Kind, Str: v}, err
	case schema.FieldStringU16:
		v, err := r.ReadStringU16()
		return Cell{Kind: f.Kind, Str: v}, err
	case schema.FieldOptionalStringU8:
		present, err := r.ReadBool()
		if err != nil {
			return Cell{}, err
		}
		if !present {
			return Cell{Kind: f.Kind}, nil
		}
		v, err := r.ReadStringU8()
		return Cell{Kind: f.Kind, Str: v, Present: true}, err
	case schema.FieldOptionalStringU16:
		present, err := r.ReadBool()
		if err != nil {
			return Cell{}, err
		}
		if !present {
			return Cell{Kind: f.Kind}, nil
		}
		v, err := r.ReadStringU16()
		return Cell{Kind: f.Kind, Str: v, Present: true}, err
	case schema.FieldOptionalI32:
		present, err := r.ReadBool()
		if err != nil {
			return Cell{}, err
		}
		if !present {
			return Cell{Kind: f.Kind}, nil
		}
		v, err := r.ReadI32()
		return Cell{Kind: f.Kind, I32: v, Present: true}, err
	case schema.FieldSequenceU16, schema.FieldSequenceU32:
		return decodeSequence(r, f)
	case schema.FieldList:
		return Cell{}, &errs.UnsupportedFieldType{Kind: f.Kind.String()}
	default:
		return Cell{}, &errs.UnsupportedFieldType{Kind: f.Kind.String()}
	}
}

func decodeSequence(r *bytecursor.Reader, f schema.Field) (Cell, error) {
	var count uint32
	if f.Kind == schema.FieldSequenceU16 {
		v, err := r.ReadU16()
		if err != nil {
			return Cell{}, err
		}
		count = uint32(v)
	} else {
		v, err := r.ReadU32()
		if err != nil {
			return Cell{}, err
		}
		count = v
	}

	seq := make([]Row, 0, count)
	for i := uint32(0); i < count; i++ {
		row, err := DecodeRow(r, f.Nested)
		if err != nil {
			return Cell{}, err
		}
		seq = append(seq, row)
	}
	return Cell{Kind: f.Kind, Seq: seq}, nil
}
