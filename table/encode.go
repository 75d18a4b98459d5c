package table

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/schema"
)

// Encode writes every row in definition order. Primitive writers mirror
// their decode.go readers exactly.
func Encode(t *Table) []byte {
	w := bytecursor.NewWriter()
	for _, row := range t.Rows {
		EncodeRow(w, t.Definition, row)
	}
	return w.Bytes()
}

// EncodeRow writes one row's cells in definition order.
func EncodeRow(w *bytecursor.Writer, def *schema.Definition, row Row) {
	for i, f := range def.Fields {
		encodeCell(w, f, row[i])
	}
}

func encodeCell(w *bytecursor.Writer, f schema.Field, c Cell) {
	switch f.Kind {
	case schema.FieldBoolean:
		w.WriteBool(c.Bool)
	case schema.FieldI16:
		w.WriteI16(c.I16)
	case schema.FieldI32, schema.FieldColourRGB:
		w.WriteI32(c.I32)
	case schema.FieldI64:
		w.WriteI64(c.I64)
	case schema.FieldF32:
		w.WriteF32(c.F32)
	case schema.FieldF64:
		w.WriteF64(c.F64)
	case schema.FieldStringU8:
		w.WriteStringU8(c.Str)
	case schema.FieldStringU16:
		w.WriteStringU16(c.Str)
	case schema.FieldOptionalStringU8:
		w.WriteBool(c.Present)
		if c.Present {
			w.WriteStringU8(c.Str)
		}
	case schema.FieldOptionalStringU16:
		w.WriteBool(c.Present)
		if c.Present {
			w.WriteStringU16(c.Str)
		}
	case schema.FieldOptionalI32:
		w.WriteBool(c.Present)
		if c.Present {
			w.WriteI32(c.I32)
		}
	case schema.FieldSequenceU16:
		w.WriteU16(uint16(len(c.Seq))) //nolint:gosec
		for _, nested := range c.Seq {
			EncodeRow(w, f.Nested, nested)
		}
	case schema.FieldSequenceU32:
		w.WriteU32(uint32(len(c.Seq))) //nolint:gosec
		for _, nested := range c.Seq {
			EncodeRow(w, f.Nested, nested)
		}
	}
}
