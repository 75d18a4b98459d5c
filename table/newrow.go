package table

import (
	"strconv"

	"github.com/twtools/packlib/schema"
)

// NewRow builds a row with each cell set to its field's declared default
// (parsed per type), or the type's zero when no default is declared. A
// non-nil patch's "default_value" attribute overrides the field's own
// default.
func NewRow(def *schema.Definition, patch schema.DefinitionPatch) Row {
	row := make(Row, len(def.Fields))
	for i, f := range def.Fields {
		if v, ok := patch.Attribute(f.Name, "default_value"); ok {
			f.Default = v
		}
		row[i] = defaultCell(f)
	}
	return row
}

func defaultCell(f schema.Field) Cell {
	switch f.Kind {
	case schema.FieldBoolean:
		v, _ := strconv.ParseBool(f.Default)
		return Cell{Kind: f.Kind, Bool: v}
	case schema.FieldI16:
		v, _ := strconv.ParseInt(f.Default, 10, 16)
		return Cell{Kind: f.Kind, I16: int16(v)}
	case schema.FieldI32, schema.FieldColourRGB:
		v, _ := strconv.ParseInt(f.Default, 10, 32)
		return Cell{Kind: f.Kind, I32: int32(v)}
	case schema.FieldI64:
		v, _ := strconv.ParseInt(f.Default, 10, 64)
		return Cell{Kind: f.Kind, I64: v}
	case schema.FieldF32:
		v, _ := strconv.ParseFloat(f.Default, 32)
		return Cell{Kind: f.Kind, F32: float32(v)}
	case schema.FieldF64:
		v, _ := strconv.ParseFloat(f.Default, 64)
		return Cell{Kind: f.Kind, F64: v}
	case schema.FieldStringU8, schema.FieldStringU16:
		return Cell{Kind: f.Kind, Str: f.Default}
	case schema.FieldOptionalStringU8, schema.FieldOptionalStringU16:
		if f.Default == "" {
			return Cell{Kind: f.Kind}
		}
		return Cell{Kind: f.Kind, Str: f.Default, Present: true}
	case schema.FieldOptionalI32:
		if f.Default == "" {
			return Cell{Kind: f.Kind}
		}
		v, _ := strconv.ParseInt(f.Default, 10, 32)
		return Cell{Kind: f.Kind, I32: int32(v), Present: true}
	case schema.FieldSequenceU16, schema.FieldSequenceU32:
		return Cell{Kind: f.Kind}
	default:
		return Cell{Kind: f.Kind}
	}
}
