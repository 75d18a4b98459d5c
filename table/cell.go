// Package table implements the schema-driven tabular-data engine shared by
// every table-shaped payload (db tables, locale tables): decode/encode
// against a versioned Definition, TSV round-trip, cascade edits across a
// schema's reference graph, and multi-table merge.
package table

import "github.com/twtools/packlib/schema"

// Cell is one typed value at one row/column. Only the field named by Kind
// is meaningful; the rest are zero. Go has no tagged-union type, so this
// mirrors the struct-of-optional-fields shape the rest of this module uses
// for schema.Field itself.
type Cell struct {
	Kind schema.FieldKind

	Bool bool
	I16  int16
	I32  int32
	I64  int64
	F32  float32
	F64  float64
	Str  string

	// Present distinguishes an absent optional string/i32 from a present
	// empty/zero one.
	Present bool

	// Seq holds the nested rows for sequence-kind cells.
	Seq []Row
}

// Row is one record, with cells in Definition.Fields order.
type Row []Cell
