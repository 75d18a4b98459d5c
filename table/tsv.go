package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/schema"
)

// TSVExport writes a table as two header lines (`#<name> v<version>`,
// then tab-separated column names) followed by one tab-separated row per
// entry. Tabs and newlines inside string cells are escaped so the file
// round-trips through TSVImport unambiguously.
//
// Columns follow the definition's recipes rather than its raw fields: a
// merged-RGB field triple presents as one `#RRGGBB` colour column under the
// group's tag, and a flag-split field presents as one boolean column per
// bit, named `<field>_<bit>`.
func TSVExport(t *Table) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#%s v%d\n", t.Name, t.Definition.Version)

	cols := presentationColumns(t.Definition.Fields)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.header
	}
	b.WriteString(strings.Join(names, "\t"))
	b.WriteByte('\n')

	for _, row := range t.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = escapeTSV(presColToTSV(t.Definition.Fields, c, row))
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}

	return b.String()
}

// TSVImport parses a TSV document produced by TSVExport (or a compatible
// external editor), validating its header against tableName/version and
// mapping columns by name rather than position. Columns absent from the
// file decode to their field's default; columns present in the file but
// absent from the definition (after recipe projection) are rejected.
func TSVImport(tsv string, tableName string, version int32, def *schema.Definition) (*Table, error) {
	lines := strings.Split(strings.TrimRight(tsv, "\n"), "\n")
	if len(lines) < 2 {
		return nil, &errs.PayloadCorrupt{TypeName: "tsv", Detail: "missing header lines"}
	}

	wantHeader := fmt.Sprintf("#%s v%d", tableName, version)
	if lines[0] != wantHeader {
		return nil, &errs.PayloadCorrupt{TypeName: "tsv", Detail: fmt.Sprintf("header mismatch: want %q, got %q", wantHeader, lines[0])}
	}

	colByName := make(map[string]presCol)
	for _, c := range presentationColumns(def.Fields) {
		colByName[c.header] = c
	}

	columns := strings.Split(lines[1], "\t")
	colForIndex := make([]presCol, len(columns))
	for i, name := range columns {
		pc, ok := colByName[name]
		if !ok {
			return nil, &errs.PayloadCorrupt{TypeName: "tsv", Detail: fmt.Sprintf("unknown column %q", name)}
		}
		colForIndex[i] = pc
	}

	t := &Table{Name: tableName, Definition: def}
	for _, line := range lines[2:] {
		if line == "" {
			continue
		}
		cellsIn := strings.Split(line, "\t")
		row := NewRow(def, nil)
		flagBits := make(map[int][]bool)
		for i, raw := range cellsIn {
			if i >= len(colForIndex) {
				break
			}
			if err := applyPresCol(def.Fields, colForIndex[i], unescapeTSV(raw), row, flagBits); err != nil {
				return nil, err
			}
		}
		for fieldIdx, bits := range flagBits {
			row[fieldIdx] = Cell{Kind: def.Fields[fieldIdx].Kind, I32: schema.MergeFlags(bits)}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// presColKind distinguishes a plain field column from one produced by a
// merged-RGB or flag-split recipe.
type presColKind uint8

const (
	presSingle presColKind = iota
	presRGB
	presFlagBit
)

// presCol is one presented TSV column, mapped back to the definition
// field(s) it projects.
type presCol struct {
	header string
	kind   presColKind
	field  int    // field index for presSingle and presFlagBit
	rgb    [3]int // field indices for presRGB
	bit    int    // bit position for presFlagBit
}

// presentationColumns projects a definition's fields into the columns a TSV
// document actually shows: three adjacent i32 fields sharing a MergedGroup
// tag collapse into one colour column, and a flag-split field expands into
// FlagWidth boolean columns. A malformed merged group (fewer than three
// adjacent fields sharing the tag) is left as plain columns rather than
// guessed at.
func presentationColumns(fields []schema.Field) []presCol {
	cols := make([]presCol, 0, len(fields))
	for i := 0; i < len(fields); {
		f := fields[i]
		if f.Recipe == schema.RecipeMergedRGB && f.MergedGroup != "" &&
			i+2 < len(fields) &&
			fields[i+1].MergedGroup == f.MergedGroup && fields[i+1].Recipe == schema.RecipeMergedRGB &&
			fields[i+2].MergedGroup == f.MergedGroup && fields[i+2].Recipe == schema.RecipeMergedRGB {
			cols = append(cols, presCol{header: f.MergedGroup, kind: presRGB, rgb: [3]int{i, i + 1, i + 2}})
			i += 3
			continue
		}
		if f.Recipe == schema.RecipeFlagSplit && f.FlagWidth > 0 {
			for bit := 0; bit < f.FlagWidth; bit++ {
				cols = append(cols, presCol{header: fmt.Sprintf("%s_%d", f.Name, bit), kind: presFlagBit, field: i, bit: bit})
			}
			i++
			continue
		}
		cols = append(cols, presCol{header: f.Name, kind: presSingle, field: i})
		i++
	}
	return cols
}

func presColToTSV(fields []schema.Field, c presCol, row Row) string {
	switch c.kind {
	case presRGB:
		r, g, bl := row[c.rgb[0]].I32, row[c.rgb[1]].I32, row[c.rgb[2]].I32
		return fmt.Sprintf("#%06X", schema.MergeRGB(r, g, bl))
	case presFlagBit:
		bits := schema.SplitFlags(row[c.field].I32, fields[c.field].FlagWidth)
		return strconv.FormatBool(bits[c.bit])
	default:
		return cellToTSV(fields[c.field], row[c.field])
	}
}

func applyPresCol(fields []schema.Field, c presCol, raw string, row Row, flagBits map[int][]bool) error {
	switch c.kind {
	case presRGB:
		merged, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 16, 32)
		if err != nil {
			return &errs.PayloadCorrupt{TypeName: "tsv", Detail: fmt.Sprintf("column %q: %v", c.header, err)}
		}
		r, g, bl := schema.SplitRGB(int32(merged))
		row[c.rgb[0]] = Cell{Kind: fields[c.rgb[0]].Kind, I32: r}
		row[c.rgb[1]] = Cell{Kind: fields[c.rgb[1]].Kind, I32: g}
		row[c.rgb[2]] = Cell{Kind: fields[c.rgb[2]].Kind, I32: bl}
		return nil
	case presFlagBit:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return &errs.PayloadCorrupt{TypeName: "tsv", Detail: fmt.Sprintf("column %q: %v", c.header, err)}
		}
		bits, ok := flagBits[c.field]
		if !ok {
			bits = make([]bool, fields[c.field].FlagWidth)
			flagBits[c.field] = bits
		}
		bits[c.bit] = v
		return nil
	default:
		cell, err := tsvToCell(fields[c.field], raw)
		if err != nil {
			return err
		}
		row[c.field] = cell
		return nil
	}
}

// CellString renders a cell's value the same way TSVExport does, for
// callers outside this package that need a plain-text representation of a
// cell (e.g. locale-key composition).
func CellString(f schema.Field, c Cell) string {
	return cellToTSV(f, c)
}

func cellToTSV(f schema.Field, c Cell) string {
	if f.Recipe == schema.RecipeEnumLabel {
		if label, ok := schema.EnumLabel(f.EnumLabels, c.I32); ok {
			return label
		}
	}

	switch f.Kind {
	case schema.FieldBoolean:
		return strconv.FormatBool(c.Bool)
	case schema.FieldI16:
		return strconv.FormatInt(int64(c.I16), 10)
	case schema.FieldI32, schema.FieldColourRGB:
		return strconv.FormatInt(int64(c.I32), 10)
	case schema.FieldI64:
		return strconv.FormatInt(c.I64, 10)
	case schema.FieldF32:
		return strconv.FormatFloat(float64(c.F32), 'g', -1, 32)
	case schema.FieldF64:
		return strconv.FormatFloat(c.F64, 'g', -1, 64)
	case schema.FieldStringU8, schema.FieldStringU16:
		return c.Str
	case schema.FieldOptionalStringU8, schema.FieldOptionalStringU16:
		if !c.Present {
			return ""
		}
		return c.Str
	case schema.FieldOptionalI32:
		if !c.Present {
			return ""
		}
		return strconv.FormatInt(int64(c.I32), 10)
	default:
		return ""
	}
}

func tsvToCell(f schema.Field, raw string) (Cell, error) {
	if f.Recipe == schema.RecipeEnumLabel {
		for v, label := range f.EnumLabels {
			if label == raw {
				return Cell{Kind: f.Kind, I32: v}, nil
			}
		}
	}

	switch f.Kind {
	case schema.FieldBoolean:
		v, err := strconv.ParseBool(raw)
		return Cell{Kind: f.Kind, Bool: v}, wrapTSVErr(f, err)
	case schema.FieldI16:
		v, err := strconv.ParseInt(raw, 10, 16)
		return Cell{Kind: f.Kind, I16: int16(v)}, wrapTSVErr(f, err)
	case schema.FieldI32, schema.FieldColourRGB:
		v, err := strconv.ParseInt(raw, 10, 32)
		return Cell{Kind: f.Kind, I32: int32(v)}, wrapTSVErr(f, err)
	case schema.FieldI64:
		v, err := strconv.ParseInt(raw, 10, 64)
		return Cell{Kind: f.Kind, I64: v}, wrapTSVErr(f, err)
	case schema.FieldF32:
		v, err := strconv.ParseFloat(raw, 32)
		return Cell{Kind: f.Kind, F32: float32(v)}, wrapTSVErr(f, err)
	case schema.FieldF64:
		v, err := strconv.ParseFloat(raw, 64)
		return Cell{Kind: f.Kind, F64: v}, wrapTSVErr(f, err)
	case schema.FieldStringU8, schema.FieldStringU16:
		return Cell{Kind: f.Kind, Str: raw}, nil
	case schema.FieldOptionalStringU8, schema.FieldOptionalStringU16:
		if raw == "" {
			return Cell{Kind: f.Kind}, nil
		}
		return Cell{Kind: f.Kind, Str: raw, Present: true}, nil
	case schema.FieldOptionalI32:
		if raw == "" {
			return Cell{Kind: f.Kind}, nil
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		return Cell{Kind: f.Kind, I32: int32(v), Present: true}, wrapTSVErr(f, err)
	default:
		return Cell{Kind: f.Kind}, nil
	}
}

func wrapTSVErr(f schema.Field, err error) error {
	if err == nil {
		return nil
	}
	return &errs.PayloadCorrupt{TypeName: "tsv", Detail: fmt.Sprintf("column %q: %v", f.Name, err)}
}

func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func unescapeTSV(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
