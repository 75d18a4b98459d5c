package table

import (
	"fmt"
	"strings"

	"github.com/twtools/packlib/schema"
)

// LocaleEntry is one translatable key/text pair from a locale payload.
// CascadeEdit rewrites an entry's key in place via SetLocaleKey when the row
// whose key columns composed that key changes a key column's value. The
// interface keeps this package independent of any specific locale payload
// type; payloads/loc.Entry satisfies it.
type LocaleEntry interface {
	LocaleKey() string
	SetLocaleKey(string)
}

// CascadeEdit rewrites oldVal to newVal in column of table tableName, then
// walks the schema's reference graph to find every other table that
// references that column and rewrites matching cells there too. When the
// edited column is itself a reference (an FK pointing at another table's
// key), the edit is first redirected to the column it ultimately points
// at, so the actual key table and every sibling table referencing the
// same target are rewritten, not just the table the edit started in. When
// a rewritten column is a key column (schema.Field.IsKey, or an "is_key"
// definition-patch override) of the table that owns it, every composed
// localization key built from that table's key columns (see
// ComposeLocaleKey) is rewritten in locEntries as well, for every field
// the table marks IsLocKey. An edit where oldVal equals newVal is a
// no-op. tables must contain every table reachable from the edit, keyed
// by table name; it and locEntries are mutated in place. The returned
// slice names every table whose rows changed — callers translate these
// into container paths.
//
// This never creates rows, only rewrites existing cells and locale entries,
// and visits referencing tables in map-iteration (unspecified) order.
func CascadeEdit(g *schema.Graph, tables map[string]*Table, locEntries []LocaleEntry, tableName, column string, oldVal, newVal Cell) []string {
	if cellEqual(oldVal, newVal) {
		return nil
	}

	srcTable, srcColumn := g.ResolveReference(tableName, column)

	touched := map[string]bool{}

	// Walk the closure of columns referencing the resolved source: direct
	// referencers, plus referencers-of-referencers for chained FKs, so
	// the table the edit started in is reached even when it sits several
	// hops from the true key table.
	type colRef struct{ table, column string }
	queue := []colRef{{srcTable, srcColumn}}
	seen := map[colRef]bool{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true

		if rewriteColumn(tables[cur.table], cur.column, oldVal, newVal, locEntries) {
			touched[cur.table] = true
		}
		for _, ref := range g.ReferencingColumns(cur.table, cur.column) {
			queue = append(queue, colRef{ref.Table, ref.Column})
		}
	}

	out := make([]string, 0, len(touched))
	for name := range touched {
		out = append(out, name)
	}
	return out
}

func rewriteColumn(t *Table, column string, oldVal, newVal Cell, locEntries []LocaleEntry) bool {
	if t == nil {
		return false
	}
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return false
	}

	keyFields, locFields := keyAndLocFields(t)
	isKeyCol := fieldIsKey(t, idx)

	changed := false
	for i := range t.Rows {
		if !cellEqual(t.Rows[i][idx], oldVal) {
			continue
		}

		if isKeyCol && len(locFields) > 0 {
			oldKey := composeRowKey(t.Definition, t.Rows[i], keyFields)
			t.Rows[i][idx] = newVal
			newKey := composeRowKey(t.Definition, t.Rows[i], keyFields)
			for _, lf := range locFields {
				rewriteLocaleKeys(locEntries, ComposeLocaleKey(t.Name, t.Definition.Fields[lf].Name, oldKey), ComposeLocaleKey(t.Name, t.Definition.Fields[lf].Name, newKey))
			}
		} else {
			t.Rows[i][idx] = newVal
		}
		changed = true
	}
	return changed
}

// keyAndLocFields returns the indices of the table's key fields (in
// declaration order, the order ComposeLocaleKey's key-value concatenation
// follows) and its IsLocKey fields. Key status honors the table's
// definition patch.
func keyAndLocFields(t *Table) (keyFields, locFields []int) {
	for i, f := range t.Definition.Fields {
		if fieldIsKey(t, i) {
			keyFields = append(keyFields, i)
		}
		if f.IsLocKey {
			locFields = append(locFields, i)
		}
	}
	return keyFields, locFields
}

// fieldIsKey reports whether a field is a key column, letting the table's
// definition patch override the schema's own flag.
func fieldIsKey(t *Table, idx int) bool {
	f := t.Definition.Fields[idx]
	if v, ok := t.Patches.Attribute(f.Name, "is_key"); ok {
		return v == "true"
	}
	return f.IsKey
}

func composeRowKey(def *schema.Definition, row Row, keyFields []int) []string {
	out := make([]string, len(keyFields))
	for i, idx := range keyFields {
		out[i] = CellString(def.Fields[idx], row[idx])
	}
	return out
}

func rewriteLocaleKeys(locEntries []LocaleEntry, oldKey, newKey string) {
	if oldKey == newKey {
		return
	}
	for _, e := range locEntries {
		if e.LocaleKey() == oldKey {
			e.SetLocaleKey(newKey)
		}
	}
}

func cellEqual(a, b Cell) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case schema.FieldBoolean:
		return a.Bool == b.Bool
	case schema.FieldI16:
		return a.I16 == b.I16
	case schema.FieldI32, schema.FieldColourRGB:
		return a.I32 == b.I32
	case schema.FieldI64:
		return a.I64 == b.I64
	case schema.FieldF32:
		return a.F32 == b.F32
	case schema.FieldF64:
		return a.F64 == b.F64
	case schema.FieldStringU8, schema.FieldStringU16:
		return a.Str == b.Str
	case schema.FieldOptionalStringU8, schema.FieldOptionalStringU16:
		return a.Present == b.Present && a.Str == b.Str
	case schema.FieldOptionalI32:
		return a.Present == b.Present && a.I32 == b.I32
	default:
		return false
	}
}

// ComposeLocaleKey builds the `<table-no-suffix>_<loc-column>_<concatenated-
// key>` localization key for a row, given the table's key-column values in
// declaration order.
func ComposeLocaleKey(tableName, locColumn string, keyValues []string) string {
	base := strings.TrimSuffix(tableName, "_tables")
	return fmt.Sprintf("%s_%s_%s", base, locColumn, strings.Join(keyValues, "_"))
}
