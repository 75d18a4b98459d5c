package table

import "github.com/twtools/packlib/schema"

// Table is a fully decoded tabular payload: a table name, the Definition
// version it was decoded against, the definition patch (if any) the
// owning schema declares for that table, and its rows.
type Table struct {
	Name       string
	Definition *schema.Definition
	Patches    schema.DefinitionPatch
	Rows       []Row
}

// Clone returns a deep copy. Tables referenced from multiple payloads must
// only ever be shared this way.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Definition: t.Definition, Patches: t.Patches.Clone(), Rows: make([]Row, len(t.Rows))}
	for i, row := range t.Rows {
		out.Rows[i] = cloneRow(row)
	}
	return out
}

func cloneRow(row Row) Row {
	out := make(Row, len(row))
	for i, c := range row {
		cc := c
		if len(c.Seq) > 0 {
			cc.Seq = make([]Row, len(c.Seq))
			for j, nested := range c.Seq {
				cc.Seq[j] = cloneRow(nested)
			}
		}
		out[i] = cc
	}
	return out
}

// ColumnIndex returns the position of a named field in the table's
// definition, or -1.
func (t *Table) ColumnIndex(name string) int {
	return t.Definition.FieldIndex(name)
}
