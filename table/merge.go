package table

import (
	"sync"

	"github.com/twtools/packlib/errs"
	"github.com/twtools/packlib/schema"
)

// Merge combines N same-named tables: the first table's definition,
// patches, and name are kept, every other table is rebased to that
// definition (field values looked up by name, missing ones defaulted),
// and rows are concatenated in input order. Rebasing runs in parallel
// across the N-1 trailing tables, matching the
// data-parallel-internally / synchronous externally model.
func Merge(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return &Table{}, nil
	}

	base := tables[0]
	for _, t := range tables[1:] {
		if t.Name != base.Name {
			return nil, errs.ErrTableMergeNameMismatch
		}
	}

	rebased := make([][]Row, len(tables))
	rebased[0] = base.Rows

	var wg sync.WaitGroup
	for i := 1; i < len(tables); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rebased[i] = rebaseRows(tables[i], base.Definition, base.Patches)
		}(i)
	}
	wg.Wait()

	merged := &Table{Name: base.Name, Definition: base.Definition, Patches: base.Patches.Clone()}
	for _, rows := range rebased {
		merged.Rows = append(merged.Rows, rows...)
	}
	return merged, nil
}

// rebaseRows converts t's rows to def's field layout, matching columns by
// name; fields present in def but absent from t's own definition take
// def's declared (or patched) default.
func rebaseRows(t *Table, def *schema.Definition, patch schema.DefinitionPatch) []Row {
	out := make([]Row, len(t.Rows))
	for i, srcRow := range t.Rows {
		row := NewRow(def, patch)
		for j, f := range def.Fields {
			srcIdx := t.Definition.FieldIndex(f.Name)
			if srcIdx >= 0 {
				row[j] = srcRow[srcIdx]
			}
		}
		out[i] = row
	}
	return out
}
