package pack

import (
	"strings"

	"github.com/twtools/packlib/extradata"
	"github.com/twtools/packlib/filetype"
	"github.com/twtools/packlib/payloads/dbtable"
	"github.com/twtools/packlib/payloads/loc"
	"github.com/twtools/packlib/schema"
	"github.com/twtools/packlib/table"
)

// MissingLocsPath is the container path the missing-locale synthesizer
// writes its output table under.
const MissingLocsPath = "text/missing_locs.loc"

// SynthesizeMissingLocales scans every DB table decodable against sch for
// IsLocKey fields, composes the locale key each row's row-key columns
// produce for that field (`<table-without-"_tables"-suffix>_<loc-field>_
// <concatenated-key-columns>`), and diffs the result against every locale
// table already in the Pack. Rows whose key composition is empty (an
// incomplete schema can leave a key column undecoded) are skipped.
//
// Returns (nil, nil) when nothing is missing. Otherwise it inserts a new
// loc.Table at MissingLocsPath, populated with PLACEHOLDER text, and
// returns the FileRecord for it.
func (p *Pack) SynthesizeMissingLocales(sch *schema.Schema) (*FileRecord, error) {
	known := make(map[string]bool)
	for _, rec := range p.FilesByType(filetype.Loc) {
		payload, err := p.Decode(rec.Path(), nil)
		if err != nil {
			return nil, err
		}
		locTable, ok := payload.(*loc.Table)
		if !ok {
			continue
		}
		for _, e := range locTable.Entries {
			known[e.Key] = true
		}
	}

	var missing []loc.Entry
	for _, rec := range p.FilesByType(filetype.DB) {
		tableName := tableNameFromDBPath(rec.Path())
		if tableName == "" {
			continue
		}

		ed, err := extradata.New(extradata.WithSchema(sch), extradata.WithTableName(tableName))
		if err != nil {
			return nil, err
		}
		payload, err := p.Decode(rec.Path(), ed)
		if err != nil {
			return nil, err
		}
		db, ok := payload.(*dbtable.DB)
		if !ok {
			continue
		}

		missing = append(missing, missingLocsForTable(db.Table, known)...)
	}

	if len(missing) == 0 {
		return nil, nil
	}

	missingTable := &loc.Table{Version: 1, Entries: missing}
	rec := NewDecodedRecord(MissingLocsPath, missingTable)
	if err := p.Insert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func missingLocsForTable(t *table.Table, known map[string]bool) []loc.Entry {
	var keyFields, locFields []int
	for i, f := range t.Definition.Fields {
		if f.IsKey {
			keyFields = append(keyFields, i)
		}
		if f.IsLocKey {
			locFields = append(locFields, i)
		}
	}
	if len(locFields) == 0 {
		return nil
	}

	var out []loc.Entry
	for _, row := range t.Rows {
		keyValues := make([]string, len(keyFields))
		empty := true
		for i, idx := range keyFields {
			keyValues[i] = table.CellString(t.Definition.Fields[idx], row[idx])
			if keyValues[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		for _, idx := range locFields {
			locKey := table.ComposeLocaleKey(t.Name, t.Definition.Fields[idx].Name, keyValues)
			if known[locKey] {
				continue
			}
			out = append(out, loc.Entry{Key: locKey, Text: "PLACEHOLDER"})
		}
	}
	return out
}

// tableNameFromDBPath extracts the table folder name from a db/<table>/...
// container path.
func tableNameFromDBPath(path string) string {
	lower := strings.ToLower(path)
	if !strings.HasPrefix(lower, "db/") {
		return ""
	}
	parts := strings.SplitN(lower, "/", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
