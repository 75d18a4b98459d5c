package table

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/schema"
	"github.com/twtools/packlib/tablepool"
)

// Spill encodes t and stores it compressed in pool, returning a handle a
// caller can later pass to Load. This is the backing store very large
// tables use instead of staying fully decoded in memory (ExtraData.Pool).
func Spill(t *Table, pool *tablepool.Pool) (tablepool.Handle, error) {
	return pool.Put(Encode(t))
}

// Load decodes a table previously spilled with Spill. Every Load
// decompresses a fresh copy from pool and never mutates pool state, so the
// same handle may be read concurrently.
func Load(pool *tablepool.Pool, h tablepool.Handle, tableName string, def *schema.Definition, rowCount uint32) (*Table, bool, error) {
	data, ok, err := pool.Get(h)
	if err != nil || !ok {
		return nil, ok, err
	}

	r := bytecursor.NewReader(data)
	rows, err := decodeRows(r, def, rowCount)
	if err != nil {
		return nil, true, err
	}
	return &Table{Name: tableName, Definition: def, Rows: rows}, true, nil
}
