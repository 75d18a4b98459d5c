// Package schema models the schema document the core consumes but does
// not produce: a map from table name to its known versioned
// field layouts, plus the precomputed reference graph cascade edits walk.
package schema

import "github.com/twtools/packlib/errs"

// Schema is a loaded, immutable schema document.
type Schema struct {
	tables  map[string]*TableDefinitions
	patches map[string]DefinitionPatch
	graph   *Graph
}

// New builds a Schema from a set of table definitions and precomputes its
// reference graph once, so every later CascadeEdit reuses the same
// adjacency instead of walking table definitions per call.
func New(tables []*TableDefinitions) *Schema {
	return NewWithPatches(tables, nil)
}

// NewWithPatches builds a Schema carrying per-table definition patches
// alongside the definitions themselves.
func NewWithPatches(tables []*TableDefinitions, patches map[string]DefinitionPatch) *Schema {
	s := &Schema{
		tables:  make(map[string]*TableDefinitions, len(tables)),
		patches: patches,
	}
	for _, t := range tables {
		s.tables[t.Name] = t
	}
	s.graph = buildGraph(s.tables)
	return s
}

// PatchesForTable returns the definition patch declared for a table, or
// nil when the schema carries none.
func (s *Schema) PatchesForTable(name string) DefinitionPatch {
	return s.patches[name]
}

// Table returns the known definitions for a table name.
func (s *Schema) Table(name string) (*TableDefinitions, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// Definition resolves a (table, version) pair to its Definition, or
// ErrSchemaDefinitionNotFound.
func (s *Schema) Definition(tableName string, version int32) (*Definition, error) {
	t, ok := s.tables[tableName]
	if !ok {
		return nil, errs.ErrSchemaDefinitionNotFound
	}
	def, ok := t.ByVersion(version)
	if !ok {
		return nil, errs.ErrSchemaDefinitionNotFound
	}
	return def, nil
}

// Graph returns the precomputed reference graph.
func (s *Schema) Graph() *Graph { return s.graph }
