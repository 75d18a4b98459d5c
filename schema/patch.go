package schema

// DefinitionPatch overrides per-field attributes of one table's
// definition without editing the schema document itself, keyed by column
// name then attribute name. The attributes this module consults are
// "default_value" (row-default construction) and "is_key" (cascade-edit
// and locale-key composition); anything else is carried untouched for
// consumers with their own conventions.
type DefinitionPatch map[string]map[string]string

// Attribute looks up column's patched attribute, reporting whether the
// patch declares it at all.
func (p DefinitionPatch) Attribute(column, attr string) (string, bool) {
	attrs, ok := p[column]
	if !ok {
		return "", false
	}
	v, ok := attrs[attr]
	return v, ok
}

// Clone returns a deep copy; a nil patch clones to nil.
func (p DefinitionPatch) Clone() DefinitionPatch {
	if p == nil {
		return nil
	}
	out := make(DefinitionPatch, len(p))
	for column, attrs := range p {
		cloned := make(map[string]string, len(attrs))
		for k, v := range attrs {
			cloned[k] = v
		}
		out[column] = cloned
	}
	return out
}
