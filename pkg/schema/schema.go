package schema

import (
	"maps"
	"slices"
)

type entry struct {
	name   string
	fields []Field
}

// Schema is an ordered set of field definitions. Fields are validated in
// declaration order, which is also the order of reported errors.
type Schema struct {
	entries []entry
	index   map[string]int
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{index: make(map[string]int)}
}

// FromMap builds a schema from a map. Fields are ordered by name.
func FromMap(fields map[string]Field) *Schema {
	s := New()
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		s.Field(name, fields[name])
	}
	return s
}

// Field adds definitions for name. Dotted names address nested maps
// ("address.city"). Calling Field again for the same name appends further
// definitions, which are checked after the earlier ones.
func (s *Schema) Field(name string, fields ...Field) *Schema {
	if i, ok := s.index[name]; ok {
		s.entries[i].fields = append(s.entries[i].fields, fields...)
		return s
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, entry{name: name, fields: slices.Clone(fields)})
	return s
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return names
}

func (s *Schema) Len() int {
	return len(s.entries)
}
