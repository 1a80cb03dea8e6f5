package table

// Column describes one named column with its inferred value kind
type Column struct {
	Name string
	Kind Kind
}

// Schema is the ordered column descriptor shared by all records of a table
type Schema struct {
	Columns []Column
}

// NewSchema builds a schema from column names with unknown kinds
func NewSchema(names ...string) Schema {
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name, Kind: KindString}
	}
	return Schema{Columns: cols}
}

// Names returns the column names in schema order
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// Has checks whether the schema contains a column
func (s Schema) Has(name string) bool {
	for _, col := range s.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// KindOf returns the declared kind for a column, KindMissing if absent
func (s Schema) KindOf(name string) Kind {
	for _, col := range s.Columns {
		if col.Name == name {
			return col.Kind
		}
	}
	return KindMissing
}

// Union merges two schemas for reporting: columns of s in order, then
// columns only present in other, in other's order.
func (s Schema) Union(other Schema) []string {
	names := s.Names()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	for _, col := range other.Columns {
		if !seen[col.Name] {
			names = append(names, col.Name)
			seen[col.Name] = true
		}
	}
	return names
}
