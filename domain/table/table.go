package table

// Record is one row, keyed by column name. Columns missing from a record
// read as the missing value.
type Record map[string]Value

// Get returns the value for a column, missing when the column is absent
func (r Record) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Missing()
}

// Table is an in-memory tabular snapshot: an ordered record sequence plus
// the schema its records share.
type Table struct {
	Name    string
	Schema  Schema
	Records []Record
}

// NumRows returns the number of data rows
func (t Table) NumRows() int {
	return len(t.Records)
}

// InferKinds rescans the records and sets each column's kind to the
// dominant value kind observed (missing values excluded). Columns with no
// present values stay strings.
func (t *Table) InferKinds() {
	for i, col := range t.Schema.Columns {
		var counts [KindBool + 1]int
		for _, rec := range t.Records {
			v := rec.Get(col.Name)
			if !v.IsMissing() {
				counts[v.Kind()]++
			}
		}
		best := KindString
		bestCount := 0
		for _, kind := range []Kind{KindString, KindNumber, KindBool} {
			if counts[kind] > bestCount {
				best = kind
				bestCount = counts[kind]
			}
		}
		t.Schema.Columns[i].Kind = best
	}
}
