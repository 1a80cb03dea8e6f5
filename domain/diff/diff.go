// Package diff implements the row comparison engine: it aligns two tabular
// snapshots by explicit key columns or by row position, classifies every row
// as added, removed, changed or unchanged, and computes per-field deltas for
// changed rows. The package is pure: no I/O, no logging, no shared state, so
// independent comparisons are safe to run concurrently.
package diff

import (
	"strconv"
	"strings"

	"sheetdiff/domain/table"
)

// Key tuple values are joined with the ASCII unit separator so composite
// keys cannot collide on values containing ordinary punctuation.
const keySep = "\x1f"

// Compare aligns oldTable and newTable and partitions their rows into the
// four diff categories. With keyColumns the rows are matched by key tuple;
// without, they are matched position by position for min(N, M) rows and the
// remainder is classified added or removed. All-or-nothing: on error no
// partial result is returned.
func Compare(oldTable, newTable table.Table, keyColumns []string) (*Result, error) {
	for _, col := range keyColumns {
		if !oldTable.Schema.Has(col) {
			return nil, &MissingKeyColumnError{Side: SideOld, Column: col}
		}
		if !newTable.Schema.Has(col) {
			return nil, &MissingKeyColumnError{Side: SideNew, Column: col}
		}
	}

	result := &Result{
		Columns:  oldTable.Schema.Union(newTable.Schema),
		Warnings: schemaWarnings(oldTable.Schema, newTable.Schema),
	}

	if len(keyColumns) == 0 {
		comparePositional(oldTable, newTable, result)
	} else if err := compareKeyed(oldTable, newTable, keyColumns, result); err != nil {
		return nil, err
	}

	result.Summary = Summary{
		Added:     len(result.Added),
		Removed:   len(result.Removed),
		Changed:   len(result.Changed),
		Unchanged: len(result.Unchanged),
		TotalOld:  oldTable.NumRows(),
		TotalNew:  newTable.NumRows(),
	}
	return result, nil
}

// comparePositional matches rows by 0-based index. Row indexes are unique
// by construction, so duplicate-key detection does not apply here.
func comparePositional(oldTable, newTable table.Table, result *Result) {
	minLen := oldTable.NumRows()
	if newTable.NumRows() < minLen {
		minLen = newTable.NumRows()
	}

	for i := 0; i < minLen; i++ {
		oldRec := oldTable.Records[i]
		newRec := newTable.Records[i]
		delta := recordDelta(oldRec, newRec, result.Columns, nil)
		if len(delta) == 0 {
			result.Unchanged = append(result.Unchanged, oldRec)
		} else {
			result.Changed = append(result.Changed, ChangedRow{
				Key:   strconv.Itoa(i),
				Old:   oldRec,
				New:   newRec,
				Delta: delta,
			})
		}
	}

	for i := minLen; i < newTable.NumRows(); i++ {
		result.Added = append(result.Added, newTable.Records[i])
	}
	for i := minLen; i < oldTable.NumRows(); i++ {
		result.Removed = append(result.Removed, oldTable.Records[i])
	}
}

// compareKeyed matches rows by the key tuple built from keyColumns
func compareKeyed(oldTable, newTable table.Table, keyColumns []string, result *Result) error {
	oldIndex, err := buildKeyIndex(oldTable, keyColumns, SideOld)
	if err != nil {
		return err
	}
	newIndex, err := buildKeyIndex(newTable, keyColumns, SideNew)
	if err != nil {
		return err
	}

	// Added preserves new-table order
	for i, rec := range newTable.Records {
		key := keyOf(rec, keyColumns)
		if _, inOld := oldIndex[key]; !inOld {
			result.Added = append(result.Added, newTable.Records[i])
		}
	}

	// Removed, changed and unchanged preserve old-table order
	for i, oldRec := range oldTable.Records {
		key := keyOf(oldRec, keyColumns)
		newRow, inNew := newIndex[key]
		if !inNew {
			result.Removed = append(result.Removed, oldTable.Records[i])
			continue
		}
		newRec := newTable.Records[newRow]
		delta := recordDelta(oldRec, newRec, result.Columns, keyColumns)
		if len(delta) == 0 {
			result.Unchanged = append(result.Unchanged, oldRec)
		} else {
			result.Changed = append(result.Changed, ChangedRow{
				Key:   displayKey(oldRec, keyColumns),
				Old:   oldRec,
				New:   newRec,
				Delta: delta,
			})
		}
	}
	return nil
}

// buildKeyIndex maps each key tuple to its row index, rejecting duplicates
func buildKeyIndex(t table.Table, keyColumns []string, side Side) (map[string]int, error) {
	index := make(map[string]int, t.NumRows())
	for i, rec := range t.Records {
		key := keyOf(rec, keyColumns)
		if _, exists := index[key]; exists {
			return nil, &DuplicateKeyError{Side: side, Key: displayKey(rec, keyColumns), Row: i}
		}
		index[key] = i
	}
	return index, nil
}

func keyOf(rec table.Record, keyColumns []string) string {
	parts := make([]string, len(keyColumns))
	for i, col := range keyColumns {
		parts[i] = rec.Get(col).Display()
	}
	return strings.Join(parts, keySep)
}

// displayKey renders a key tuple for error messages and reports
func displayKey(rec table.Record, keyColumns []string) string {
	parts := make([]string, len(keyColumns))
	for i, col := range keyColumns {
		parts[i] = rec.Get(col).Display()
	}
	return strings.Join(parts, "|")
}

// recordDelta compares every non-key column in the union schema and returns
// an entry per differing column. Columns absent from one record read as
// missing, so one-sided columns can still produce a changed classification.
func recordDelta(oldRec, newRec table.Record, columns, keyColumns []string) map[string]FieldDelta {
	var delta map[string]FieldDelta
	for _, col := range columns {
		if isKeyColumn(col, keyColumns) {
			continue
		}
		oldVal := oldRec.Get(col)
		newVal := newRec.Get(col)
		if oldVal.Equal(newVal) {
			continue
		}
		if delta == nil {
			delta = make(map[string]FieldDelta)
		}
		delta[col] = FieldDelta{
			Old:           oldVal,
			New:           newVal,
			PercentChange: percentChange(oldVal, newVal),
		}
	}
	return delta
}

func isKeyColumn(col string, keyColumns []string) bool {
	for _, k := range keyColumns {
		if k == col {
			return true
		}
	}
	return false
}

// percentChange returns (new-old)/old as a percentage for numeric pairs
// with non-zero old values, nil otherwise
func percentChange(oldVal, newVal table.Value) *float64 {
	oldF, oldOK := oldVal.Float()
	newF, newOK := newVal.Float()
	if !oldOK || !newOK || oldF == 0 {
		return nil
	}
	pct := (newF - oldF) / oldF * 100
	return &pct
}

func schemaWarnings(oldSchema, newSchema table.Schema) []SchemaWarning {
	var warnings []SchemaWarning
	for _, col := range oldSchema.Columns {
		if !newSchema.Has(col.Name) {
			warnings = append(warnings, SchemaWarning{Column: col.Name, MissingIn: SideNew})
		}
	}
	for _, col := range newSchema.Columns {
		if !oldSchema.Has(col.Name) {
			warnings = append(warnings, SchemaWarning{Column: col.Name, MissingIn: SideOld})
		}
	}
	return warnings
}
