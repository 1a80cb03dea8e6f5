package diff

import (
	"sheetdiff/domain/table"
)

// Category is the classification of a row in a comparison. The set is
// closed: every key in either input lands in exactly one category.
type Category int

const (
	CategoryAdded Category = iota
	CategoryRemoved
	CategoryChanged
	CategoryUnchanged
)

// String returns the category label used for sheet names and summaries
func (c Category) String() string {
	switch c {
	case CategoryAdded:
		return "Added"
	case CategoryRemoved:
		return "Removed"
	case CategoryChanged:
		return "Changed"
	case CategoryUnchanged:
		return "Unchanged"
	}
	return "Unknown"
}

// Categories lists all categories in reporting order
func Categories() []Category {
	return []Category{CategoryAdded, CategoryRemoved, CategoryChanged, CategoryUnchanged}
}

// FieldDelta holds the old and new value of one differing column.
// PercentChange is set when both sides are numeric and old is non-zero.
type FieldDelta struct {
	Old           table.Value
	New           table.Value
	PercentChange *float64
}

// ChangedRow pairs the old and new record for a key with at least one
// differing field, with a delta map covering only the differing columns.
type ChangedRow struct {
	Key   string
	Old   table.Record
	New   table.Record
	Delta map[string]FieldDelta
}

// Summary holds the per-category counts plus input sizes
type Summary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Changed   int `json:"changed"`
	Unchanged int `json:"unchanged"`
	TotalOld  int `json:"total_old"`
	TotalNew  int `json:"total_new"`
}

// Result is the output of one comparison. It is constructed fresh per
// invocation and not mutated after Compare returns.
//
// Ordering: Added preserves new-table order, Removed/Changed/Unchanged
// preserve old-table order (Added rows originate only from the new table).
type Result struct {
	Added     []table.Record
	Removed   []table.Record
	Changed   []ChangedRow
	Unchanged []table.Record
	Summary   Summary
	Warnings  []SchemaWarning

	// Columns is the union of both schemas in reporting order: old-table
	// columns first, then columns only the new table has.
	Columns []string
}
