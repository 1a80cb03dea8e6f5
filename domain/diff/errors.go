package diff

import (
	"errors"
	"fmt"
)

// Side identifies which input table an error or warning refers to
type Side string

const (
	SideOld Side = "old"
	SideNew Side = "new"
)

// Sentinel errors for errors.Is matching
var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrMissingKeyColumn = errors.New("key column not found")
)

// DuplicateKeyError reports a key tuple appearing twice within one table
// when explicit key columns are used. The match would be ambiguous, so the
// comparison is rejected rather than silently picking one row.
type DuplicateKeyError struct {
	Side Side
	Key  string
	Row  int // 0-based row index of the second occurrence
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in %s table at row %d", e.Key, e.Side, e.Row)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// MissingKeyColumnError reports a named key column absent from one table's schema
type MissingKeyColumnError struct {
	Side   Side
	Column string
}

func (e *MissingKeyColumnError) Error() string {
	return fmt.Sprintf("key column %q not found in %s table", e.Column, e.Side)
}

func (e *MissingKeyColumnError) Unwrap() error {
	return ErrMissingKeyColumn
}

// SchemaWarning reports a column present in only one of the two tables.
// Non-fatal: the column is treated as always-missing on the side lacking
// it, which may itself classify rows as changed.
type SchemaWarning struct {
	Column    string
	MissingIn Side
}

func (w SchemaWarning) String() string {
	return fmt.Sprintf("column %q missing in %s table", w.Column, w.MissingIn)
}
