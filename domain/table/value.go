package table

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the scalar type carried by a Value.
type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindBool
)

// String returns the kind name for reporting
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Value is a scalar cell value: a string, a number, a boolean, or missing.
// The zero Value is the missing value.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Missing returns the missing value (empty cell, NaN from a loader)
func Missing() Value {
	return Value{kind: KindMissing}
}

// String creates a string value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number creates a numeric value
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Bool creates a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Parse coerces a raw cell string into a typed Value. Empty cells become
// missing, numeric-looking cells become numbers, true/false become booleans,
// everything else stays a string.
func Parse(cell string) Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return Missing()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(f)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return String(cell)
}

// Kind returns the value's kind
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing checks whether the value is missing
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Float returns the numeric payload and whether the value is numeric
func (v Value) Float() (float64, bool) {
	if v.kind == KindNumber {
		return v.num, true
	}
	return 0, false
}

// Display renders the value for reports and exported sheets
func (v Value) Display() string {
	switch v.kind {
	case KindMissing:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Relative epsilon for numeric equality. Spreadsheet round-trips introduce
// float noise far above machine epsilon but well below this.
const floatTolerance = 1e-9

// Equal reports whether two values are equal under the comparison
// normalization rules: missing equals missing, numbers compare within a
// relative tolerance (so integer 5 equals float 5.0), and strings compare
// with trailing whitespace trimmed. A string that parses as a number or
// boolean compares against values of that kind, which keeps columns stable
// when one loader coerced a cell and the other did not.
func (v Value) Equal(other Value) bool {
	if v.kind == other.kind {
		switch v.kind {
		case KindMissing:
			return true
		case KindString:
			return normalizeString(v.str) == normalizeString(other.str)
		case KindNumber:
			return floatsEqual(v.num, other.num)
		case KindBool:
			return v.b == other.b
		}
	}

	// Cross-kind: promote strings to the other side's kind when they parse.
	if v.kind == KindString {
		return stringEqualsTyped(v.str, other)
	}
	if other.kind == KindString {
		return stringEqualsTyped(other.str, v)
	}
	return false
}

func stringEqualsTyped(s string, typed Value) bool {
	trimmed := strings.TrimSpace(s)
	switch typed.kind {
	case KindNumber:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return floatsEqual(f, typed.num)
		}
	case KindBool:
		if b, err := strconv.ParseBool(strings.ToLower(trimmed)); err == nil {
			return b == typed.b
		}
	}
	return false
}

func floatsEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		return diff < floatTolerance
	}
	return diff < floatTolerance*scale
}

// normalizeString trims trailing whitespace only. Leading whitespace is
// significant.
func normalizeString(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}
