package testkit

import (
	"testing"

	"sheetdiff/domain/diff"
)

func TestSamplePairDeterministic(t *testing.T) {
	a1, b1 := NewTestKit(42).SamplePair()
	a2, b2 := NewTestKit(42).SamplePair()

	if a1.NumRows() != a2.NumRows() || b1.NumRows() != b2.NumRows() {
		t.Fatal("same seed produced different row counts")
	}
	for i, rec := range a1.Records {
		for _, col := range a1.Schema.Names() {
			if !rec.Get(col).Equal(a2.Records[i].Get(col)) {
				t.Fatalf("same seed produced different value at row %d column %q", i, col)
			}
		}
	}
}

func TestSamplePairPopulatesAllCategories(t *testing.T) {
	oldTable, newTable := NewTestKit(7).SamplePair()

	result, err := diff.Compare(oldTable, newTable, []string{"Drug"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	s := result.Summary
	if s.Added != 1 || s.Removed != 1 {
		t.Errorf("summary = %+v, want one added and one removed drug", s)
	}
	if s.Changed == 0 {
		t.Errorf("summary = %+v, want drifted rows classified changed", s)
	}
}
