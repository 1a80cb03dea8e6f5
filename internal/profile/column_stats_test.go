package profile

import (
	"math"
	"testing"

	"sheetdiff/domain/diff"
	"sheetdiff/domain/table"
)

func TestProfileTable(t *testing.T) {
	tbl := table.Table{
		Schema: table.NewSchema("drug", "qty"),
		Records: []table.Record{
			{"drug": table.String("A"), "qty": table.Number(10)},
			{"drug": table.String("B"), "qty": table.Number(20)},
			{"drug": table.String("C"), "qty": table.Number(30)},
			{"drug": table.String("D"), "qty": table.Missing()},
		},
	}

	profiles, err := ProfileTable(tbl)
	if err != nil {
		t.Fatalf("ProfileTable() error = %v", err)
	}

	// Only the numeric column is profiled
	if len(profiles) != 1 {
		t.Fatalf("got %d profiles, want 1", len(profiles))
	}
	p := profiles[0]
	if p.Column != "qty" {
		t.Errorf("Column = %q, want qty", p.Column)
	}
	if p.Count != 3 {
		t.Errorf("Count = %d, want 3", p.Count)
	}
	if p.Mean != 20 {
		t.Errorf("Mean = %v, want 20", p.Mean)
	}
	if p.Min != 10 || p.Max != 30 {
		t.Errorf("Min/Max = %v/%v, want 10/30", p.Min, p.Max)
	}
	if math.Abs(p.MissingRate-0.25) > 1e-12 {
		t.Errorf("MissingRate = %v, want 0.25", p.MissingRate)
	}
}

func TestProfileTableNoNumericColumns(t *testing.T) {
	tbl := table.Table{
		Schema: table.NewSchema("name"),
		Records: []table.Record{
			{"name": table.String("A")},
		},
	}
	profiles, err := ProfileTable(tbl)
	if err != nil {
		t.Fatalf("ProfileTable() error = %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("got %d profiles, want 0", len(profiles))
	}
}

func TestFlagDeltaOutliers(t *testing.T) {
	// Nine small drifts and one extreme jump
	changed := make([]diff.ChangedRow, 0, 10)
	for i := 0; i < 9; i++ {
		pct := 1.0 + float64(i)*0.1
		changed = append(changed, diff.ChangedRow{
			Key:   "row",
			Delta: map[string]diff.FieldDelta{"qty": {PercentChange: &pct}},
		})
	}
	extreme := 500.0
	changed = append(changed, diff.ChangedRow{
		Key:   "spike",
		Delta: map[string]diff.FieldDelta{"qty": {PercentChange: &extreme}},
	})

	result := &diff.Result{Changed: changed}
	outliers := FlagDeltaOutliers(result, 0.05)

	if len(outliers) != 1 {
		t.Fatalf("got %d outliers, want 1: %+v", len(outliers), outliers)
	}
	if outliers[0].Key != "spike" {
		t.Errorf("outlier key = %q, want spike", outliers[0].Key)
	}
	if outliers[0].PercentChange != 500 {
		t.Errorf("outlier pct = %v, want 500", outliers[0].PercentChange)
	}
}

func TestFlagDeltaOutliersTooFewChanges(t *testing.T) {
	pct := 50.0
	result := &diff.Result{
		Changed: []diff.ChangedRow{
			{Key: "a", Delta: map[string]diff.FieldDelta{"qty": {PercentChange: &pct}}},
		},
	}
	if got := FlagDeltaOutliers(result, 0.05); got != nil {
		t.Errorf("expected nil with too few changes, got %+v", got)
	}
}
