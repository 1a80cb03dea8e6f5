// Package testkit generates deterministic sample snapshot pairs so the CLI
// and dashboard can be exercised without real hospital extracts.
package testkit

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"sheetdiff/adapters/excel"
	"sheetdiff/domain/table"
)

// Metric columns of the overview sheet
var overviewMetrics = []string{
	"Total patients treated in the last 12 months",
	"Newly diagnosed patients received drug treatments in the last 12 months",
	"Follow up patients and received drug treatments in the last 12 months",
	"Active patients (Received treatment in the last 12 months)",
}

var drugs = []string{
	"Genotropin (Pfizer)",
	"Norditropin (Novo Nordisk)",
	"Omnitrope (Sandoz)",
	"Saizen (Merck Serono)",
	"Ngenla (Pfizer)",
}

// Drift applied to the new snapshot so the comparison has changed rows
const newPeriodDrift = 0.85

// TestKit builds sample snapshot pairs from a fixed seed
type TestKit struct {
	seed int64
}

// NewTestKit creates a test kit with the given seed
func NewTestKit(seed int64) *TestKit {
	return &TestKit{seed: seed}
}

// SamplePair returns an old and new overview table. The new table drifts
// every metric by a fixed factor, drops the last drug and adds one, so all
// four diff categories are populated.
func (k *TestKit) SamplePair() (table.Table, table.Table) {
	rng := rand.New(rand.NewSource(k.seed))

	columns := append([]string{"Drug"}, overviewMetrics...)

	baseline := make(map[string][]float64, len(drugs))
	for _, drug := range drugs {
		values := make([]float64, len(overviewMetrics))
		for i := range values {
			values[i] = math.Round(20 + rng.Float64()*180)
		}
		baseline[drug] = values
	}

	oldTable := table.Table{Name: "Sheet1", Schema: table.NewSchema(columns...)}
	for _, drug := range drugs {
		oldTable.Records = append(oldTable.Records, overviewRecord(drug, baseline[drug], 1.0))
	}

	newTable := table.Table{Name: "Sheet1", Schema: table.NewSchema(columns...)}
	for _, drug := range drugs[:len(drugs)-1] {
		newTable.Records = append(newTable.Records, overviewRecord(drug, baseline[drug], newPeriodDrift))
	}
	added := make([]float64, len(overviewMetrics))
	for i := range added {
		added[i] = math.Round(10 + rng.Float64()*40)
	}
	newTable.Records = append(newTable.Records, overviewRecord("Humatrope (Eli Lilly)", added, 1.0))

	oldTable.InferKinds()
	newTable.InferKinds()
	return oldTable, newTable
}

func overviewRecord(drug string, values []float64, drift float64) table.Record {
	rec := table.Record{"Drug": table.String(drug)}
	for i, metric := range overviewMetrics {
		rec[metric] = table.Number(math.Round(values[i] * drift))
	}
	return rec
}

// WriteSampleWorkbooks writes old.xlsx and new.xlsx into dir
func (k *TestKit) WriteSampleWorkbooks(dir string) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	oldTable, newTable := k.SamplePair()

	oldPath := filepath.Join(dir, "old.xlsx")
	if err := excel.WriteTables(oldPath, []table.Table{oldTable}); err != nil {
		return "", "", err
	}
	newPath := filepath.Join(dir, "new.xlsx")
	if err := excel.WriteTables(newPath, []table.Table{newTable}); err != nil {
		return "", "", err
	}
	return oldPath, newPath, nil
}
