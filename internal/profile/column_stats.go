// Package profile computes per-column numeric summaries over tabular
// snapshots. The dashboard charts are fed from these profiles; the
// comparison engine itself never touches them.
package profile

import (
	"github.com/montanaflynn/stats"

	"sheetdiff/domain/table"
)

// ColumnProfile holds summary statistics for one numeric column
type ColumnProfile struct {
	Column      string  `json:"column"`
	Count       int     `json:"count"`
	MissingRate float64 `json:"missing_rate"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	StdDev      float64 `json:"std_dev"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Q1          float64 `json:"q1"`
	Q3          float64 `json:"q3"`
}

// ProfileTable computes a profile for every numeric column of the table.
// Columns with no present numeric values are skipped.
func ProfileTable(t table.Table) ([]ColumnProfile, error) {
	var profiles []ColumnProfile

	for _, col := range t.Schema.Columns {
		var data []float64
		missing := 0
		for _, rec := range t.Records {
			v := rec.Get(col.Name)
			if v.IsMissing() {
				missing++
				continue
			}
			if f, ok := v.Float(); ok {
				data = append(data, f)
			}
		}
		if len(data) == 0 {
			continue
		}

		p, err := profileColumn(col.Name, data)
		if err != nil {
			return nil, err
		}
		if t.NumRows() > 0 {
			p.MissingRate = float64(missing) / float64(t.NumRows())
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func profileColumn(name string, data []float64) (ColumnProfile, error) {
	p := ColumnProfile{Column: name, Count: len(data)}

	var err error
	if p.Mean, err = stats.Mean(data); err != nil {
		return p, err
	}
	if p.Median, err = stats.Median(data); err != nil {
		return p, err
	}
	if p.StdDev, err = stats.StandardDeviation(data); err != nil {
		return p, err
	}
	if p.Min, err = stats.Min(data); err != nil {
		return p, err
	}
	if p.Max, err = stats.Max(data); err != nil {
		return p, err
	}
	// Percentile needs at least two samples
	if len(data) > 1 {
		if p.Q1, err = stats.Percentile(data, 25); err != nil {
			return p, err
		}
		if p.Q3, err = stats.Percentile(data, 75); err != nil {
			return p, err
		}
	} else {
		p.Q1, p.Q3 = data[0], data[0]
	}
	return p, nil
}
