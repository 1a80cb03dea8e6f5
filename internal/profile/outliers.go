package profile

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"sheetdiff/domain/diff"
)

// DeltaOutlier flags one field change whose relative magnitude is extreme
// against the distribution of all changes in the comparison
type DeltaOutlier struct {
	Key           string  `json:"key"`
	Column        string  `json:"column"`
	PercentChange float64 `json:"percent_change"`
	PValue        float64 `json:"p_value"`
}

// FlagDeltaOutliers fits a normal distribution over the percent changes of
// all changed numeric fields and returns those whose two-sided tail
// probability falls below alpha. With fewer than three numeric changes
// there is no distribution to fit and nothing is flagged.
func FlagDeltaOutliers(result *diff.Result, alpha float64) []DeltaOutlier {
	type change struct {
		key, column string
		pct         float64
	}

	var changes []change
	var pcts []float64
	for _, row := range result.Changed {
		for col, fd := range row.Delta {
			if fd.PercentChange == nil {
				continue
			}
			changes = append(changes, change{key: row.Key, column: col, pct: *fd.PercentChange})
			pcts = append(pcts, *fd.PercentChange)
		}
	}
	if len(pcts) < 3 {
		return nil
	}

	mean, err := stats.Mean(pcts)
	if err != nil {
		return nil
	}
	sigma, err := stats.StandardDeviation(pcts)
	if err != nil || sigma == 0 {
		return nil
	}

	dist := distuv.Normal{Mu: mean, Sigma: sigma}
	var outliers []DeltaOutlier
	for _, c := range changes {
		// Two-sided tail probability
		p := 2 * dist.Survival(mean+math.Abs(c.pct-mean))
		if p < alpha {
			outliers = append(outliers, DeltaOutlier{
				Key:           c.key,
				Column:        c.column,
				PercentChange: c.pct,
				PValue:        p,
			})
		}
	}
	return outliers
}
