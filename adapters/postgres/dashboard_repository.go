// Package postgres persists comparison summaries for the dashboard. The
// schema mirrors the chart tables the dashboard reads: a chart registry,
// gauge metrics, distribution segments and per-column bar series. It has no
// data dependency inside the comparator; it only stores its output.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sheetdiff/domain/diff"
	"sheetdiff/internal/errors"
	"sheetdiff/internal/profile"
	"sheetdiff/ports"
)

// dashboardRepository implements DashboardStorePort for PostgreSQL
type dashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *sqlx.DB) ports.DashboardStorePort {
	return &dashboardRepository{db: db}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS comparisons (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		total_old INTEGER NOT NULL,
		total_new INTEGER NOT NULL,
		added INTEGER NOT NULL,
		removed INTEGER NOT NULL,
		changed INTEGER NOT NULL,
		unchanged INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS dashboard_charts (
		chart_key TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		chart_type TEXT NOT NULL,
		sort_order INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS metrics (
		comparison_id TEXT NOT NULL REFERENCES comparisons(id) ON DELETE CASCADE,
		chart_key TEXT NOT NULL,
		metric_label TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		sort_order INTEGER NOT NULL,
		PRIMARY KEY (comparison_id, chart_key, metric_label)
	)`,
	`CREATE TABLE IF NOT EXISTS distribution_segments (
		comparison_id TEXT NOT NULL REFERENCES comparisons(id) ON DELETE CASCADE,
		chart_key TEXT NOT NULL,
		label TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		sort_order INTEGER NOT NULL,
		PRIMARY KEY (comparison_id, chart_key, label)
	)`,
	`CREATE TABLE IF NOT EXISTS column_profiles (
		comparison_id TEXT NOT NULL REFERENCES comparisons(id) ON DELETE CASCADE,
		side TEXT NOT NULL,
		column_name TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		missing_rate DOUBLE PRECISION NOT NULL,
		mean DOUBLE PRECISION NOT NULL,
		median DOUBLE PRECISION NOT NULL,
		std_dev DOUBLE PRECISION NOT NULL,
		min DOUBLE PRECISION NOT NULL,
		max DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (comparison_id, side, column_name)
	)`,
}

// Chart registry entries the dashboard renders, seeded once
var chartRegistry = []ports.ChartRegistration{
	{Key: "gauge_added", Title: "Added rows", Type: ports.ChartGauge, SortOrder: 1},
	{Key: "gauge_removed", Title: "Removed rows", Type: ports.ChartGauge, SortOrder: 2},
	{Key: "gauge_changed", Title: "Changed rows", Type: ports.ChartGauge, SortOrder: 3},
	{Key: "gauge_unchanged", Title: "Unchanged rows", Type: ports.ChartGauge, SortOrder: 4},
	{Key: "donut_categories", Title: "Row categories", Type: ports.ChartDonut, SortOrder: 5},
	{Key: "bars_columns", Title: "Changes per column", Type: ports.ChartBar, SortOrder: 6},
	{Key: "grouped_profile_means", Title: "Column means, old vs new", Type: ports.ChartGroupedBar, SortOrder: 7},
}

// EnsureSchema creates the dashboard tables and chart registry when absent
func (r *dashboardRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create dashboard schema: %w", err)
		}
	}

	for _, chart := range chartRegistry {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO dashboard_charts (chart_key, title, chart_type, sort_order)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (chart_key) DO UPDATE SET title = $2, chart_type = $3, sort_order = $4`,
			chart.Key, chart.Title, string(chart.Type), chart.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to register chart %s: %w", chart.Key, err)
		}
	}
	return nil
}

// SaveComparison stores one comparison run and its chart data in a single
// transaction
func (r *dashboardRepository) SaveComparison(ctx context.Context, rec ports.ComparisonRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	id := rec.ID
	s := rec.Result.Summary
	_, err = tx.ExecContext(ctx, `
		INSERT INTO comparisons (id, label, total_old, total_new, added, removed, changed, unchanged, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id.String(), rec.Label, s.TotalOld, s.TotalNew, s.Added, s.Removed, s.Changed, s.Unchanged, rec.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert comparison: %w", err)
	}

	gauges := []struct {
		key   string
		label string
		value float64
	}{
		{"gauge_added", "Added", float64(s.Added)},
		{"gauge_removed", "Removed", float64(s.Removed)},
		{"gauge_changed", "Changed", float64(s.Changed)},
		{"gauge_unchanged", "Unchanged", float64(s.Unchanged)},
	}
	for i, g := range gauges {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO metrics (comparison_id, chart_key, metric_label, value, sort_order)
			VALUES ($1, $2, $3, $4, $5)`,
			id.String(), g.key, g.label, g.value, i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to insert metric %s: %w", g.key, err)
		}
	}

	for i, g := range gauges {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO distribution_segments (comparison_id, chart_key, label, value, sort_order)
			VALUES ($1, 'donut_categories', $2, $3, $4)`,
			id.String(), g.label, g.value, i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to insert segment %s: %w", g.label, err)
		}
	}

	// Changes per column feed the bar chart
	columnChanges := make(map[string]int)
	for _, row := range rec.Result.Changed {
		for col := range row.Delta {
			columnChanges[col]++
		}
	}
	order := 1
	for _, col := range rec.Result.Columns {
		n, ok := columnChanges[col]
		if !ok {
			continue
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO distribution_segments (comparison_id, chart_key, label, value, sort_order)
			VALUES ($1, 'bars_columns', $2, $3, $4)`,
			id.String(), col, float64(n), order,
		)
		if err != nil {
			return fmt.Errorf("failed to insert column segment %s: %w", col, err)
		}
		order++
	}

	// Profiles of both sides feed the grouped old-vs-new bars
	sides := []struct {
		name     string
		profiles []profile.ColumnProfile
	}{
		{"old", rec.OldProfiles},
		{"new", rec.NewProfiles},
	}
	for _, side := range sides {
		for _, p := range side.profiles {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO column_profiles (comparison_id, side, column_name, row_count, missing_rate, mean, median, std_dev, min, max)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				id.String(), side.name, p.Column, p.Count, p.MissingRate, p.Mean, p.Median, p.StdDev, p.Min, p.Max,
			)
			if err != nil {
				return fmt.Errorf("failed to insert %s profile %s: %w", side.name, p.Column, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit comparison: %w", err)
	}
	return nil
}

// LatestSummary returns the most recently stored summary and its label
func (r *dashboardRepository) LatestSummary(ctx context.Context) (*diff.Summary, string, error) {
	var row struct {
		Label     string `db:"label"`
		TotalOld  int    `db:"total_old"`
		TotalNew  int    `db:"total_new"`
		Added     int    `db:"added"`
		Removed   int    `db:"removed"`
		Changed   int    `db:"changed"`
		Unchanged int    `db:"unchanged"`
	}

	err := r.db.GetContext(ctx, &row, `
		SELECT label, total_old, total_new, added, removed, changed, unchanged
		FROM comparisons ORDER BY created_at DESC LIMIT 1`)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", errors.NotFound("stored comparison")
		}
		return nil, "", errors.DatabaseError("failed to load latest summary", err)
	}

	return &diff.Summary{
		TotalOld:  row.TotalOld,
		TotalNew:  row.TotalNew,
		Added:     row.Added,
		Removed:   row.Removed,
		Changed:   row.Changed,
		Unchanged: row.Unchanged,
	}, row.Label, nil
}
