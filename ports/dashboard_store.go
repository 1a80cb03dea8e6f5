package ports

import (
	"context"

	"sheetdiff/domain/core"
	"sheetdiff/domain/diff"
	"sheetdiff/internal/profile"
)

// ChartType is the closed set of chart shapes the dashboard renders.
// Adding a chart means adding a constant here, not inventing a string tag.
type ChartType string

const (
	ChartGauge      ChartType = "gauge"
	ChartDonut      ChartType = "donut"
	ChartBar        ChartType = "bar"
	ChartGroupedBar ChartType = "grouped_bar"
)

// ChartRegistration describes one dashboard chart slot
type ChartRegistration struct {
	Key       string
	Title     string
	Type      ChartType
	SortOrder int
}

// ComparisonRecord is one comparison run as the dashboard stores it
type ComparisonRecord struct {
	ID          core.ComparisonID
	Label       string
	CreatedAt   core.Timestamp
	Result      *diff.Result
	OldProfiles []profile.ColumnProfile
	NewProfiles []profile.ColumnProfile
}

// DashboardStorePort persists comparison summaries and column profiles for
// the dashboard. It is a separate subsystem with no data dependency inside
// the comparator; it only consumes its output.
type DashboardStorePort interface {
	// EnsureSchema creates the dashboard tables when absent
	EnsureSchema(ctx context.Context) error

	// SaveComparison stores the summary, per-category segments and column
	// profiles of one comparison run
	SaveComparison(ctx context.Context, rec ComparisonRecord) error

	// LatestSummary returns the most recently stored summary and its label
	LatestSummary(ctx context.Context) (*diff.Summary, string, error)
}
