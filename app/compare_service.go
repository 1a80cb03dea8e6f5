package app

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"sheetdiff/adapters/excel"
	"sheetdiff/domain/core"
	"sheetdiff/domain/diff"
	"sheetdiff/internal"
	"sheetdiff/internal/profile"
	"sheetdiff/ports"
)

// Significance level for flagging extreme field changes in reports
const outlierAlpha = 0.05

// CompareService orchestrates one comparison run: load both snapshots,
// compare, profile the new snapshot and optionally export the workbook.
// The service holds no per-run state; concurrent runs are independent.
type CompareService struct {
	logger *internal.Logger
	writer ports.ReportWriterPort
}

// NewCompareService creates a compare service
func NewCompareService(logger *internal.Logger) *CompareService {
	return &CompareService{
		logger: logger,
		writer: excel.NewResultWriter(),
	}
}

// RunRequest describes one comparison invocation
type RunRequest struct {
	OldPath    string
	NewPath    string
	KeyColumns []string
	Sheet      ports.SheetSelector
	OutputPath string // empty skips the workbook export
}

// RunResult bundles the comparison output with its derived report data
type RunResult struct {
	ID          core.ComparisonID
	Label       string
	Sheet       string
	CreatedAt   core.Timestamp
	Result      *diff.Result
	OldProfiles []profile.ColumnProfile
	Profiles    []profile.ColumnProfile
	Outliers    []profile.DeltaOutlier
}

// Record converts the run into the form the dashboard store persists
func (r *RunResult) Record() ports.ComparisonRecord {
	return ports.ComparisonRecord{
		ID:          r.ID,
		Label:       r.Label,
		CreatedAt:   r.CreatedAt,
		Result:      r.Result,
		OldProfiles: r.OldProfiles,
		NewProfiles: r.Profiles,
	}
}

// Run executes a single comparison
func (s *CompareService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	s.logger.Info("comparing %s against %s", req.OldPath, req.NewPath)

	oldReader := excel.NewDataReader(req.OldPath)
	oldTable, err := oldReader.ReadTable(ctx, req.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to load old snapshot: %w", err)
	}

	newReader := excel.NewDataReader(req.NewPath)
	newTable, err := newReader.ReadTable(ctx, req.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to load new snapshot: %w", err)
	}

	result, err := diff.Compare(*oldTable, *newTable, req.KeyColumns)
	if err != nil {
		return nil, err
	}
	for _, warning := range result.Warnings {
		s.logger.Warn("%s", warning)
	}

	oldProfiles, err := profile.ProfileTable(*oldTable)
	if err != nil {
		return nil, fmt.Errorf("failed to profile old snapshot: %w", err)
	}
	newProfiles, err := profile.ProfileTable(*newTable)
	if err != nil {
		return nil, fmt.Errorf("failed to profile new snapshot: %w", err)
	}

	run := &RunResult{
		ID:          core.ComparisonID(core.NewID()),
		Label:       fmt.Sprintf("%s vs %s", filepath.Base(req.OldPath), filepath.Base(req.NewPath)),
		Sheet:       newTable.Name,
		CreatedAt:   core.Now(),
		Result:      result,
		OldProfiles: oldProfiles,
		Profiles:    newProfiles,
		Outliers:    profile.FlagDeltaOutliers(result, outlierAlpha),
	}

	if req.OutputPath != "" {
		if err := s.writer.WriteReport(ctx, result, req.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to export workbook: %w", err)
		}
		s.logger.Info("detailed results saved to %s", req.OutputPath)
	}

	return run, nil
}

// RunAllSheets compares every sheet name the two workbooks share, one
// comparison per sheet, running the independent pairs concurrently.
// Comparisons share no state, so caller-side parallelism is safe.
func (s *CompareService) RunAllSheets(ctx context.Context, oldPath, newPath string, keyColumns []string) ([]*RunResult, error) {
	oldSheets, err := excel.NewDataReader(oldPath).SheetNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list old workbook sheets: %w", err)
	}
	newSheets, err := excel.NewDataReader(newPath).SheetNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list new workbook sheets: %w", err)
	}

	newSet := make(map[string]bool, len(newSheets))
	for _, name := range newSheets {
		newSet[name] = true
	}
	var common []string
	for _, name := range oldSheets {
		if newSet[name] {
			common = append(common, name)
		}
	}
	if len(common) == 0 {
		return nil, fmt.Errorf("workbooks share no sheet names")
	}

	results := make([]*RunResult, len(common))
	g, gctx := errgroup.WithContext(ctx)
	for i, sheet := range common {
		g.Go(func() error {
			run, err := s.Run(gctx, RunRequest{
				OldPath:    oldPath,
				NewPath:    newPath,
				KeyColumns: keyColumns,
				Sheet:      ports.SheetSelector{Name: sheet},
			})
			if err != nil {
				return fmt.Errorf("sheet %q: %w", sheet, err)
			}
			results[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
