package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"sheetdiff/adapters/report"
	"sheetdiff/app"
	"sheetdiff/internal"
	"sheetdiff/internal/config"
	"sheetdiff/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetdiff",
		Short: "Compare two spreadsheet snapshots and report row-level differences",
	}

	rootCmd.AddCommand(
		newCompareCmd(),
		newSheetsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCompareCmd() *cobra.Command {
	var keyColumns string
	var sheet string
	var output string

	cmd := &cobra.Command{
		Use:   "compare [old-file] [new-file]",
		Short: "Compare one sheet of two snapshot files",
		Long: `Compare an old and a new spreadsheet extract row by row.

Rows are matched by --key columns when given, by position otherwise.

Example: sheetdiff compare old.xlsx new.xlsx --key ID --out comparison_results.xlsx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := internal.NewDefaultLogger()
			service := app.NewCompareService(logger)

			run, err := service.Run(cmd.Context(), app.RunRequest{
				OldPath:    args[0],
				NewPath:    args[1],
				KeyColumns: config.SplitKeyColumns(keyColumns),
				Sheet:      parseSheetFlag(sheet),
				OutputPath: output,
			})
			if err != nil {
				return err
			}

			report.PrintSummary(cmd.OutOrStdout(), run.Result)
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nDetailed results saved to: %s\n", output)
			}
			for _, o := range run.Outliers {
				fmt.Fprintf(cmd.OutOrStdout(), "Outlier change: key %s column %q moved %+.1f%%\n",
					o.Key, o.Column, o.PercentChange)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyColumns, "key", "", "comma-separated key columns for row matching (e.g. ID,Name)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name or 0-based index (default: first sheet)")
	cmd.Flags().StringVar(&output, "out", "comparison_results.xlsx", "output workbook path (empty to skip export)")
	return cmd
}

func newSheetsCmd() *cobra.Command {
	var keyColumns string

	cmd := &cobra.Command{
		Use:   "sheets [old-file] [new-file]",
		Short: "Compare every sheet the two workbooks share",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := internal.NewDefaultLogger()
			service := app.NewCompareService(logger)

			runs, err := service.RunAllSheets(cmd.Context(), args[0], args[1], config.SplitKeyColumns(keyColumns))
			if err != nil {
				return err
			}
			for _, run := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "\nSheet: %s\n", run.Sheet)
				report.PrintSummary(cmd.OutOrStdout(), run.Result)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyColumns, "key", "", "comma-separated key columns for row matching")
	return cmd
}

// parseSheetFlag treats a numeric flag value as a 0-based index, anything
// else as a sheet name
func parseSheetFlag(raw string) ports.SheetSelector {
	if raw == "" {
		return ports.SheetSelector{}
	}
	if idx, err := strconv.Atoi(raw); err == nil {
		return ports.SheetSelector{Index: idx}
	}
	return ports.SheetSelector{Name: raw}
}
