package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Compare.OutputFile != "comparison_results.xlsx" {
		t.Errorf("OutputFile = %q, want default", cfg.Compare.OutputFile)
	}
}

func TestLoadKeyColumns(t *testing.T) {
	t.Setenv("KEY_COLUMNS", "ID, Name ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"ID", "Name"}
	if len(cfg.Compare.KeyColumns) != len(want) {
		t.Fatalf("KeyColumns = %v, want %v", cfg.Compare.KeyColumns, want)
	}
	for i := range want {
		if cfg.Compare.KeyColumns[i] != want[i] {
			t.Errorf("KeyColumns[%d] = %q, want %q", i, cfg.Compare.KeyColumns[i], want[i])
		}
	}
}

func TestSplitKeyColumnsEmpty(t *testing.T) {
	if got := SplitKeyColumns("  "); got != nil {
		t.Errorf("SplitKeyColumns(blank) = %v, want nil", got)
	}
}
