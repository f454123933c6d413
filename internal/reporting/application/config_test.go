package application

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"SALES_REPORT_CONFIG", "SALES_REPORT_TITLE", "SALES_REPORT_TOP_MODELS"} {
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Title != "BMW Sales Deep Dive Analysis" {
		t.Fatalf("unexpected title %q", cfg.Title)
	}
	if cfg.TopModelLimit != 10 {
		t.Fatalf("unexpected top model limit %d", cfg.TopModelLimit)
	}
	if len(cfg.Sheets) != len(AllSheets) {
		t.Fatalf("expected all sheets by default, got %v", cfg.Sheets)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	content := []byte("title: Quarterly Review\ntop_model_limit: 5\nsheets:\n  - Raw_Data\n  - Top_Models\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SALES_REPORT_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Title != "Quarterly Review" {
		t.Fatalf("unexpected title %q", cfg.Title)
	}
	if cfg.TopModelLimit != 5 {
		t.Fatalf("unexpected top model limit %d", cfg.TopModelLimit)
	}
	if !cfg.WantsSheet(SheetTopModels) || cfg.WantsSheet(SheetRegional) {
		t.Fatalf("unexpected sheet selection %v", cfg.Sheets)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("SALES_REPORT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for a missing config file")
	}
}
