package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
[scores]
dev = "dev"
eval = "eval"
nonorm = "raw"
ztnorm = "zt"

[report]
far_thresholds = [0.2, 0.02]
rank = 5
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scores.DevNonorm() != "dev-raw" {
		t.Errorf("expected dev-raw, got %s", cfg.Scores.DevNonorm())
	}
	if cfg.Scores.EvalZtnorm() != "eval-zt" {
		t.Errorf("expected eval-zt, got %s", cfg.Scores.EvalZtnorm())
	}
	if len(cfg.Report.FARThresholds) != 2 || cfg.Report.FARThresholds[0] != 0.2 {
		t.Errorf("unexpected thresholds: %v", cfg.Report.FARThresholds)
	}
	if cfg.Report.Rank != 5 {
		t.Errorf("expected rank 5, got %d", cfg.Report.Rank)
	}
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"scores-dev-nonorm", "scores-dev-ztnorm", "scores-eval-nonorm", "scores-eval-ztnorm"}
	got := cfg.Scores.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if len(cfg.Report.FARThresholds) != 3 {
		t.Errorf("expected 3 default thresholds, got %v", cfg.Report.FARThresholds)
	}
	if cfg.Report.Rank != 1 {
		t.Errorf("expected default rank 1, got %d", cfg.Report.Rank)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[report]\nrank = 3\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Report.Rank != 3 {
		t.Errorf("expected rank 3, got %d", cfg.Report.Rank)
	}
	if cfg.Scores.Dev != "scores-dev" {
		t.Errorf("expected default dev basename, got %s", cfg.Scores.Dev)
	}
}

func TestLoad_MissingFileError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoad_InvalidTOMLError(t *testing.T) {
	if _, err := Load(writeConfig(t, "this is not valid toml [[[")); err == nil {
		t.Fatal("expected error for invalid TOML, got nil")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"threshold out of range", "[report]\nfar_thresholds = [1.5]\n"},
		{"thresholds not descending", "[report]\nfar_thresholds = [0.01, 0.1]\n"},
		{"rank zero", "[report]\nrank = 0\n"},
		{"empty basename", "[scores]\ndev = \"\"\n"},
		{"basename with separator", "[scores]\ndev = \"a/b\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected validation error for %q", tt.content)
			}
		})
	}
}

func TestLoad_PathTraversalRejected(t *testing.T) {
	if _, err := Load("../../etc/config.toml"); err == nil {
		t.Fatal("expected error for traversal path, got nil")
	}
}
