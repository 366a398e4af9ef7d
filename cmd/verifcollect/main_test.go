package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/locussam/verifcollect/internal/config"
	"github.com/locussam/verifcollect/internal/report"
)

const cleanScores = `a a p1 0.9
b a p1 0.1
c a p1 0.1
b b p2 0.8
a b p2 0.2
c b p2 0.1
`

func writeExperiment(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(cleanScores), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestCollect_EndToEndComparison(t *testing.T) {
	cfg := config.Default()
	root := t.TempDir()
	writeExperiment(t, filepath.Join(root, "exp1"), cfg.Scores.All()...)
	writeExperiment(t, filepath.Join(root, "exp2"), cfg.Scores.All()...)

	table, err := collect(cfg, report.TypeComparison, root, false)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	for _, want := range []string{"CMC% (R=1)", "TPIR% (FAR=0.001)", "split 0", "split 1"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
	if strings.Contains(table, "split 2") {
		t.Errorf("unexpected extra row:\n%s", table)
	}
}

func TestCollect_EndToEndSearch(t *testing.T) {
	cfg := config.Default()
	root := t.TempDir()
	writeExperiment(t, filepath.Join(root, "exp"), cfg.Scores.All()...)

	table, err := collect(cfg, report.TypeSearch, root, false)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if !strings.Contains(table, "DIR% (FAR=0.1)") || !strings.Contains(table, "split 0") {
		t.Errorf("unexpected search table:\n%s", table)
	}
}

func TestCollect_EmptyPatternRendersHeaderOnly(t *testing.T) {
	cfg := config.Default()

	table, err := collect(cfg, report.TypeComparison, filepath.Join(t.TempDir(), "nothing-*"), false)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header-only table, got %d lines:\n%s", len(lines), table)
	}
}

func TestCollect_IncompleteDirectoryOmitted(t *testing.T) {
	cfg := config.Default()
	root := t.TempDir()
	writeExperiment(t, filepath.Join(root, "complete"), cfg.Scores.All()...)
	// Missing the eval/ztnorm file: discovered, evaluated, but excluded
	// from rendered rows.
	writeExperiment(t, filepath.Join(root, "partial"),
		cfg.Scores.DevNonorm(), cfg.Scores.DevZtnorm(), cfg.Scores.EvalNonorm())

	table, err := collect(cfg, report.TypeComparison, root, false)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	rows := strings.Count(table, "|split ") // data rows only; header label has a leading space
	if rows != 1 {
		t.Errorf("expected exactly 1 data row, got %d:\n%s", rows, table)
	}
}

func TestSelfTest(t *testing.T) {
	if err := selfTest(config.Default()); err != nil {
		t.Fatalf("selfTest failed: %v", err)
	}
}
