// Package main provides the entry point for the verification result
// collection tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/locussam/verifcollect/internal/config"
	"github.com/locussam/verifcollect/internal/discover"
	"github.com/locussam/verifcollect/internal/evaluator"
	"github.com/locussam/verifcollect/internal/logging"
	"github.com/locussam/verifcollect/internal/progress"
	"github.com/locussam/verifcollect/internal/report"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "verifcollect",
		Usage: "Collect verification experiment results into a comparison table",
		Description: `Parses through the given directory, collects all results of verification
experiments stored in score files (development and evaluation splits, with
and without ZT-normalization) and renders one comparison table across all
discovered experiments.

For the comparison report, CMC at the configured rank and TPIR at each FAR
threshold are reported. For the search report, DIR at each FAR threshold is
reported.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "directory",
				Aliases: []string{"D"},
				Value:   ".",
				Usage:   "directory to collect results from; may include search patterns as '*'",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "also write the report to this file",
			},
			&cli.StringFlag{
				Name:    "report-type",
				Aliases: []string{"r"},
				Value:   string(report.TypeComparison),
				Usage:   "report type: comparison or search",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Sources: cli.EnvVars("VERIFCOLLECT_CONFIG"),
				Usage:   "TOML configuration file (score-file names, FAR thresholds, rank)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "increase logging verbosity (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "disable the progress bar (useful for CI)",
			},
			&cli.BoolFlag{
				Name:   "self-test",
				Hidden: true,
			},
		},
		Action: run,
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	runID := logging.Setup(cmd.Count("verbose"))

	reportType, err := report.ParseType(cmd.String("report-type"))
	if err != nil {
		return err
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if cmd.Bool("self-test") {
		return selfTest(cfg)
	}

	pattern := cmd.String("directory")
	slog.Info("starting collection",
		"run_id", runID,
		"pattern", pattern,
		"report_type", reportType)

	table, err := collect(cfg, reportType, pattern, !cmd.Bool("no-progress"))
	if err != nil {
		return err
	}

	fmt.Print(table)

	if out := cmd.String("output"); out != "" {
		// #nosec G306 - 0640 allows owner/group to read, which is appropriate for report files
		if err := os.WriteFile(out, []byte(table), 0640); err != nil {
			return fmt.Errorf("failed to write report to %q: %w", out, err)
		}
		slog.Info("report written", "path", out)
	}
	return nil
}

// collect runs the discover -> evaluate(xN) -> render pipeline.
func collect(cfg *config.Config, t report.Type, pattern string, showProgress bool) (string, error) {
	dirs, err := discover.Discover(pattern, cfg.Scores.DevNonorm())
	if err != nil {
		return "", err
	}
	if len(dirs) == 0 {
		slog.Warn("no result directories found", "pattern", pattern)
	}

	prog := progress.NewManager(len(dirs)*report.PassCount(t, cfg.Report), showProgress)
	defer prog.Finish()

	ev := evaluator.New(cfg.Scores, prog)
	return report.NewBuilder(ev, cfg.Report).Build(t, dirs)
}

// selfTest builds a synthetic result tree and checks that the pipeline
// renders a row for it. Reserved for internal smoke-testing.
func selfTest(cfg *config.Config) error {
	dir, err := os.MkdirTemp("", "verifcollect-selftest-*")
	if err != nil {
		return fmt.Errorf("self-test: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	scores := []byte("a a p1 0.9\nb a p1 0.1\nb b p2 0.8\na b p2 0.2\n")
	for _, name := range cfg.Scores.All() {
		if err := os.WriteFile(filepath.Join(dir, name), scores, 0644); err != nil {
			return fmt.Errorf("self-test: %w", err)
		}
	}

	for _, t := range []report.Type{report.TypeComparison, report.TypeSearch} {
		table, err := collect(cfg, t, dir, false)
		if err != nil {
			return fmt.Errorf("self-test %s: %w", t, err)
		}
		if !containsRow(table) {
			return fmt.Errorf("self-test %s: report has no data rows:\n%s", t, table)
		}
	}

	fmt.Println("self-test ok")
	return nil
}

// containsRow reports whether a rendered table has at least one data row:
// borders and header account for exactly three lines.
func containsRow(table string) bool {
	lines := 0
	for _, c := range table {
		if c == '\n' {
			lines++
		}
	}
	return lines > 3
}
