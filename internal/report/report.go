// Package report drives the evaluation passes and renders the comparison
// tables.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/locussam/verifcollect/internal/config"
	"github.com/locussam/verifcollect/internal/evaluator"
	"github.com/locussam/verifcollect/internal/result"
)

// Type selects the report layout.
type Type string

const (
	// TypeComparison reports CMC at the configured rank plus TPIR at each
	// FAR threshold.
	TypeComparison Type = "comparison"
	// TypeSearch reports DIR at each FAR threshold.
	TypeSearch Type = "search"
)

// ParseType validates a report type name.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeComparison, TypeSearch:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown report type %q (expected %q or %q)", s, TypeComparison, TypeSearch)
	}
}

// PassRunner runs a single evaluation pass over a fixed directory set.
// *evaluator.Evaluator is the production implementation.
type PassRunner interface {
	Evaluate(dirs []string, pass evaluator.Pass) []result.Entry
}

// Builder assembles a report from repeated evaluation passes.
type Builder struct {
	runner PassRunner
	cfg    config.ReportConfig
}

// NewBuilder creates a report builder.
func NewBuilder(runner PassRunner, cfg config.ReportConfig) *Builder {
	return &Builder{runner: runner, cfg: cfg}
}

// PassCount returns how many evaluation passes the given report type runs,
// used to size the progress display.
func PassCount(t Type, cfg config.ReportConfig) int {
	if t == TypeComparison {
		return 1 + len(cfg.FARThresholds)
	}
	return len(cfg.FARThresholds)
}

// Build runs all passes for the report type over the discovered directories
// and renders the table.
func (b *Builder) Build(t Type, dirs []string) (string, error) {
	switch t {
	case TypeComparison:
		return b.buildComparison(dirs), nil
	case TypeSearch:
		return b.buildSearch(dirs), nil
	default:
		return "", fmt.Errorf("unknown report type %q", t)
	}
}

// buildComparison runs one recognition-rate pass and one complemented FAR
// pass per threshold, then joins them into CMC/TPIR columns.
func (b *Builder) buildComparison(dirs []string) string {
	headers := []string{fmt.Sprintf("CMC%% (R=%d)", b.cfg.Rank)}
	passes := []evaluator.Pass{{Criterion: result.CriterionRR, Rank: b.cfg.Rank}}
	for _, far := range b.cfg.FARThresholds {
		headers = append(headers, fmt.Sprintf("TPIR%% (FAR=%g)", far))
		passes = append(passes, evaluator.Pass{
			Criterion:    result.CriterionFAR,
			FARThreshold: far,
			Complement:   true,
		})
	}
	return b.render(headers, b.runPasses(dirs, passes))
}

// buildSearch runs one DIR pass per threshold.
func (b *Builder) buildSearch(dirs []string) string {
	var headers []string
	var passes []evaluator.Pass
	for _, far := range b.cfg.FARThresholds {
		headers = append(headers, fmt.Sprintf("DIR%% (FAR=%g)", far))
		passes = append(passes, evaluator.Pass{
			Criterion:    result.CriterionDIR,
			Rank:         b.cfg.Rank,
			FARThreshold: far,
		})
	}
	return b.render(headers, b.runPasses(dirs, passes))
}

// row is one rendered table line: the dev/nonorm value of each pass for a
// single directory, plus its split label.
type row struct {
	values []float64
	label  string
}

// runPasses evaluates every pass over the same ordered directory set and
// joins the per-pass entries by directory key. A directory contributes a
// row only when its entry is valid in every pass; row order follows the
// first pass.
func (b *Builder) runPasses(dirs []string, passes []evaluator.Pass) []row {
	if len(passes) == 0 {
		return nil
	}

	base := b.runner.Evaluate(dirs, passes[0])
	joined := make([]map[string]result.Entry, 0, len(passes)-1)
	for _, pass := range passes[1:] {
		byDir := make(map[string]result.Entry)
		for _, e := range b.runner.Evaluate(dirs, pass) {
			byDir[e.Directory] = e
		}
		joined = append(joined, byDir)
	}

	var rows []row
	for _, e := range base {
		cells, ok := devNonorm(e)
		if !ok {
			continue
		}
		values := []float64{cells}
		complete := true
		for _, byDir := range joined {
			other, found := byDir[e.Directory]
			if !found {
				complete = false
				break
			}
			v, ok := devNonorm(other)
			if !ok {
				complete = false
				break
			}
			values = append(values, v)
		}
		if !complete {
			slog.Info("directory dropped from report, not valid in every pass", "directory", e.Directory)
			continue
		}
		rows = append(rows, row{
			values: values,
			label:  fmt.Sprintf("split %d", e.SplitIndex),
		})
	}
	return rows
}

// devNonorm extracts the development-set non-normalized value of a valid
// entry.
func devNonorm(e result.Entry) (float64, bool) {
	if !e.Valid() {
		return 0, false
	}
	return e.NonormDev.Float()
}

// render draws the bordered fixed-width table.
func (b *Builder) render(headers []string, rows []row) string {
	var sb strings.Builder

	border := tableBorder(len(headers), '-')
	sb.WriteString(border)
	sb.WriteString(headerLine(headers))
	sb.WriteString(tableBorder(len(headers), '='))

	for _, r := range rows {
		sb.WriteString("|")
		for _, v := range r.values {
			fmt.Fprintf(&sb, "%-*s|", valueWidth, FormatMetric(v))
		}
		fmt.Fprintf(&sb, "%-*s|\n", labelWidth, r.label)
		sb.WriteString(border)
	}

	return sb.String()
}

// Write renders the report for the given type and directories to w.
func (b *Builder) Write(w io.Writer, t Type, dirs []string) error {
	table, err := b.Build(t, dirs)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, table)
	return err
}
