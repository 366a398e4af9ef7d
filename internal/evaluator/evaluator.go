// Package evaluator computes verification metrics for discovered experiment
// directories, one immutable pass configuration at a time.
package evaluator

import (
	"log/slog"
	"path/filepath"

	"github.com/locussam/verifcollect/internal/config"
	"github.com/locussam/verifcollect/internal/measure"
	"github.com/locussam/verifcollect/internal/progress"
	"github.com/locussam/verifcollect/internal/result"
)

// Pass is the configuration of a single evaluation pass. A fresh value is
// constructed for every pass; passes never share state.
type Pass struct {
	Criterion    result.Criterion
	Rank         int
	FARThreshold float64
	// Complement expresses the computed value as 1-v, turning a
	// false-reject rate into an identification rate.
	Complement bool
}

// Evaluator loads score files and populates result entries.
type Evaluator struct {
	scores   config.ScoresConfig
	progress *progress.Manager
}

// New creates an evaluator for the given score-file naming scheme. The
// progress manager may be nil.
func New(scores config.ScoresConfig, prog *progress.Manager) *Evaluator {
	return &Evaluator{scores: scores, progress: prog}
}

// Evaluate computes the pass metric for every directory. Each directory
// yields exactly one entry, in input order; failures to read or compute a
// particular score file leave that field missing and never abort the scan.
func (e *Evaluator) Evaluate(dirs []string, pass Pass) []result.Entry {
	entries := make([]result.Entry, 0, len(dirs))
	for i, dir := range dirs {
		entry := result.Entry{
			Directory:    dir,
			SplitIndex:   i,
			Criterion:    pass.Criterion,
			Rank:         pass.Rank,
			FARThreshold: pass.FARThreshold,
		}

		entry.NonormDev = e.compute(filepath.Join(dir, e.scores.DevNonorm()), pass)
		entry.ZtnormDev = e.compute(filepath.Join(dir, e.scores.DevZtnorm()), pass)
		entry.NonormEval = e.compute(filepath.Join(dir, e.scores.EvalNonorm()), pass)
		entry.ZtnormEval = e.compute(filepath.Join(dir, e.scores.EvalZtnorm()), pass)

		if pass.Complement {
			entry.NonormDev = entry.NonormDev.Complement()
			entry.ZtnormDev = entry.ZtnormDev.Complement()
			entry.NonormEval = entry.NonormEval.Complement()
			entry.ZtnormEval = entry.ZtnormEval.Complement()
		}

		if !entry.Valid() {
			slog.Info("incomplete result directory, excluded from report",
				"directory", dir,
				"criterion", pass.Criterion)
		}

		entries = append(entries, entry)
		if e.progress != nil {
			e.progress.Step()
		}
	}
	return entries
}

// compute evaluates the pass metric on one score file. Any failure, from a
// missing file to a degenerate score set, produces a missing value.
func (e *Evaluator) compute(path string, pass Pass) result.Value {
	set, err := measure.ParseFile(path)
	if err != nil {
		slog.Debug("score file unavailable", "path", path, "error", err)
		return result.Missing()
	}

	var v float64
	switch pass.Criterion {
	case result.CriterionRR:
		v, err = set.RecognitionRate(pass.Rank)
	case result.CriterionFAR:
		var thr float64
		thr, err = set.FARThreshold(pass.FARThreshold)
		if err == nil {
			v, err = set.FRRAtThreshold(thr)
		}
	case result.CriterionDIR:
		var thr float64
		thr, err = set.FARThreshold(pass.FARThreshold)
		if err == nil {
			v, err = set.DetectionIdentificationRate(thr, pass.Rank)
		}
	default:
		slog.Warn("unknown criterion", "criterion", pass.Criterion)
		return result.Missing()
	}
	if err != nil {
		slog.Debug("metric not computable", "path", path, "criterion", pass.Criterion, "error", err)
		return result.Missing()
	}
	return result.Ok(v)
}
