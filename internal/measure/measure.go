// Package measure computes verification metrics from raw score files. It is
// the measurement boundary of the tool: callers hand it a file path and a
// criterion parameter and get back a scalar in [0,1].
package measure

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// maxScoreFileSize bounds how much of a score file is read (64MB).
const maxScoreFileSize = 64 << 20

// score is a single claimed-identity trial.
type score struct {
	value    float64
	positive bool
}

// probe groups all trials sharing one probe label. Identification metrics
// (RR, DIR) rank a probe's positive score against its competing scores.
type probe struct {
	label  string
	scores []score
}

// ScoreSet holds the parsed content of one score file.
type ScoreSet struct {
	positives []float64
	negatives []float64
	probes    []probe
}

// ParseFile reads a four-column score file: claimed-id, real-id, probe
// label, score. A trial is a positive when claimed-id equals real-id.
func ParseFile(path string) (*ScoreSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open score file %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	set := &ScoreSet{}
	probeIndex := make(map[string]int)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScoreFileSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("score file %q line %d: expected 4 columns, got %d", path, lineNo, len(fields))
		}

		value, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("score file %q line %d: invalid score %q: %w", path, lineNo, fields[3], err)
		}

		s := score{value: value, positive: fields[0] == fields[1]}
		if s.positive {
			set.positives = append(set.positives, value)
		} else {
			set.negatives = append(set.negatives, value)
		}

		label := fields[2]
		idx, ok := probeIndex[label]
		if !ok {
			idx = len(set.probes)
			probeIndex[label] = idx
			set.probes = append(set.probes, probe{label: label})
		}
		set.probes[idx].scores = append(set.probes[idx].scores, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read score file %q: %w", path, err)
	}

	return set, nil
}

// bestPositive returns the highest positive score of a probe.
func (p probe) bestPositive() (float64, bool) {
	best := 0.0
	found := false
	for _, s := range p.scores {
		if s.positive && (!found || s.value > best) {
			best = s.value
			found = true
		}
	}
	return best, found
}

// withinRank reports whether the probe's positive score ranks within the
// given rank among its competing (negative) scores. Ties do not displace
// the positive.
func (p probe) withinRank(rank int) bool {
	pos, ok := p.bestPositive()
	if !ok {
		return false
	}
	higher := 0
	for _, s := range p.scores {
		if !s.positive && s.value > pos {
			higher++
		}
	}
	return higher < rank
}

// RecognitionRate computes the CMC value at the given rank: the fraction of
// probes whose positive score is within the top rank scores of that probe.
func (s *ScoreSet) RecognitionRate(rank int) (float64, error) {
	if rank < 1 {
		return 0, fmt.Errorf("rank must be >= 1, got %d", rank)
	}

	total := 0
	identified := 0
	for _, p := range s.probes {
		if _, ok := p.bestPositive(); !ok {
			continue
		}
		total++
		if p.withinRank(rank) {
			identified++
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("no probes with a positive score")
	}
	return float64(identified) / float64(total), nil
}

// FARThreshold returns the decision threshold at which the false-accept
// rate on the negative scores does not exceed far. Acceptance is defined as
// score strictly above the threshold.
func (s *ScoreSet) FARThreshold(far float64) (float64, error) {
	if len(s.negatives) == 0 {
		return 0, fmt.Errorf("no negative scores")
	}
	if far < 0 || far >= 1 {
		return 0, fmt.Errorf("far must be in [0,1), got %v", far)
	}

	sorted := make([]float64, len(s.negatives))
	copy(sorted, s.negatives)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	allowed := int(far * float64(len(sorted)))
	if allowed >= len(sorted) {
		allowed = len(sorted) - 1
	}
	return sorted[allowed], nil
}

// FRRAtThreshold computes the false-reject rate of the positive scores at
// the given threshold: the fraction of positives not strictly above it.
func (s *ScoreSet) FRRAtThreshold(threshold float64) (float64, error) {
	if len(s.positives) == 0 {
		return 0, fmt.Errorf("no positive scores")
	}

	rejected := 0
	for _, v := range s.positives {
		if v <= threshold {
			rejected++
		}
	}
	return float64(rejected) / float64(len(s.positives)), nil
}

// DetectionIdentificationRate computes the fraction of probes that are both
// detected (positive score strictly above the threshold) and identified
// within the given rank.
func (s *ScoreSet) DetectionIdentificationRate(threshold float64, rank int) (float64, error) {
	if rank < 1 {
		return 0, fmt.Errorf("rank must be >= 1, got %d", rank)
	}

	total := 0
	hit := 0
	for _, p := range s.probes {
		pos, ok := p.bestPositive()
		if !ok {
			continue
		}
		total++
		if pos > threshold && p.withinRank(rank) {
			hit++
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("no probes with a positive score")
	}
	return float64(hit) / float64(total), nil
}
