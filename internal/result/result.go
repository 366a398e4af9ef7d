// Package result defines the per-directory experiment result model shared by
// the evaluator and the report builder.
package result

// Criterion selects which metric the evaluator computes for an entry.
type Criterion string

const (
	// CriterionRR is the recognition rate at a fixed rank (CMC at rank).
	CriterionRR Criterion = "RR"
	// CriterionFAR is the false-reject rate at a FAR-derived threshold.
	CriterionFAR Criterion = "FAR"
	// CriterionDIR is the detection and identification rate at a
	// FAR-derived threshold and fixed rank.
	CriterionDIR Criterion = "DIR"
)

// Value is a metric value that may be absent. A missing value marks a score
// file that could not be read or a metric that could not be computed; it
// carries no number, so downstream code cannot accidentally format one.
type Value struct {
	v  float64
	ok bool
}

// Ok returns a present Value.
func Ok(v float64) Value {
	return Value{v: v, ok: true}
}

// Missing returns an absent Value.
func Missing() Value {
	return Value{}
}

// Float returns the underlying number and whether it is present.
func (v Value) Float() (float64, bool) {
	return v.v, v.ok
}

// Present reports whether the value was computed.
func (v Value) Present() bool {
	return v.ok
}

// Complement returns 1-v for a present value and leaves a missing one
// missing. Used to express false-reject rates as identification rates.
func (v Value) Complement() Value {
	if !v.ok {
		return v
	}
	return Ok(1 - v.v)
}

// Entry holds the metric values computed for one discovered experiment
// directory under a single evaluation pass. Each pass produces its own
// entries; entries are never shared or mutated across passes.
type Entry struct {
	// Directory is the discovered leaf directory and the identity key used
	// to join entries across passes.
	Directory string

	// SplitIndex is the position of the directory within the discovery
	// order. It is stable for all passes of one invocation.
	SplitIndex int

	// Criterion and its parameters record which metric populated the
	// fields below.
	Criterion    Criterion
	Rank         int
	FARThreshold float64

	NonormDev  Value
	ZtnormDev  Value
	NonormEval Value
	ZtnormEval Value
}

// Valid reports whether all four score files produced a metric value. An
// invalid entry is excluded from rendered rows but does not abort the run.
func (e Entry) Valid() bool {
	return e.NonormDev.Present() &&
		e.ZtnormDev.Present() &&
		e.NonormEval.Present() &&
		e.ZtnormEval.Present()
}
