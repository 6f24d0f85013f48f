package matching

import "slices"

// Result is the immutable, ordered collection of outcomes produced by
// evaluating one expectation against one request.
type Result struct {
	name     string
	outcomes []Outcome
}

// NewResult returns an empty result for the named expectation.
// An empty name renders as unnamed in diagnostics.
func NewResult(name string) Result {
	return Result{name: name}
}

// Name returns the expectation name.
func (r Result) Name() string { return r.name }

// Outcomes returns the outcomes in evaluation order.
func (r Result) Outcomes() []Outcome { return slices.Clone(r.outcomes) }

// WithOutcome returns a copy of r with o appended.
func (r Result) WithOutcome(o Outcome) Result {
	outcomes := make([]Outcome, len(r.outcomes), len(r.outcomes)+1)
	copy(outcomes, r.outcomes)
	return Result{name: r.name, outcomes: append(outcomes, o)}
}

// IsEmpty reports whether no outcome was recorded.
func (r Result) IsEmpty() bool { return len(r.outcomes) == 0 }

// IsMismatch reports whether any outcome is a Mismatch or Missing.
// An empty result is not a mismatch.
func (r Result) IsMismatch() bool {
	return slices.ContainsFunc(r.outcomes, Outcome.IsFailure)
}

// Score is the sum of all hit scores, or 0 if the result is empty or any
// outcome failed.
func (r Result) Score() int {
	score := 0
	for _, o := range r.outcomes {
		if o.IsFailure() {
			return 0
		}
		score += o.Score
	}
	return score
}
