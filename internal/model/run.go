package model

import "sort"

// Attempt is one recorded execution of a test case against a target.
// Placeholder marks a synthetic retry-exhaustion entry appended by the test
// runner; placeholders are kept for the raw history but never chosen as the
// final outcome.
type Attempt struct {
	Index       int
	Outcome     Outcome
	Reason      string
	Placeholder bool
}

// CaseResult is the full retry history of one test case from one run report.
type CaseResult struct {
	Case     string
	Attempts []Attempt
}

// FinalOutcome derives the single authoritative outcome for a retry history:
// the outcome of the highest-index attempt that is not a placeholder. A
// history exhausted without a PASS therefore reports the last real attempt's
// outcome and reason. An empty (or all-placeholder) history reports ERROR.
func FinalOutcome(attempts []Attempt) (Outcome, string) {
	sorted := make([]Attempt, len(attempts))
	copy(sorted, attempts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Placeholder {
			continue
		}
		return sorted[i].Outcome, sorted[i].Reason
	}
	return OutcomeError, "no recorded attempts"
}
