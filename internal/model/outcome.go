package model

import (
	"fmt"
	"strings"
)

// Outcome is the result classification of one test attempt.
type Outcome string

const (
	OutcomePass    Outcome = "PASS"
	OutcomeFail    Outcome = "FAIL"
	OutcomeSkipped Outcome = "SKIPPED"
	OutcomeError   Outcome = "ERROR"
)

// ParseOutcome maps the lowercase wire spelling used in run reports onto an
// Outcome. It is case-insensitive to tolerate hand-edited reports.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToUpper(s) {
	case "PASS", "PASSED":
		return OutcomePass, nil
	case "FAIL", "FAILED":
		return OutcomeFail, nil
	case "SKIP", "SKIPPED":
		return OutcomeSkipped, nil
	case "ERROR":
		return OutcomeError, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}
