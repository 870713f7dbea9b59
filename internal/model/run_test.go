package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalOutcome(t *testing.T) {
	t.Run("pass on retry wins", func(t *testing.T) {
		outcome, reason := FinalOutcome([]Attempt{
			{Index: 0, Outcome: OutcomeFail, Reason: "timeout"},
			{Index: 1, Outcome: OutcomePass},
		})
		assert.Equal(t, OutcomePass, outcome)
		assert.Empty(t, reason)
	})

	t.Run("exhausted retries report last failure with reason", func(t *testing.T) {
		outcome, reason := FinalOutcome([]Attempt{
			{Index: 0, Outcome: OutcomeFail, Reason: "timeout"},
			{Index: 1, Outcome: OutcomeFail, Reason: "bad checksum"},
		})
		assert.Equal(t, OutcomeFail, outcome)
		assert.Equal(t, "bad checksum", reason)
	})

	t.Run("placeholder attempts are never chosen", func(t *testing.T) {
		outcome, reason := FinalOutcome([]Attempt{
			{Index: 0, Outcome: OutcomeFail, Reason: "timeout"},
			{Index: 1, Outcome: OutcomeError, Reason: "retries exhausted", Placeholder: true},
		})
		assert.Equal(t, OutcomeFail, outcome)
		assert.Equal(t, "timeout", reason)
	})

	t.Run("order of input does not matter", func(t *testing.T) {
		outcome, _ := FinalOutcome([]Attempt{
			{Index: 2, Outcome: OutcomePass},
			{Index: 0, Outcome: OutcomeFail},
			{Index: 1, Outcome: OutcomeFail},
		})
		assert.Equal(t, OutcomePass, outcome)
	})

	t.Run("skipped is authoritative", func(t *testing.T) {
		outcome, reason := FinalOutcome([]Attempt{
			{Index: 0, Outcome: OutcomeSkipped, Reason: "no DAC on this target"},
		})
		assert.Equal(t, OutcomeSkipped, outcome)
		assert.Equal(t, "no DAC on this target", reason)
	})

	t.Run("empty history is an error", func(t *testing.T) {
		outcome, reason := FinalOutcome(nil)
		assert.Equal(t, OutcomeError, outcome)
		assert.NotEmpty(t, reason)
	})
}

func TestParseOutcome(t *testing.T) {
	for wire, want := range map[string]Outcome{
		"pass":    OutcomePass,
		"PASSED":  OutcomePass,
		"fail":    OutcomeFail,
		"failed":  OutcomeFail,
		"skip":    OutcomeSkipped,
		"skipped": OutcomeSkipped,
		"error":   OutcomeError,
	} {
		got, err := ParseOutcome(wire)
		require.NoError(t, err, wire)
		assert.Equal(t, want, got, wire)
	}

	_, err := ParseOutcome("flaky")
	assert.ErrorContains(t, err, "unknown outcome")
}
