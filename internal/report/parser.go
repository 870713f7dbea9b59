package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/vk/testgridgo/internal/model"
)

// Report is one parsed run report: every case result from executing the
// suite once (with retries) against one target.
type Report struct {
	Target  string
	Results []model.CaseResult
}

// rawReport is the wire format. Filenames carry no semantics; the target
// identity is part of the document.
type rawReport struct {
	Target  string      `json:"target"`
	Results []rawResult `json:"results"`
}

type rawResult struct {
	Case    string       `json:"test_case"`
	Outcome string       `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
	// Attempts holds the per-attempt sub-results for retried cases. When
	// absent, the top-level outcome is the single attempt.
	Attempts []rawAttempt `json:"attempts,omitempty"`
}

type rawAttempt struct {
	Index       int    `json:"index"`
	Outcome     string `json:"outcome"`
	Reason      string `json:"reason,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// ParseFile reads and validates one report file.
func ParseFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	rep, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", path, err)
	}
	return rep, nil
}

// Parse decodes one report document.
func Parse(data []byte) (*Report, error) {
	var raw rawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed report: %w", err)
	}
	if raw.Target == "" {
		return nil, fmt.Errorf("malformed report: missing target name")
	}

	rep := &Report{Target: raw.Target}
	seen := make(map[string]bool)
	for i, res := range raw.Results {
		if res.Case == "" {
			return nil, fmt.Errorf("result %d: missing test case name", i)
		}
		if seen[res.Case] {
			return nil, fmt.Errorf("result %d: duplicate test case %q", i, res.Case)
		}
		seen[res.Case] = true

		attempts, err := translateAttempts(res)
		if err != nil {
			return nil, fmt.Errorf("test case %q: %w", res.Case, err)
		}
		rep.Results = append(rep.Results, model.CaseResult{Case: res.Case, Attempts: attempts})
	}
	return rep, nil
}

func translateAttempts(res rawResult) ([]model.Attempt, error) {
	if len(res.Attempts) == 0 {
		outcome, err := model.ParseOutcome(res.Outcome)
		if err != nil {
			return nil, err
		}
		return []model.Attempt{{Index: 0, Outcome: outcome, Reason: res.Reason}}, nil
	}

	attempts := make([]model.Attempt, 0, len(res.Attempts))
	indices := make(map[int]bool)
	for _, raw := range res.Attempts {
		if indices[raw.Index] {
			return nil, fmt.Errorf("duplicate attempt index %d", raw.Index)
		}
		indices[raw.Index] = true

		outcome, err := model.ParseOutcome(raw.Outcome)
		if err != nil {
			return nil, fmt.Errorf("attempt %d: %w", raw.Index, err)
		}
		attempts = append(attempts, model.Attempt{
			Index:       raw.Index,
			Outcome:     outcome,
			Reason:      raw.Reason,
			Placeholder: raw.Placeholder,
		})
	}
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].Index < attempts[j].Index })
	return attempts, nil
}
