package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vk/testgridgo/internal/model"
)

// StoreReport writes every case result of one run report inside a single
// transaction. Prior attempts for each (target, case) tuple are replaced so
// that re-importing the same report is idempotent; test case names are
// registered on first sight and never deleted.
func (s *Store) StoreReport(ctx context.Context, batch, target string, results []model.CaseResult) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, res := range results {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO test_cases(name) VALUES(?)", res.Case); err != nil {
				return fmt.Errorf("register test case %s: %w", res.Case, err)
			}

			if _, err := tx.ExecContext(ctx,
				"DELETE FROM test_runs WHERE target = ? AND test_case = ?", target, res.Case); err != nil {
				return fmt.Errorf("clear prior attempts for %s/%s: %w", target, res.Case, err)
			}

			for _, att := range res.Attempts {
				_, err := tx.ExecContext(ctx,
					`INSERT OR REPLACE INTO test_runs(target, test_case, attempt, outcome, reason, placeholder, batch)
					 VALUES(?, ?, ?, ?, ?, ?, ?)`,
					target, res.Case, att.Index, string(att.Outcome), att.Reason, boolInt(att.Placeholder), batch)
				if err != nil {
					return fmt.Errorf("insert attempt %s/%s/%d: %w", target, res.Case, att.Index, err)
				}
			}

			outcome, reason := model.FinalOutcome(res.Attempts)
			_, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO test_results(target, test_case, outcome, reason)
				 VALUES(?, ?, ?, ?)`,
				target, res.Case, string(outcome), reason)
			if err != nil {
				return fmt.Errorf("upsert final outcome %s/%s: %w", target, res.Case, err)
			}
		}
		return nil
	})
}

// FinalResult is one derived authoritative outcome cell.
type FinalResult struct {
	Target  string
	Case    string
	Outcome model.Outcome
	Reason  string
}

// FinalResults returns every derived final outcome, ordered by target then
// test case for deterministic rendering.
func (s *Store) FinalResults(ctx context.Context) ([]FinalResult, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT target, test_case, outcome, reason FROM test_results ORDER BY target ASC, test_case ASC")
	if err != nil {
		return nil, fmt.Errorf("query final results: %w", err)
	}
	defer rows.Close()

	var results []FinalResult
	for rows.Next() {
		var r FinalResult
		var outcome string
		if err := rows.Scan(&r.Target, &r.Case, &outcome, &r.Reason); err != nil {
			return nil, fmt.Errorf("scan final result: %w", err)
		}
		r.Outcome = model.Outcome(outcome)
		results = append(results, r)
	}
	return results, rows.Err()
}

// AttemptRecord is one raw stored attempt, with the batch that produced it.
type AttemptRecord struct {
	model.Attempt
	Batch string
}

// Attempts returns the raw retry history for one (target, case) tuple in
// attempt-index order.
func (s *Store) Attempts(ctx context.Context, target, testCase string) ([]AttemptRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT attempt, outcome, reason, placeholder, batch
		 FROM test_runs WHERE target = ? AND test_case = ? ORDER BY attempt ASC`, target, testCase)
	if err != nil {
		return nil, fmt.Errorf("query attempts for %s/%s: %w", target, testCase, err)
	}
	defer rows.Close()

	var attempts []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		var outcome string
		var placeholder int
		if err := rows.Scan(&a.Index, &outcome, &a.Reason, &placeholder, &a.Batch); err != nil {
			return nil, fmt.Errorf("scan attempt for %s/%s: %w", target, testCase, err)
		}
		a.Outcome = model.Outcome(outcome)
		a.Placeholder = placeholder != 0
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// TestCases returns every test case name ever observed, sorted ascending.
func (s *Store) TestCases(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM test_cases ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("query test cases: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan test case: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TargetsWithRuns returns every target name that has at least one stored
// attempt, sorted ascending. The list may include targets no longer in the
// catalog; the generator renders those as orphaned rows.
func (s *Store) TargetsWithRuns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT target FROM test_runs ORDER BY target ASC")
	if err != nil {
		return nil, fmt.Errorf("query targets with runs: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan target name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
