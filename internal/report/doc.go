// Package report parses structured test-execution reports and imports their
// facts into the store.
//
// A batch import treats every report file as an independent unit of work:
// a malformed file or an unknown target rejects that one report, is counted
// in the batch summary, and never aborts the rest of the batch.
package report
