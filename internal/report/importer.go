package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/testgridgo/internal/ctxlog"
	"github.com/vk/testgridgo/internal/store"
)

// UnknownTargetError marks a report naming a target absent from the current
// catalog. The report is rejected; the batch continues.
type UnknownTargetError struct {
	Target string
	File   string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("report %s names unknown target %q", e.File, e.Target)
}

// Summary is the per-batch import accounting surfaced to the operator.
type Summary struct {
	Batch    string
	Imported int
	Attempts int
	Rejected int
}

// Importer loads parsed reports into the store.
type Importer struct {
	store *store.Store
}

// NewImporter creates an importer writing to the given store.
func NewImporter(s *store.Store) *Importer {
	return &Importer{store: s}
}

// ImportBatch imports every given report file under one fresh batch
// identity. Each file is one unit of work: parse failures and unknown
// targets reject that file only, with a warning and a summary count, and the
// batch carries on. The returned error is reserved for store-level failures
// that make continuing pointless.
func (imp *Importer) ImportBatch(ctx context.Context, paths []string) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)

	summary := &Summary{Batch: uuid.NewString()}
	logger.Info("Import batch starting.", "batch", summary.Batch, "reports", len(paths))

	for _, path := range paths {
		rep, err := ParseFile(path)
		if err != nil {
			logger.Warn("Report rejected: parse failure.", "file", path, "error", err)
			summary.Rejected++
			continue
		}

		known, err := imp.store.HasTarget(ctx, rep.Target)
		if err != nil {
			return summary, err
		}
		if !known {
			rejErr := &UnknownTargetError{Target: rep.Target, File: path}
			logger.Warn("Report rejected.", "error", rejErr)
			summary.Rejected++
			continue
		}

		if err := imp.store.StoreReport(ctx, summary.Batch, rep.Target, rep.Results); err != nil {
			return summary, fmt.Errorf("storing report %s: %w", path, err)
		}

		summary.Imported++
		for _, res := range rep.Results {
			summary.Attempts += len(res.Attempts)
		}
		logger.Debug("Report imported.", "file", path, "target", rep.Target, "cases", len(rep.Results))
	}

	logger.Info("Import batch finished.",
		"batch", summary.Batch,
		"imported", summary.Imported,
		"attempts", summary.Attempts,
		"rejected", summary.Rejected)
	return summary, nil
}
