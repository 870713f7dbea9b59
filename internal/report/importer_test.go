package report_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/testgridgo/internal/model"
	"github.com/vk/testgridgo/internal/report"
	"github.com/vk/testgridgo/internal/store"
	"github.com/vk/testgridgo/internal/testutil"
)

func seedCatalog(t *testing.T, s *store.Store, names ...string) {
	t.Helper()
	cat := &model.Catalog{}
	for _, name := range names {
		cat.Targets = append(cat.Targets, model.Target{
			Name:   name,
			Family: model.NoFamily,
			Public: true,
			Core:   model.CoreDescriptor{Architecture: "ARMv7-M", CoreCount: 1},
		})
	}
	require.NoError(t, s.ReplaceCatalog(context.Background(), cat))
}

func TestImportBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown target rejects that file only", func(t *testing.T) {
		s := testutil.OpenStore(t)
		seedCatalog(t, s, "A", "B")

		dir := testutil.WriteFiles(t, map[string]string{
			"a.json":     `{"target": "A", "results": [{"test_case": "case-ticker", "outcome": "pass"}]}`,
			"b.json":     `{"target": "B", "results": [{"test_case": "case-ticker", "outcome": "fail", "reason": "timeout"}]}`,
			"ghost.json": `{"target": "GHOST", "results": [{"test_case": "case-ticker", "outcome": "pass"}]}`,
		})

		summary, err := report.NewImporter(s).ImportBatch(ctx, []string{
			filepath.Join(dir, "a.json"),
			filepath.Join(dir, "b.json"),
			filepath.Join(dir, "ghost.json"),
		})
		require.NoError(t, err)

		assert.Equal(t, 2, summary.Imported)
		assert.Equal(t, 1, summary.Rejected)
		assert.Equal(t, 2, summary.Attempts)
		assert.NotEmpty(t, summary.Batch)

		targets, err := s.TargetsWithRuns(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, targets)
	})

	t.Run("parse failure rejects that file only", func(t *testing.T) {
		s := testutil.OpenStore(t)
		seedCatalog(t, s, "A")

		dir := testutil.WriteFiles(t, map[string]string{
			"bad.json": `{"target": `,
			"a.json":   `{"target": "A", "results": [{"test_case": "case-ticker", "outcome": "pass"}]}`,
		})

		summary, err := report.NewImporter(s).ImportBatch(ctx, []string{
			filepath.Join(dir, "bad.json"),
			filepath.Join(dir, "a.json"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Imported)
		assert.Equal(t, 1, summary.Rejected)
	})

	t.Run("retry history lands with the derived final outcome", func(t *testing.T) {
		s := testutil.OpenStore(t)
		seedCatalog(t, s, "A")

		dir := testutil.WriteFiles(t, map[string]string{
			"a.json": `{
				"target": "A",
				"results": [{
					"test_case": "case-ticker",
					"outcome": "pass",
					"attempts": [
						{"index": 0, "outcome": "fail", "reason": "timeout"},
						{"index": 1, "outcome": "pass"}
					]
				}]
			}`,
		})

		summary, err := report.NewImporter(s).ImportBatch(ctx, []string{filepath.Join(dir, "a.json")})
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Attempts)

		finals, err := s.FinalResults(ctx)
		require.NoError(t, err)
		require.Len(t, finals, 1)
		assert.Equal(t, model.OutcomePass, finals[0].Outcome)

		attempts, err := s.Attempts(ctx, "A", "case-ticker")
		require.NoError(t, err)
		require.Len(t, attempts, 2)
		assert.Equal(t, "timeout", attempts[0].Reason)
	})

	t.Run("reimporting the same files leaves the store unchanged", func(t *testing.T) {
		s := testutil.OpenStore(t)
		seedCatalog(t, s, "A")

		dir := testutil.WriteFiles(t, map[string]string{
			"a.json": `{"target": "A", "results": [{"test_case": "case-ticker", "outcome": "pass"}]}`,
		})
		paths := []string{filepath.Join(dir, "a.json")}

		importer := report.NewImporter(s)
		first, err := importer.ImportBatch(ctx, paths)
		require.NoError(t, err)
		second, err := importer.ImportBatch(ctx, paths)
		require.NoError(t, err)

		assert.NotEqual(t, first.Batch, second.Batch)

		attempts, err := s.Attempts(ctx, "A", "case-ticker")
		require.NoError(t, err)
		require.Len(t, attempts, 1)
		assert.Equal(t, second.Batch, attempts[0].Batch)

		finals, err := s.FinalResults(ctx)
		require.NoError(t, err)
		assert.Len(t, finals, 1)
	})
}
