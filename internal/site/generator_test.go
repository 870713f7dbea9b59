package site_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/testgridgo/internal/model"
	"github.com/vk/testgridgo/internal/site"
	"github.com/vk/testgridgo/internal/store"
	"github.com/vk/testgridgo/internal/testutil"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	s := testutil.OpenStore(t)

	cat := &model.Catalog{
		Targets: []model.Target{
			{
				Name:   "LPC1768",
				Family: "LPC1700",
				Public: true,
				Core:   model.CoreDescriptor{Architecture: "ARMv7-M", CoreCount: 1},
				Memories: []model.MemoryRegion{
					{Name: "IRAM1", Kind: model.MemoryIRAM, Start: 0x10000000, Size: 0x8000, Default: true},
					{Name: "IROM1", Kind: model.MemoryIROM, Start: 0x0, Size: 0x80000, Default: true},
				},
				Features: []string{"spi"},
			},
			{
				Name:   "LPC1769",
				Parent: "LPC1768",
				Family: "LPC1700",
				Public: true,
				Core:   model.CoreDescriptor{Architecture: "ARMv7-M", CoreCount: 1},
			},
			{
				Name:   "LPC_HIDDEN",
				Family: "LPC1700",
				Public: false,
				Core:   model.CoreDescriptor{Architecture: "ARMv7-M", CoreCount: 1},
			},
		},
		Features: []model.Feature{
			{Name: "spi", Define: "DEVICE_SPI", FriendlyName: "SPI"},
			{Name: "secret", Define: "DEVICE_SECRET", FriendlyName: "Secret", Hidden: true},
		},
	}
	require.NoError(t, s.ReplaceCatalog(ctx, cat))

	require.NoError(t, s.StoreReport(ctx, "batch-1", "LPC1768", []model.CaseResult{
		{Case: "case-ticker", Attempts: []model.Attempt{
			{Index: 0, Outcome: model.OutcomeFail, Reason: "timeout"},
			{Index: 1, Outcome: model.OutcomePass},
		}},
		{Case: "case-spi", Attempts: []model.Attempt{
			{Index: 0, Outcome: model.OutcomeSkipped, Reason: "not supported"},
		}},
	}))
	// A target that has since left the catalog.
	require.NoError(t, s.StoreReport(ctx, "batch-1", "RETIRED", []model.CaseResult{
		{Case: "case-ticker", Attempts: []model.Attempt{{Index: 0, Outcome: model.OutcomeError, Reason: "no binary"}}},
	}))
	return s
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the full page set", func(t *testing.T) {
		s := seededStore(t)
		outDir := t.TempDir()

		summary, err := site.NewGenerator(s).Generate(ctx, outDir)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Orphans)
		assert.Greater(t, summary.Pages, 5)

		tree := readTree(t, outDir)
		assert.Contains(t, tree, "index.html")
		assert.Contains(t, tree, "matrix.html")
		assert.Contains(t, tree, "assets/site.css")
		assert.Contains(t, tree, "families/LPC1700.html")
		assert.Contains(t, tree, "families/assets/LPC1700.dot")
		assert.Contains(t, tree, "features/index.html")
		assert.Contains(t, tree, "features/spi.html")
		assert.Contains(t, tree, "details/LPC1768/case-ticker.html")
		assert.Contains(t, tree, "details/RETIRED/case-ticker.html")

		// Hidden features get no page.
		assert.NotContains(t, tree, "features/secret.html")
	})

	t.Run("generating twice yields a byte-identical tree", func(t *testing.T) {
		s := seededStore(t)
		gen := site.NewGenerator(s)

		first := t.TempDir()
		second := t.TempDir()
		_, err := gen.Generate(ctx, first)
		require.NoError(t, err)
		_, err = gen.Generate(ctx, second)
		require.NoError(t, err)

		assert.Equal(t, readTree(t, first), readTree(t, second))
	})

	t.Run("matrix shows outcomes, coverage gaps and orphans", func(t *testing.T) {
		s := seededStore(t)
		outDir := t.TempDir()
		_, err := site.NewGenerator(s).Generate(ctx, outDir)
		require.NoError(t, err)

		matrix := readTree(t, outDir)["matrix.html"]

		// LPC1769 is public but has no runs; it still gets a row.
		assert.Contains(t, matrix, "LPC1769")
		assert.Contains(t, matrix, "nodata")

		// The hidden target gets no row; the retired one is marked orphaned.
		assert.NotContains(t, matrix, "LPC_HIDDEN")
		assert.Contains(t, matrix, "RETIRED")
		assert.Contains(t, matrix, "orphaned")

		assert.Contains(t, matrix, "outcome-pass")
		assert.Contains(t, matrix, "outcome-skipped")
		assert.Contains(t, matrix, "outcome-error")
	})

	t.Run("detail page lists the retry history with reasons", func(t *testing.T) {
		s := seededStore(t)
		outDir := t.TempDir()
		_, err := site.NewGenerator(s).Generate(ctx, outDir)
		require.NoError(t, err)

		detail := readTree(t, outDir)["details/LPC1768/case-ticker.html"]
		assert.Contains(t, detail, "timeout")
		assert.Contains(t, detail, "outcome-fail")
		assert.Contains(t, detail, "outcome-pass")
		assert.Contains(t, detail, "batch-1")
	})

	t.Run("family page carries memory banks and the inheritance graph", func(t *testing.T) {
		s := seededStore(t)
		outDir := t.TempDir()
		_, err := site.NewGenerator(s).Generate(ctx, outDir)
		require.NoError(t, err)

		tree := readTree(t, outDir)
		family := tree["families/LPC1700.html"]
		assert.Contains(t, family, "IROM1: 512 kiB @ 0x00000000")
		assert.Contains(t, family, "IRAM1: 32 kiB @ 0x10000000")
		assert.Contains(t, family, "SPI")

		dot := tree["families/assets/LPC1700.dot"]
		assert.Contains(t, dot, `"LPC1769" -> "LPC1768"`)
	})
}
