package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/testgridgo/internal/catalog"
	"github.com/vk/testgridgo/internal/ctxlog"
	"github.com/vk/testgridgo/internal/devicetree"
	"github.com/vk/testgridgo/internal/fsutil"
	"github.com/vk/testgridgo/internal/report"
	"github.com/vk/testgridgo/internal/site"
	"github.com/vk/testgridgo/internal/store"
)

// BuildCatalog runs the target model builder stage: load the device tree,
// apply overrides, resolve inheritance, derive features, and replace the
// catalog in the store. Any resolution or validation failure aborts the
// stage; a broken catalog must not reach downstream stages.
func (a *App) BuildCatalog(ctx context.Context, treePath, overridesPath, featuresPath string) error {
	ctx = a.stageContext(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Info("Building target catalog.", "tree", treePath, "overrides", overridesPath)

	loader := devicetree.NewLoader()
	tree, err := loader.Load(ctx, treePath)
	if err != nil {
		return fmt.Errorf("loading device tree: %w", err)
	}
	if overridesPath != "" {
		if err := loader.ApplyOverrides(ctx, tree, overridesPath); err != nil {
			return fmt.Errorf("loading overrides: %w", err)
		}
	}

	mapping, err := loader.LoadFeatureMapping(ctx, featuresPath)
	if err != nil {
		return fmt.Errorf("loading feature mapping: %w", err)
	}

	cat, err := catalog.Build(ctx, tree, mapping)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	st, err := store.Open(ctx, a.config.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ReplaceCatalog(ctx, cat); err != nil {
		return fmt.Errorf("storing catalog: %w", err)
	}

	logger.Info("Catalog stored.", "targets", len(cat.Targets), "features", len(cat.Features))
	return nil
}

// ImportReports runs the test run importer stage over the given paths. A
// path may be a single report file or a directory of .json reports. An
// explicitly named file is always treated as a report; the extension filter
// applies to directory walks only, since target identity comes from file
// content, not file names.
func (a *App) ImportReports(ctx context.Context, paths []string) (*report.Summary, error) {
	ctx = a.stageContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading report path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".json")
		if err != nil {
			return nil, fmt.Errorf("discovering reports under %s: %w", path, err)
		}
		files = append(files, found...)
	}

	st, err := store.Open(ctx, a.config.DBPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return report.NewImporter(st).ImportBatch(ctx, files)
}

// GenerateSite runs the report generator stage into outDir.
func (a *App) GenerateSite(ctx context.Context, outDir string) (*site.Summary, error) {
	ctx = a.stageContext(ctx)

	st, err := store.Open(ctx, a.config.DBPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return site.NewGenerator(st).Generate(ctx, outDir)
}
