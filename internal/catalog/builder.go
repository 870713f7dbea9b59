package catalog

import (
	"context"
	"sort"

	"github.com/vk/testgridgo/internal/ctxlog"
	"github.com/vk/testgridgo/internal/devicetree"
	"github.com/vk/testgridgo/internal/model"
)

// Build produces the flattened catalog from an unresolved tree and a feature
// mapping. It is a pure transform: given the same tree and mapping it yields
// the same catalog, targets and features sorted by name.
func Build(ctx context.Context, tree *devicetree.Tree, mapping []model.Feature) (*model.Catalog, error) {
	logger := ctxlog.FromContext(ctx)

	resolved, err := resolveTree(ctx, tree)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)

	cat := &model.Catalog{Features: mapping}
	for _, name := range names {
		target, err := flatten(resolved[name], mapping)
		if err != nil {
			return nil, err
		}
		cat.Targets = append(cat.Targets, *target)
	}

	logger.Debug("Catalog built.", "targets", len(cat.Targets), "features", len(cat.Features))
	return cat, nil
}

// flatten converts one resolved entry into a catalog target, applying
// defaults, enforcing invariants, and deriving the feature set.
func flatten(entry *devicetree.Entry, mapping []model.Feature) (*model.Target, error) {
	if entry.Core == nil {
		return nil, &MissingCoreError{Target: entry.Name}
	}

	target := &model.Target{
		Name:       entry.Name,
		Parent:     entry.Inherits,
		Family:     model.NoFamily,
		Public:     true,
		Core:       *entry.Core,
		Memories:   entry.Memories,
		Sectors:    entry.Sectors,
		Algorithms: entry.Algorithms,
	}
	if entry.Vendor != nil {
		target.Vendor = *entry.Vendor
	}
	if entry.Family != nil {
		target.Family = *entry.Family
	}
	if entry.SubFamily != nil {
		target.SubFamily = *entry.SubFamily
	}
	if entry.Public != nil {
		target.Public = *entry.Public
	}

	if err := validateTarget(target); err != nil {
		return nil, err
	}

	target.Features = DeriveFeatures(entry.Defines, mapping)
	return target, nil
}
