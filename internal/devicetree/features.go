package devicetree

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/testgridgo/internal/ctxlog"
	"github.com/vk/testgridgo/internal/model"
)

type featureRoot struct {
	Features []*rawFeature `hcl:"feature,block"`
	Remain   hcl.Body      `hcl:",remain"`
}

type rawFeature struct {
	Name         string  `hcl:"name,label"`
	Define       string  `hcl:"define"`
	FriendlyName *string `hcl:"friendly_name,optional"`
	Description  *string `hcl:"description,optional"`
	Hidden       bool    `hcl:"hidden,optional"`
}

// LoadFeatureMapping parses the definition-to-feature mapping configuration.
// The mapping is pure data: each block binds one feature name to the
// capability define whose presence grants it. Results are sorted by feature
// name. Two features may not claim the same define.
func (l *Loader) LoadFeatureMapping(ctx context.Context, path string) ([]model.Feature, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse feature mapping %s: %w", path, diags)
	}

	var root featureRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode feature mapping %s: %w", path, diags)
	}

	byDefine := make(map[string]string)
	seen := make(map[string]bool)
	features := make([]model.Feature, 0, len(root.Features))
	for _, raw := range root.Features {
		if seen[raw.Name] {
			return nil, fmt.Errorf("feature %q declared twice in %s", raw.Name, path)
		}
		seen[raw.Name] = true
		if other, ok := byDefine[raw.Define]; ok {
			return nil, fmt.Errorf("define %q claimed by both feature %q and %q", raw.Define, other, raw.Name)
		}
		byDefine[raw.Define] = raw.Name

		feature := model.Feature{
			Name:         raw.Name,
			Define:       raw.Define,
			FriendlyName: raw.Name,
			Hidden:       raw.Hidden,
		}
		if raw.FriendlyName != nil {
			feature.FriendlyName = *raw.FriendlyName
		}
		if raw.Description != nil {
			feature.Description = *raw.Description
		}
		features = append(features, feature)
	}

	sort.Slice(features, func(i, j int) bool { return features[i].Name < features[j].Name })

	logger.Debug("Feature mapping loaded.", "feature_count", len(features))
	return features, nil
}
