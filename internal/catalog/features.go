package catalog

import (
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/testgridgo/internal/model"
)

// DeriveFeatures computes the feature set granted by a capability define map
// under the given mapping. A feature is present iff its define exists and is
// non-false: a bool false or a null value withholds it, any other value
// grants it. The result is sorted by feature name.
//
// This is a pure function so it can be exercised with literal define sets.
func DeriveFeatures(defines map[string]cty.Value, mapping []model.Feature) []string {
	var features []string
	for _, feature := range mapping {
		value, ok := defines[feature.Define]
		if !ok {
			continue
		}
		if defineGrants(value) {
			features = append(features, feature.Name)
		}
	}
	sort.Strings(features)
	return features
}

func defineGrants(v cty.Value) bool {
	if v.IsNull() {
		return false
	}
	if v.Type() == cty.Bool {
		return v.True()
	}
	return true
}
