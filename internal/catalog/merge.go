package catalog

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/testgridgo/internal/devicetree"
)

// mergeEntries flattens a child entry over its resolved parent. Scalar fields
// the child set explicitly win; list-valued fields (memories, sectors,
// algorithms) replace the parent's list wholesale, or inherit it verbatim
// when the child supplies none. The defines map merges per key with the
// child winning.
func mergeEntries(parent, child *devicetree.Entry) *devicetree.Entry {
	merged := &devicetree.Entry{
		Name:     child.Name,
		Inherits: child.Inherits,
		File:     child.File,
	}

	merged.Vendor = pick(child.Vendor, parent.Vendor)
	merged.Family = pick(child.Family, parent.Family)
	merged.SubFamily = pick(child.SubFamily, parent.SubFamily)
	merged.Public = pickBool(child.Public, parent.Public)

	if child.Core != nil {
		merged.Core = child.Core
	} else {
		merged.Core = parent.Core
	}

	merged.Memories = child.Memories
	if merged.Memories == nil {
		merged.Memories = parent.Memories
	}
	merged.Sectors = child.Sectors
	if merged.Sectors == nil {
		merged.Sectors = parent.Sectors
	}
	merged.Algorithms = child.Algorithms
	if merged.Algorithms == nil {
		merged.Algorithms = parent.Algorithms
	}

	if parent.Defines == nil && child.Defines == nil {
		return merged
	}
	merged.Defines = make(map[string]cty.Value, len(parent.Defines)+len(child.Defines))
	for k, v := range parent.Defines {
		merged.Defines[k] = v
	}
	for k, v := range child.Defines {
		merged.Defines[k] = v
	}
	return merged
}

func pick(child, parent *string) *string {
	if child != nil {
		return child
	}
	return parent
}

func pickBool(child, parent *bool) *bool {
	if child != nil {
		return child
	}
	return parent
}
