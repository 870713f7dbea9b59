package devicetree

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/testgridgo/internal/model"
)

// Entry is one unresolved target description. Pointer fields and nil slices
// mean "not set by this entry"; inheritance resolution fills them from the
// parent chain.
type Entry struct {
	Name      string
	Inherits  string
	Vendor    *string
	Family    *string
	SubFamily *string
	Public    *bool

	Core       *model.CoreDescriptor
	Memories   []model.MemoryRegion
	Sectors    []model.SectorRange
	Algorithms []model.FlashAlgorithm

	// Defines holds the capability/definition flags declared by this entry.
	// Values stay as cty values until feature derivation so that overrides
	// can carry strings and numbers, not just booleans.
	Defines map[string]cty.Value

	// File is the path the entry was declared in, kept for diagnostics.
	File string
}

// Tree is the full set of unresolved entries, keyed by target name.
type Tree struct {
	Entries map[string]*Entry
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{Entries: make(map[string]*Entry)}
}

// Names returns all entry names in unspecified order.
func (t *Tree) Names() []string {
	names := make([]string, 0, len(t.Entries))
	for name := range t.Entries {
		names = append(names, name)
	}
	return names
}
