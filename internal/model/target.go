package model

// NoFamily is stored as the family name for targets whose description tree
// never assigns them to a family.
const NoFamily = "NO_FAMILY"

// MemoryKind distinguishes the two memory classes a target declares.
type MemoryKind string

const (
	MemoryIRAM MemoryKind = "IRAM"
	MemoryIROM MemoryKind = "IROM"
)

// CoreDescriptor describes the processor core of a target. Every buildable
// target must carry one after inheritance resolution.
type CoreDescriptor struct {
	Architecture string
	HasFPU       bool
	HasMPU       bool
	CoreCount    int
}

// MemoryRegion is one declared memory bank of a target.
type MemoryRegion struct {
	Name    string
	Kind    MemoryKind
	Start   uint64
	Size    uint64
	Access  string
	Startup bool
	Default bool
}

// SectorRange is one erase-sector run, with Offset relative to the start of
// the IROM1 region.
type SectorRange struct {
	Offset uint64
	Size   uint64
}

// FlashAlgorithm references one flash-programming algorithm blob and the
// address windows it operates on.
type FlashAlgorithm struct {
	File     string
	RAMStart uint64
	RAMSize  uint64
	Start    uint64
	Size     uint64
	Default  bool
}

// Target is one fully resolved hardware variant. All inherited attributes
// have been flattened in; Features holds the derived capability flags sorted
// by name.
type Target struct {
	Name       string
	Parent     string
	Vendor     string
	Family     string
	SubFamily  string
	Public     bool
	Core       CoreDescriptor
	Memories   []MemoryRegion
	Sectors    []SectorRange
	Algorithms []FlashAlgorithm
	Features   []string
}

// Feature is one derived capability flag, with the display metadata supplied
// by the feature mapping configuration. Identity is Name; Define is the
// capability definition whose presence marks a target as having the feature.
type Feature struct {
	Name         string
	Define       string
	FriendlyName string
	Description  string
	Hidden       bool
}

// Catalog is the resolved, inheritance-flattened output of the target model
// builder. Targets and Features are sorted by name so that serializing the
// catalog is deterministic.
type Catalog struct {
	Targets  []Target
	Features []Feature
}

// Target returns the named target, or nil if the catalog does not contain it.
func (c *Catalog) Target(name string) *Target {
	for i := range c.Targets {
		if c.Targets[i].Name == name {
			return &c.Targets[i]
		}
	}
	return nil
}
