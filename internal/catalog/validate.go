package catalog

import (
	"fmt"
	"sort"

	"github.com/vk/testgridgo/internal/model"
)

// validateTarget enforces the post-resolution invariants: exactly one default
// memory region per memory kind in use, and erase sectors that neither
// overlap nor reach outside the declared IROM1 region.
func validateTarget(t *model.Target) error {
	if err := validateMemories(t); err != nil {
		return err
	}
	return validateSectors(t)
}

func validateMemories(t *model.Target) error {
	defaults := make(map[model.MemoryKind]int)
	kinds := make(map[model.MemoryKind]bool)
	for _, mem := range t.Memories {
		kinds[mem.Kind] = true
		if mem.Default {
			defaults[mem.Kind]++
		}
	}
	for kind := range kinds {
		switch defaults[kind] {
		case 1:
		case 0:
			return &InvalidTargetError{Target: t.Name, Detail: fmt.Sprintf("no default %s region", kind)}
		default:
			return &InvalidTargetError{Target: t.Name, Detail: fmt.Sprintf("%d regions marked default for %s, want exactly one", defaults[kind], kind)}
		}
	}
	return nil
}

func validateSectors(t *model.Target) error {
	if len(t.Sectors) == 0 {
		return nil
	}

	var irom *model.MemoryRegion
	for i := range t.Memories {
		if t.Memories[i].Name == "IROM1" {
			irom = &t.Memories[i]
			break
		}
	}
	if irom == nil {
		return &InvalidTargetError{Target: t.Name, Detail: "sector layout declared but no IROM1 region"}
	}

	sectors := make([]model.SectorRange, len(t.Sectors))
	copy(sectors, t.Sectors)
	sort.Slice(sectors, func(i, j int) bool { return sectors[i].Offset < sectors[j].Offset })

	for i, sec := range sectors {
		if sec.Size == 0 {
			return &InvalidTargetError{Target: t.Name, Detail: fmt.Sprintf("sector at offset 0x%x has zero size", sec.Offset)}
		}
		// Two-step compare so offset+size cannot wrap around uint64.
		if sec.Offset > irom.Size || sec.Size > irom.Size-sec.Offset {
			return &InvalidTargetError{
				Target: t.Name,
				Detail: fmt.Sprintf("sector at offset 0x%x size 0x%x reaches outside IROM1 (size 0x%x)", sec.Offset, sec.Size, irom.Size),
			}
		}
		if i > 0 {
			prev := sectors[i-1]
			if prev.Offset+prev.Size > sec.Offset {
				return &InvalidTargetError{
					Target: t.Name,
					Detail: fmt.Sprintf("sectors at offsets 0x%x and 0x%x overlap", prev.Offset, sec.Offset),
				}
			}
		}
	}
	return nil
}
