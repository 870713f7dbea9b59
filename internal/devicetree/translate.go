package devicetree

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/testgridgo/internal/model"
)

// translateTarget converts one decoded HCL block into an unresolved Entry,
// parsing the string address fields into integers.
func translateTarget(raw *rawTarget, file string) (*Entry, error) {
	entry := &Entry{
		Name:      raw.Name,
		Vendor:    raw.Vendor,
		Family:    raw.Family,
		SubFamily: raw.SubFamily,
		Public:    raw.Public,
		File:      file,
	}
	if raw.Inherits != nil {
		entry.Inherits = *raw.Inherits
	}

	if raw.Core != nil {
		count := raw.Core.Count
		if count == 0 {
			count = 1
		}
		entry.Core = &model.CoreDescriptor{
			Architecture: raw.Core.Architecture,
			HasFPU:       raw.Core.FPU,
			HasMPU:       raw.Core.MPU,
			CoreCount:    count,
		}
	}

	for _, mem := range raw.Memories {
		region, err := translateMemory(mem)
		if err != nil {
			return nil, fmt.Errorf("target %q memory %q: %w", raw.Name, mem.Name, err)
		}
		entry.Memories = append(entry.Memories, region)
	}

	if raw.Sectors != nil {
		sectors, err := translateSectors(*raw.Sectors)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", raw.Name, err)
		}
		entry.Sectors = sectors
	}

	for i, alg := range raw.Algorithms {
		algorithm, err := translateAlgorithm(alg)
		if err != nil {
			return nil, fmt.Errorf("target %q algorithm %d: %w", raw.Name, i, err)
		}
		entry.Algorithms = append(entry.Algorithms, algorithm)
	}

	if raw.Defines != cty.NilVal && !raw.Defines.IsNull() {
		if !raw.Defines.Type().IsObjectType() && !raw.Defines.Type().IsMapType() {
			return nil, fmt.Errorf("target %q: defines must be a map", raw.Name)
		}
		entry.Defines = raw.Defines.AsValueMap()
	}

	return entry, nil
}

func translateMemory(raw *rawMemory) (model.MemoryRegion, error) {
	kind := model.MemoryKind(raw.Kind)
	if kind != model.MemoryIRAM && kind != model.MemoryIROM {
		return model.MemoryRegion{}, fmt.Errorf("unknown memory kind %q", raw.Kind)
	}
	start, err := parseAddress(raw.Start)
	if err != nil {
		return model.MemoryRegion{}, fmt.Errorf("start: %w", err)
	}
	size, err := parseAddress(raw.Size)
	if err != nil {
		return model.MemoryRegion{}, fmt.Errorf("size: %w", err)
	}
	return model.MemoryRegion{
		Name:    raw.Name,
		Kind:    kind,
		Start:   start,
		Size:    size,
		Access:  raw.Access,
		Startup: raw.Startup,
		Default: raw.Default,
	}, nil
}

func translateSectors(raw [][]string) ([]model.SectorRange, error) {
	sectors := make([]model.SectorRange, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("sector %d: expected [offset, size] pair, got %d elements", i, len(pair))
		}
		offset, err := parseAddress(pair[0])
		if err != nil {
			return nil, fmt.Errorf("sector %d offset: %w", i, err)
		}
		size, err := parseAddress(pair[1])
		if err != nil {
			return nil, fmt.Errorf("sector %d size: %w", i, err)
		}
		sectors = append(sectors, model.SectorRange{Offset: offset, Size: size})
	}
	return sectors, nil
}

func translateAlgorithm(raw *rawAlgorithm) (model.FlashAlgorithm, error) {
	alg := model.FlashAlgorithm{File: raw.File, Default: raw.Default}

	var err error
	if alg.Start, err = parseAddress(raw.Start); err != nil {
		return alg, fmt.Errorf("start: %w", err)
	}
	if alg.Size, err = parseAddress(raw.Size); err != nil {
		return alg, fmt.Errorf("size: %w", err)
	}
	if raw.RAMStart != "" {
		if alg.RAMStart, err = parseAddress(raw.RAMStart); err != nil {
			return alg, fmt.Errorf("ram_start: %w", err)
		}
	}
	if raw.RAMSize != "" {
		if alg.RAMSize, err = parseAddress(raw.RAMSize); err != nil {
			return alg, fmt.Errorf("ram_size: %w", err)
		}
	}
	return alg, nil
}

// parseAddress accepts decimal or 0x-prefixed hex strings. HCL native syntax
// has no hex literals, so addresses are written as strings in the tree.
func parseAddress(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return v, nil
}
