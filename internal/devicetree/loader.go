package devicetree

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/testgridgo/internal/ctxlog"
	"github.com/vk/testgridgo/internal/fsutil"
)

// fileRoot decodes the top-level blocks of one device description file.
type fileRoot struct {
	Targets []*rawTarget `hcl:"target,block"`
	Remain  hcl.Body     `hcl:",remain"`
}

type rawTarget struct {
	Name      string  `hcl:"name,label"`
	Inherits  *string `hcl:"inherits,optional"`
	Vendor    *string `hcl:"vendor,optional"`
	Family    *string `hcl:"family,optional"`
	SubFamily *string `hcl:"sub_family,optional"`
	Public    *bool   `hcl:"public,optional"`

	Core       *rawCore        `hcl:"core,block"`
	Memories   []*rawMemory    `hcl:"memory,block"`
	Sectors    *[][]string     `hcl:"sectors,optional"`
	Algorithms []*rawAlgorithm `hcl:"algorithm,block"`

	Defines cty.Value `hcl:"defines,optional"`
}

type rawCore struct {
	Architecture string `hcl:"architecture"`
	FPU          bool   `hcl:"fpu,optional"`
	MPU          bool   `hcl:"mpu,optional"`
	Count        int    `hcl:"count,optional"`
}

// rawMemory uses string address fields because HCL has no hex integer
// literals and device descriptions are conventionally written in hex.
type rawMemory struct {
	Name    string `hcl:"name,label"`
	Kind    string `hcl:"kind"`
	Start   string `hcl:"start"`
	Size    string `hcl:"size"`
	Access  string `hcl:"access,optional"`
	Startup bool   `hcl:"startup,optional"`
	Default bool   `hcl:"default,optional"`
}

type rawAlgorithm struct {
	File     string `hcl:"file"`
	RAMStart string `hcl:"ram_start,optional"`
	RAMSize  string `hcl:"ram_size,optional"`
	Start    string `hcl:"start"`
	Size     string `hcl:"size"`
	Default  bool   `hcl:"default,optional"`
}

// Loader is the HCL implementation of device tree loading.
type Loader struct{}

// NewLoader creates a new device tree loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under path into a single unresolved tree.
// Declaring the same target name twice in the upstream tree is an error; the
// tree is the authority on what each target is.
func (l *Loader) Load(ctx context.Context, path string) (*Tree, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("discovering device tree files: %w", err)
	}
	logger.Debug("Discovered device tree files.", "count", len(files))

	tree := NewTree()
	for _, file := range files {
		entries, err := l.loadFile(file)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if prior, ok := tree.Entries[entry.Name]; ok {
				return nil, fmt.Errorf("target %q declared in both %s and %s", entry.Name, prior.File, entry.File)
			}
			tree.Entries[entry.Name] = entry
		}
	}

	logger.Debug("Device tree loaded.", "target_count", len(tree.Entries))
	return tree, nil
}

// ApplyOverrides parses the override file and merges its entries into the
// tree. Overrides behave as if they were upstream entries, except that an
// override matching an existing name replaces that entry wholesale. They run
// before inheritance resolution, so an override can be inherited from like
// any other entry.
func (l *Loader) ApplyOverrides(ctx context.Context, tree *Tree, path string) error {
	logger := ctxlog.FromContext(ctx)

	entries, err := l.loadFile(path)
	if err != nil {
		return err
	}

	replaced := 0
	for _, entry := range entries {
		if _, ok := tree.Entries[entry.Name]; ok {
			replaced++
		}
		tree.Entries[entry.Name] = entry
	}

	logger.Debug("Overrides applied.", "added", len(entries)-replaced, "replaced", replaced)
	return nil
}

func (l *Loader) loadFile(file string) ([]*Entry, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse device tree file %s: %w", file, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode device tree file %s: %w", file, diags)
	}

	entries := make([]*Entry, 0, len(root.Targets))
	for _, raw := range root.Targets {
		entry, err := translateTarget(raw, file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
