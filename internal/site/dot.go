package site

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/testgridgo/internal/model"
)

// familyDot renders a graphviz digraph of the inheritance edges among the
// family's targets and their ancestors. Nodes and edges are emitted in
// sorted order so the output is diff-stable. rankdir=BT puts root parents at
// the top.
func familyDot(family string, cat *model.Catalog) string {
	inGraph := make(map[string]bool)
	for i := range cat.Targets {
		t := &cat.Targets[i]
		if t.Family != family {
			continue
		}
		// Walk the parent chain; the catalog is already cycle-free.
		for name := t.Name; name != ""; {
			if inGraph[name] {
				break
			}
			inGraph[name] = true
			node := cat.Target(name)
			if node == nil {
				break
			}
			name = node.Parent
		}
	}

	nodes := make([]string, 0, len(inGraph))
	for name := range inGraph {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)

	var b strings.Builder
	fmt.Fprintf(&b, "// Inheritance graph for target family %s\n", family)
	b.WriteString("digraph {\n")
	b.WriteString("\trankdir=BT;\n")
	b.WriteString("\tnode [fillcolor=lightblue, style=filled];\n")
	for _, name := range nodes {
		fmt.Fprintf(&b, "\t%q;\n", name)
	}
	for _, name := range nodes {
		t := cat.Target(name)
		if t != nil && t.Parent != "" && inGraph[t.Parent] {
			fmt.Fprintf(&b, "\t%q -> %q;\n", name, t.Parent)
		}
	}
	b.WriteString("}\n")
	return b.String()
}
