package catalog

import (
	"context"
	"sort"

	"github.com/vk/testgridgo/internal/ctxlog"
	"github.com/vk/testgridgo/internal/devicetree"
)

// resolver memoizes inheritance resolution over the tree arena. Marker sets
// follow the classic DFS scheme: done nodes are fully resolved, inProgress
// nodes are on the current parent walk, anything else is untouched.
type resolver struct {
	tree       *devicetree.Tree
	done       map[string]*devicetree.Entry
	inProgress map[string]bool
	stack      []string
}

// resolveTree flattens every entry in the tree against its parent chain.
// Parents are always resolved before children and no entry is resolved
// twice. Entries are processed in name order so that any error is
// deterministic for a given tree.
func resolveTree(ctx context.Context, tree *devicetree.Tree) (map[string]*devicetree.Entry, error) {
	logger := ctxlog.FromContext(ctx)

	r := &resolver{
		tree:       tree,
		done:       make(map[string]*devicetree.Entry, len(tree.Entries)),
		inProgress: make(map[string]bool),
	}

	names := tree.Names()
	sort.Strings(names)
	for _, name := range names {
		if _, err := r.resolve(name); err != nil {
			return nil, err
		}
	}

	logger.Debug("Inheritance resolution complete.", "target_count", len(r.done))
	return r.done, nil
}

func (r *resolver) resolve(name string) (*devicetree.Entry, error) {
	if resolved, ok := r.done[name]; ok {
		return resolved, nil
	}
	if r.inProgress[name] {
		// The walk revisited a name already on the stack: report the chain
		// from its first occurrence through the repeat.
		chain := append(r.chainFrom(name), name)
		return nil, &CyclicInheritanceError{Chain: chain}
	}

	entry := r.tree.Entries[name]
	r.inProgress[name] = true
	r.stack = append(r.stack, name)
	defer func() {
		delete(r.inProgress, name)
		r.stack = r.stack[:len(r.stack)-1]
	}()

	if entry.Inherits == "" {
		r.done[name] = entry
		return entry, nil
	}

	if _, ok := r.tree.Entries[entry.Inherits]; !ok {
		return nil, &UnknownParentError{Target: name, Parent: entry.Inherits}
	}

	parent, err := r.resolve(entry.Inherits)
	if err != nil {
		return nil, err
	}

	merged := mergeEntries(parent, entry)
	r.done[name] = merged
	return merged, nil
}

func (r *resolver) chainFrom(name string) []string {
	for i, n := range r.stack {
		if n == name {
			return append([]string(nil), r.stack[i:]...)
		}
	}
	return append([]string(nil), r.stack...)
}
