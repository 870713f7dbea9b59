package catalog

import (
	"fmt"
	"strings"
)

// CyclicInheritanceError reports a cycle in a target's parent chain. Chain
// lists the targets along the walk, ending with the repeated name.
type CyclicInheritanceError struct {
	Chain []string
}

func (e *CyclicInheritanceError) Error() string {
	return fmt.Sprintf("cyclic target inheritance: %s", strings.Join(e.Chain, " -> "))
}

// UnknownParentError reports an entry inheriting from a name the tree does
// not contain.
type UnknownParentError struct {
	Target string
	Parent string
}

func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("target %q inherits from unknown target %q", e.Target, e.Parent)
}

// MissingCoreError reports a target left without a processor core descriptor
// after full inheritance resolution. Such a target is unbuildable and the
// catalog run aborts.
type MissingCoreError struct {
	Target string
}

func (e *MissingCoreError) Error() string {
	return fmt.Sprintf("target %q has no processor core descriptor after resolution", e.Target)
}

// InvalidTargetError reports a resolved target violating a catalog
// invariant, such as overlapping erase sectors or an ambiguous default
// memory region.
type InvalidTargetError struct {
	Target string
	Detail string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("target %q: %s", e.Target, e.Detail)
}
