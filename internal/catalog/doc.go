// Package catalog turns an unresolved device tree into the flattened target
// catalog: it resolves the inheritance chains, validates memory and sector
// invariants, and derives each target's feature set from its capability
// defines.
//
// Resolution works over an arena keyed by target name with in-progress and
// done marker sets, so a cyclic parent chain is detected and reported with
// the full chain instead of overflowing the stack.
package catalog
