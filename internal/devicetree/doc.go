// Package devicetree loads raw hardware target descriptions from HCL files
// into an unresolved tree keyed by target name.
//
// The tree deliberately preserves which fields each entry set explicitly
// (pointer and nil-slice sentinels) because inheritance resolution needs to
// distinguish "set to zero value" from "not set at all". Resolution itself
// lives in the catalog package; this package is parsing and translation only.
package devicetree
