// Package model defines the domain types shared by every pipeline stage: the
// resolved hardware target catalog, derived feature flags, and recorded test
// run attempts with their outcomes.
//
// The package is intentionally free of parsing, storage, and rendering
// concerns so that stage logic can be unit-tested against literal values.
package model
