// Package site renders the catalog and the run facts as a static,
// cross-linked website: an index, per-family target/feature matrices,
// feature pages, the global target-by-test-case outcome matrix, and a detail
// page per recorded (target, test case) pair.
//
// Generation is a pure read of the store. Every collection is iterated in
// sorted order and no timestamps are embedded, so regenerating from an
// unchanged store produces a byte-identical tree.
package site
