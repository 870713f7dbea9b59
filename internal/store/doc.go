// Package store persists the resolved target catalog and the accumulated
// test run facts in a single SQLite database file.
//
// The two halves have different lifecycles: catalog tables are dropped and
// repopulated on every builder run, while run facts only accumulate via
// keyed upserts. Run tables therefore carry no foreign keys into the catalog
// tables, so history survives catalog rebuilds and target renames and can be
// surfaced as orphaned rows at render time.
package store
