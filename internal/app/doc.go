// Package app wires the pipeline stages together: it owns the logger and
// runtime configuration and exposes one method per stage. Each stage opens
// the store itself and releases it when done, so stages stay independently
// runnable and testable.
package app
