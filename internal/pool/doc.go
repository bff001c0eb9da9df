// Package pool runs batches of independent tasks with bounded concurrency,
// ordered results, and panic containment.
package pool
