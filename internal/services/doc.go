// Package services holds cross-cutting plumbing shared by the translation
// pipeline: error classification sentinels and context carriers for job,
// stage, batch, and correlation identifiers.
package services
