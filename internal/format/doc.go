// Package format renders timestamps, counts, durations, and colors for both
// subtitle files and CLI output. SRT/VTT clock parsing lives here so the
// subtitle and CLI packages agree on one implementation.
package format
