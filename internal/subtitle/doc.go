// Package subtitle implements the cue domain model and the transforms that
// run over it.
//
// It covers SRT parse/generate (plus VTT and SSA/ASS import), charset-tolerant
// file reads, advertisement cleanup, ASR hallucination filtering, sentence
// consolidation of fragmented ASR cues, progressive-reveal rendering with
// grace periods, and document validation.
package subtitle
