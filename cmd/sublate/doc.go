// Package main hosts the sublate CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into subtitle
// pipeline operations: cleaning and hallucination filtering, ASR cue
// consolidation, validation, language detection, progressive-reveal preview,
// batch translation against the provider, and cache, session, and
// configuration maintenance. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
