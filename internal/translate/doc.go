// Package translate runs context-aware subtitle translation jobs.
//
// Documents are sliced into batches with surrounding context cues, rendered
// into numbered prompts, and sent through a Provider under the retry policy
// and rate limiter. Responses are parsed back by number with order repair,
// and results are cached so repeated runs only pay for new text.
package translate
