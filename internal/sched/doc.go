// Package sched provides small scheduling helpers: a trailing-edge
// debouncer, a leading-edge throttler, and a progress sampler that
// suppresses repetitive updates.
package sched
