// Package registry is a small dependency container: components register
// named constructors, resolution is lazy and singleton, cycles are detected,
// and io.Closer components are closed in reverse construction order.
//
// The CLI uses it to share one limiter, cache, session, and logger across
// commands without global state.
package registry
