// Package ratelimit paces outbound translation-provider calls using a
// minimum inter-call interval combined with a rolling window budget.
package ratelimit
