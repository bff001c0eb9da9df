// Package retry provides bounded, classification-aware retry with
// exponential backoff and context-aware sleeping.
package retry
