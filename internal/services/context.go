package services

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	jobIDKey      contextKey = "job_id"
	stageKey      contextKey = "stage"
	batchIndexKey contextKey = "batch_index"
	requestIDKey  contextKey = "request_id"
)

// NewRequestID returns a fresh correlation identifier.
func NewRequestID() string {
	return uuid.NewString()
}

// WithJobID annotates context with the translation job identifier.
func WithJobID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, jobIDKey, id)
}

// JobIDFromContext extracts the translation job identifier if present.
func JobIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(jobIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithBatchIndex annotates context with the zero-based batch index.
func WithBatchIndex(ctx context.Context, index int) context.Context {
	if index < 0 {
		return ctx
	}
	return context.WithValue(ctx, batchIndexKey, index)
}

// BatchIndexFromContext extracts the batch index if present.
func BatchIndexFromContext(ctx context.Context) (int, bool) {
	if v, ok := ctx.Value(batchIndexKey).(int); ok {
		return v, true
	}
	return 0, false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
