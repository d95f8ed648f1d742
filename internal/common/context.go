package common

import (
	"context"
	"time"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyJobID    contextKey = "job_id"
	ContextKeyDocument contextKey = "document"
)

// WithJobID adds an extraction job ID to the context
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, ContextKeyJobID, jobID)
}

// JobIDFromContext extracts the extraction job ID from context
func JobIDFromContext(ctx context.Context) string {
	if jobID, ok := ctx.Value(ContextKeyJobID).(string); ok {
		return jobID
	}
	return ""
}

// WithDocument adds the source document name to the context
func WithDocument(ctx context.Context, document string) context.Context {
	return context.WithValue(ctx, ContextKeyDocument, document)
}

// DocumentFromContext extracts the source document name from context
func DocumentFromContext(ctx context.Context) string {
	if document, ok := ctx.Value(ContextKeyDocument).(string); ok {
		return document
	}
	return ""
}

// WithTimeout creates a context with the specified timeout
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
