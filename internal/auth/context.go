// Package auth carries the request's caller identity and gates access to
// identity-scoped operations. Identity absence (Unauthenticated) is a
// distinct condition from identity present but not entitled (Forbidden);
// both checks run before any store mutation is attempted.
package auth

import (
	"context"

	"github.com/photogram/photogram/internal/apperr"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const viewerContextKey contextKey = "viewer_id"

// ContextWithViewer attaches the authenticated user ID to the context.
func ContextWithViewer(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, viewerContextKey, userID)
}

// ViewerID retrieves the authenticated user ID from the context.
// Returns empty string for anonymous requests.
func ViewerID(ctx context.Context) string {
	id, ok := ctx.Value(viewerContextKey).(string)
	if !ok {
		return ""
	}
	return id
}

// RequireViewer returns the authenticated user ID, or Unauthenticated for
// anonymous requests. Every mutation and every "mine"-scoped query calls
// this before touching the store.
func RequireViewer(ctx context.Context) (string, error) {
	id := ViewerID(ctx)
	if id == "" {
		return "", apperr.Unauthenticated()
	}
	return id, nil
}
