package loader

import (
	"context"

	"github.com/photogram/photogram/internal/model"
	"github.com/photogram/photogram/internal/repository"
)

// Loaders bundles the per-request loader instances. One bundle is created
// per incoming request and travels in the request context.
type Loaders struct {
	// PhotosByUser loads a user's photos, newest first, keyed by owner ID.
	PhotosByUser *Loader[string, *model.Photo]
	// UserByID loads users keyed by their ID.
	UserByID *Loader[string, *model.User]
}

// NewLoaders creates a fresh loader bundle backed by repo.
func NewLoaders(repo *repository.Repository, cfg Config) *Loaders {
	return &Loaders{
		PhotosByUser: New("photos_by_user", func(ctx context.Context, keys []string) (map[string][]*model.Photo, error) {
			return repo.Photos().BatchGetByOwner(ctx, keys)
		}, cfg),
		UserByID: New("user_by_id", func(ctx context.Context, keys []string) (map[string][]*model.User, error) {
			return repo.Users().BatchGetByID(ctx, keys)
		}, cfg),
	}
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const loadersContextKey contextKey = "loaders"

// ContextWithLoaders attaches a loader bundle to the context.
func ContextWithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersContextKey, l)
}

// FromContext retrieves the request's loader bundle.
// Returns nil if not present.
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersContextKey).(*Loaders)
	if !ok {
		return nil
	}
	return l
}
