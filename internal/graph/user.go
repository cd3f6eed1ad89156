package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/photogram/photogram/internal/loader"
	"github.com/photogram/photogram/internal/model"
)

// MeResolver projects the caller's own user.
type MeResolver struct {
	store Store
	user  *model.User
	// photos is preloaded for fresh sign-ups (no store round trip needed
	// for an account that cannot own photos yet).
	photos []*model.Photo
}

func (r *MeResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID)
}

func (r *MeResolver) Name() string {
	return r.user.Name
}

func (r *MeResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.user.CreatedAt}
}

func (r *MeResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.user.UpdatedAt}
}

func (r *MeResolver) Photos(ctx context.Context) ([]*PhotoResolver, error) {
	return photosForUser(ctx, r.store, r.user.ID, r.photos)
}

// OtherResolver projects any user as seen by others.
type OtherResolver struct {
	store Store
	user  *model.User
	// photos is preloaded on join-backed listing paths; nil means the
	// field resolves through the batch loader.
	photos []*model.Photo
}

func (r *OtherResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID)
}

func (r *OtherResolver) Name() string {
	return r.user.Name
}

func (r *OtherResolver) Photos(ctx context.Context) ([]*PhotoResolver, error) {
	return photosForUser(ctx, r.store, r.user.ID, r.photos)
}

// OtherConnectionResolver wraps the others listing.
type OtherConnectionResolver struct {
	edges []*OtherEdgeResolver
}

func (r *OtherConnectionResolver) Edges() []*OtherEdgeResolver {
	return r.edges
}

// OtherEdgeResolver wraps one user node in the others listing.
type OtherEdgeResolver struct {
	node *OtherResolver
}

func (r *OtherEdgeResolver) Node() *OtherResolver {
	return r.node
}

// photosForUser resolves a user's photos, preferring (in order) a
// preloaded slice from a join query, the request's batch loader, and a
// direct DAO read.
func photosForUser(ctx context.Context, store Store, userID string, preloaded []*model.Photo) ([]*PhotoResolver, error) {
	if preloaded != nil {
		return newPhotoResolvers(store, preloaded), nil
	}

	if l := loader.FromContext(ctx); l != nil {
		photos, err := l.PhotosByUser.Load(ctx, userID)
		if err != nil {
			return nil, err
		}
		return newPhotoResolvers(store, photos), nil
	}

	photos, err := store.Photos().GetAllByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newPhotoResolvers(store, photos), nil
}
