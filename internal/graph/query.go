package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/photogram/photogram/internal/apperr"
	"github.com/photogram/photogram/internal/auth"
)

// Me returns the caller's own profile.
func (r *Resolver) Me(ctx context.Context) (*MeResolver, error) {
	viewerID, err := auth.RequireViewer(ctx)
	if err != nil {
		return nil, err
	}

	user, err := r.store.Users().Get(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	return &MeResolver{store: r.store, user: user}, nil
}

// Others lists every user except the caller, newest first. Each node's
// photos resolve through the request's batch loader, so rendering N
// users costs one photo query, not N.
func (r *Resolver) Others(ctx context.Context) (*OtherConnectionResolver, error) {
	viewerID, err := auth.RequireViewer(ctx)
	if err != nil {
		return nil, err
	}

	users, err := r.store.Users().GetAllExcept(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	edges := make([]*OtherEdgeResolver, 0, len(users))
	for _, u := range users {
		edges = append(edges, &OtherEdgeResolver{
			node: &OtherResolver{store: r.store, user: u},
		})
	}

	return &OtherConnectionResolver{edges: edges}, nil
}

// AllUsers is the listing view: every user with their photos, resolved
// by a single grouped join-style read.
func (r *Resolver) AllUsers(ctx context.Context) ([]*OtherResolver, error) {
	entries, err := r.store.Users().GetAllWithPhotos(ctx)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*OtherResolver, 0, len(entries))
	for _, e := range entries {
		resolvers = append(resolvers, &OtherResolver{
			store:  r.store,
			user:   e.User,
			photos: e.Photos,
		})
	}

	return resolvers, nil
}

// MyPhotos lists the caller's photos, newest first.
func (r *Resolver) MyPhotos(ctx context.Context) ([]*PhotoResolver, error) {
	viewerID, err := auth.RequireViewer(ctx)
	if err != nil {
		return nil, err
	}

	photos, err := r.store.Photos().GetAllByOwner(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	return newPhotoResolvers(r.store, photos), nil
}

// AllPhotos lists all public photos with their owners preloaded.
func (r *Resolver) AllPhotos(ctx context.Context) ([]*PhotoResolver, error) {
	entries, err := r.store.Photos().GetAllPublicWithOwner(ctx)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*PhotoResolver, 0, len(entries))
	for _, e := range entries {
		resolvers = append(resolvers, &PhotoResolver{
			store: r.store,
			photo: e.Photo,
			owner: e.Owner,
		})
	}

	return resolvers, nil
}

// MyPhoto returns one of the caller's photos. A photo owned by someone
// else is Forbidden.
func (r *Resolver) MyPhoto(ctx context.Context, args struct{ ID graphql.ID }) (*PhotoResolver, error) {
	viewerID, err := auth.RequireViewer(ctx)
	if err != nil {
		return nil, err
	}

	photo, err := r.store.Photos().Get(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}

	if !photo.OwnedBy(viewerID) {
		return nil, apperr.Forbidden()
	}

	return &PhotoResolver{store: r.store, photo: photo}, nil
}

// Photo returns a photo by ID. A private photo is visible to its owner
// only; for everyone else it does not exist.
func (r *Resolver) Photo(ctx context.Context, args struct{ ID graphql.ID }) (*PhotoResolver, error) {
	photo, err := r.store.Photos().Get(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}

	if !photo.IsPublic && !photo.OwnedBy(auth.ViewerID(ctx)) {
		return nil, apperr.NotFound("photo")
	}

	return &PhotoResolver{store: r.store, photo: photo}, nil
}
