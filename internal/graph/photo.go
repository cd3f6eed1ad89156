package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/photogram/photogram/internal/apperr"
	"github.com/photogram/photogram/internal/loader"
	"github.com/photogram/photogram/internal/model"
)

// PhotoResolver projects a photo.
type PhotoResolver struct {
	store Store
	photo *model.Photo
	// owner is preloaded on join-backed paths; nil means the field
	// resolves through the batch loader.
	owner *model.User
}

func (r *PhotoResolver) ID() graphql.ID {
	return graphql.ID(r.photo.ID)
}

func (r *PhotoResolver) UserID() graphql.ID {
	return graphql.ID(r.photo.UserID)
}

func (r *PhotoResolver) URL() string {
	return r.photo.URL
}

func (r *PhotoResolver) IsPublic() bool {
	return r.photo.IsPublic
}

func (r *PhotoResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.photo.CreatedAt}
}

func (r *PhotoResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.photo.UpdatedAt}
}

// User resolves the photo's owner. Nil when the owner row is gone (the
// account was deleted after this photo was read).
func (r *PhotoResolver) User(ctx context.Context) (*OtherResolver, error) {
	if r.owner != nil {
		return &OtherResolver{store: r.store, user: r.owner}, nil
	}

	if l := loader.FromContext(ctx); l != nil {
		users, err := l.UserByID.Load(ctx, r.photo.UserID)
		if err != nil {
			return nil, err
		}
		if len(users) == 0 {
			return nil, nil
		}
		return &OtherResolver{store: r.store, user: users[0]}, nil
	}

	user, err := r.store.Users().Get(ctx, r.photo.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &OtherResolver{store: r.store, user: user}, nil
}

func newPhotoResolvers(store Store, photos []*model.Photo) []*PhotoResolver {
	resolvers := make([]*PhotoResolver, 0, len(photos))
	for _, p := range photos {
		resolvers = append(resolvers, &PhotoResolver{store: store, photo: p})
	}
	return resolvers
}
