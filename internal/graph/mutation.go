package graph

import (
	"context"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/photogram/photogram/internal/apperr"
	"github.com/photogram/photogram/internal/auth"
	"github.com/photogram/photogram/internal/model"
)

// SignUp creates a new account. The only operation that accepts an
// anonymous caller.
func (r *Resolver) SignUp(ctx context.Context, args struct{ Name string }) (*MeResolver, error) {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return nil, apperr.BadRequest("name must not be empty")
	}

	user := model.NewUser(name, r.now())
	if err := r.store.Users().Insert(ctx, user); err != nil {
		return nil, err
	}

	return &MeResolver{store: r.store, user: user, photos: []*model.Photo{}}, nil
}

// UpdateUser renames the caller's profile. The read-modify-write runs in
// one transaction with a row lock, so two concurrent renames of the same
// user serialize and the final state is exactly one of them.
func (r *Resolver) UpdateUser(ctx context.Context, args struct{ Name string }) (*MeResolver, error) {
	viewerID, err := auth.RequireViewer(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(args.Name)
	if name == "" {
		return nil, apperr.BadRequest("name must not be empty")
	}

	var user *model.User
	err = r.store.InTx(ctx, func(tx Store) error {
		var err error
		user, err = tx.Users().GetForUpdate(ctx, viewerID)
		if err != nil {
			return err
		}

		user.Rename(name, r.now())

		return tx.Users().Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return &MeResolver{store: r.store, user: user}, nil
}

// Leave deletes the caller's account. Owned photos go with it, in the
// same transaction.
func (r *Resolver) Leave(ctx context.Context) (bool, error) {
	viewerID, err := auth.RequireViewer(ctx)
	if err != nil {
		return false, err
	}

	err = r.store.InTx(ctx, func(tx Store) error {
		if err := tx.Photos().DeleteAllByOwner(ctx, viewerID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, viewerID)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// CreatePhoto posts a photo owned by the caller.
func (r *Resolver) CreatePhoto(ctx context.Context, args struct {
	URL      string
	IsPublic bool
}) (*PhotoResolver, error) {
	viewerID, err := auth.RequireViewer(ctx)
	if err != nil {
		return nil, err
	}

	url := strings.TrimSpace(args.URL)
	if url == "" {
		return nil, apperr.BadRequest("url must not be empty")
	}

	photo := model.NewPhoto(viewerID, url, args.IsPublic, r.now())
	if err := r.store.Photos().Insert(ctx, photo); err != nil {
		return nil, err
	}

	return &PhotoResolver{store: r.store, photo: photo}, nil
}

// UpdatePhoto toggles a photo's visibility. The ownership check and the
// write share one transaction with a row lock: concurrent toggles of the
// same photo resolve sequentially, and the check always sees committed
// state.
func (r *Resolver) UpdatePhoto(ctx context.Context, args struct {
	ID       graphql.ID
	IsPublic bool
}) (*PhotoResolver, error) {
	viewerID, err := auth.RequireViewer(ctx)
	if err != nil {
		return nil, err
	}

	var photo *model.Photo
	err = r.store.InTx(ctx, func(tx Store) error {
		var err error
		photo, err = tx.Photos().GetForUpdate(ctx, string(args.ID))
		if err != nil {
			return err
		}

		if !photo.OwnedBy(viewerID) {
			return apperr.Forbidden()
		}

		photo.SetVisibility(args.IsPublic, r.now())

		return tx.Photos().Update(ctx, photo)
	})
	if err != nil {
		return nil, err
	}

	return &PhotoResolver{store: r.store, photo: photo}, nil
}

// DeletePhoto removes one of the caller's photos. Deleting someone
// else's photo is Forbidden and leaves the row untouched; an unknown ID
// is NotFound. The ownership check and the delete share one transaction
// with a row lock, same as UpdatePhoto.
func (r *Resolver) DeletePhoto(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	viewerID, err := auth.RequireViewer(ctx)
	if err != nil {
		return false, err
	}

	err = r.store.InTx(ctx, func(tx Store) error {
		photo, err := tx.Photos().GetForUpdate(ctx, string(args.ID))
		if err != nil {
			return err
		}

		if !photo.OwnedBy(viewerID) {
			return apperr.Forbidden()
		}

		return tx.Photos().Delete(ctx, string(args.ID))
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
