package graph

import (
	"context"
	"time"

	"github.com/photogram/photogram/internal/model"
	"github.com/photogram/photogram/internal/repository"
)

// UserStore is the user data access surface the resolvers consume.
// *repository.UserDAO satisfies it.
type UserStore interface {
	Get(ctx context.Context, id string) (*model.User, error)
	GetForUpdate(ctx context.Context, id string) (*model.User, error)
	GetAllExcept(ctx context.Context, excludeID string) ([]*model.User, error)
	GetAllWithPhotos(ctx context.Context) ([]*repository.UserWithPhotos, error)
	Insert(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

// PhotoStore is the photo data access surface the resolvers consume.
// *repository.PhotoDAO satisfies it.
type PhotoStore interface {
	Get(ctx context.Context, id string) (*model.Photo, error)
	GetForUpdate(ctx context.Context, id string) (*model.Photo, error)
	GetAllByOwner(ctx context.Context, ownerID string) ([]*model.Photo, error)
	GetAllPublicWithOwner(ctx context.Context) ([]*repository.PhotoWithOwner, error)
	Insert(ctx context.Context, photo *model.Photo) error
	Update(ctx context.Context, photo *model.Photo) error
	Delete(ctx context.Context, id string) error
	DeleteAllByOwner(ctx context.Context, ownerID string) error
}

// Store bundles the DAOs with the transaction runner. The Store passed to
// an InTx body is transaction-bound; its DAO calls share one atomic unit
// of work that commits when the body returns nil.
type Store interface {
	Users() UserStore
	Photos() PhotoStore
	InTx(ctx context.Context, fn func(tx Store) error) error
}

// repoStore adapts *repository.Repository to the Store interface.
type repoStore struct {
	repo *repository.Repository
}

// NewStore wraps a Repository for the resolver layer.
func NewStore(repo *repository.Repository) Store {
	return repoStore{repo: repo}
}

func (s repoStore) Users() UserStore   { return s.repo.Users() }
func (s repoStore) Photos() PhotoStore { return s.repo.Photos() }

func (s repoStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.repo.InTx(ctx, func(tx *repository.Repository) error {
		return fn(repoStore{repo: tx})
	})
}

// Resolver is the schema's root resolver.
type Resolver struct {
	store Store
	now   func() time.Time
}

// NewResolver creates the root resolver over store.
func NewResolver(store Store) *Resolver {
	return &Resolver{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}
