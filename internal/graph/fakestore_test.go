package graph

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/photogram/photogram/internal/apperr"
	"github.com/photogram/photogram/internal/model"
	"github.com/photogram/photogram/internal/repository"
)

var (
	errDuplicate    = errors.New("duplicate key")
	errMissingOwner = errors.New("missing owner")
)

// fakeStore is an in-memory Store for resolver tests. InTx applies the
// body directly; transactional semantics are covered by the repository
// integration tests.
type fakeStore struct {
	mu     sync.Mutex
	users  map[string]*model.User
	photos map[string]*model.Photo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[string]*model.User),
		photos: make(map[string]*model.Photo),
	}
}

func (s *fakeStore) Users() UserStore   { return (*fakeUserStore)(s) }
func (s *fakeStore) Photos() PhotoStore { return (*fakePhotoStore)(s) }

func (s *fakeStore) InTx(_ context.Context, fn func(tx Store) error) error {
	return fn(s)
}

type fakeUserStore fakeStore

func (s *fakeUserStore) Get(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetForUpdate(ctx context.Context, id string) (*model.User, error) {
	return s.Get(ctx, id)
}

func (s *fakeUserStore) GetAllExcept(_ context.Context, excludeID string) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := []*model.User{}
	for _, u := range s.users {
		if u.ID == excludeID {
			continue
		}
		copied := *u
		users = append(users, &copied)
	}
	sortUsersNewestFirst(users)
	return users, nil
}

func (s *fakeUserStore) GetAllWithPhotos(ctx context.Context) ([]*repository.UserWithPhotos, error) {
	s.mu.Lock()
	users := []*model.User{}
	for _, u := range s.users {
		copied := *u
		users = append(users, &copied)
	}
	s.mu.Unlock()
	sortUsersNewestFirst(users)

	result := make([]*repository.UserWithPhotos, 0, len(users))
	for _, u := range users {
		photos, err := (*fakePhotoStore)(s).GetAllByOwner(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &repository.UserWithPhotos{User: u, Photos: photos})
	}
	return result, nil
}

func (s *fakeUserStore) Insert(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.ID]; exists {
		return apperr.Internal(errDuplicate)
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return apperr.NotFound("user")
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

type fakePhotoStore fakeStore

func (s *fakePhotoStore) Get(_ context.Context, id string) (*model.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photo, ok := s.photos[id]
	if !ok {
		return nil, apperr.NotFound("photo")
	}
	copied := *photo
	return &copied, nil
}

func (s *fakePhotoStore) GetForUpdate(ctx context.Context, id string) (*model.Photo, error) {
	return s.Get(ctx, id)
}

func (s *fakePhotoStore) GetAllByOwner(_ context.Context, ownerID string) ([]*model.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photos := []*model.Photo{}
	for _, p := range s.photos {
		if p.UserID != ownerID {
			continue
		}
		copied := *p
		photos = append(photos, &copied)
	}
	sortPhotosNewestFirst(photos)
	return photos, nil
}

func (s *fakePhotoStore) GetAllPublicWithOwner(_ context.Context) ([]*repository.PhotoWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photos := []*model.Photo{}
	for _, p := range s.photos {
		if !p.IsPublic {
			continue
		}
		copied := *p
		photos = append(photos, &copied)
	}
	sortPhotosNewestFirst(photos)

	result := make([]*repository.PhotoWithOwner, 0, len(photos))
	for _, p := range photos {
		owner, ok := s.users[p.UserID]
		if !ok {
			continue
		}
		copiedOwner := *owner
		result = append(result, &repository.PhotoWithOwner{Photo: p, Owner: &copiedOwner})
	}
	return result, nil
}

func (s *fakePhotoStore) Insert(_ context.Context, photo *model.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.photos[photo.ID]; exists {
		return apperr.Internal(errDuplicate)
	}
	if _, ownerExists := s.users[photo.UserID]; !ownerExists {
		return apperr.Internal(errMissingOwner)
	}
	copied := *photo
	s.photos[photo.ID] = &copied
	return nil
}

func (s *fakePhotoStore) Update(_ context.Context, photo *model.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[photo.ID]; !ok {
		return apperr.NotFound("photo")
	}
	copied := *photo
	s.photos[photo.ID] = &copied
	return nil
}

func (s *fakePhotoStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.photos, id)
	return nil
}

func (s *fakePhotoStore) DeleteAllByOwner(_ context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.photos {
		if p.UserID == ownerID {
			delete(s.photos, id)
		}
	}
	return nil
}

func sortUsersNewestFirst(users []*model.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}

func sortPhotosNewestFirst(photos []*model.Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].CreatedAt.After(photos[j].CreatedAt)
	})
}
