package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/photogram/photogram/internal/apperr"
	"github.com/photogram/photogram/internal/model"
)

// PhotoDAO provides store access for photos.
type PhotoDAO struct {
	q Querier
}

// NewPhotoDAO creates a PhotoDAO bound to q.
func NewPhotoDAO(q Querier) *PhotoDAO {
	return &PhotoDAO{q: q}
}

// PhotoWithOwner pairs a photo with its owning user.
type PhotoWithOwner struct {
	Photo *model.Photo
	Owner *model.User
}

// Get retrieves a photo by ID.
func (d *PhotoDAO) Get(ctx context.Context, id string) (*model.Photo, error) {
	query := `
		SELECT id, user_id, url, is_public, created_at, updated_at
		FROM photos
		WHERE id = $1
	`

	photo, err := scanPhoto(d.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("photo")
		}
		return nil, apperr.Internal(fmt.Errorf("get photo: %w", err))
	}

	return photo, nil
}

// GetForUpdate retrieves a photo by ID and takes a row lock. Call it
// inside a transaction so concurrent visibility toggles on the same photo
// serialize instead of overwriting each other.
func (d *PhotoDAO) GetForUpdate(ctx context.Context, id string) (*model.Photo, error) {
	query := `
		SELECT id, user_id, url, is_public, created_at, updated_at
		FROM photos
		WHERE id = $1
		FOR UPDATE
	`

	photo, err := scanPhoto(d.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("photo")
		}
		return nil, apperr.Internal(fmt.Errorf("get photo for update: %w", err))
	}

	return photo, nil
}

// GetAllByOwner retrieves every photo owned by ownerID, newest first.
// Returns an empty slice when the owner has no photos.
func (d *PhotoDAO) GetAllByOwner(ctx context.Context, ownerID string) ([]*model.Photo, error) {
	query := `
		SELECT id, user_id, url, is_public, created_at, updated_at
		FROM photos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := d.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list photos by owner: %w", err))
	}
	defer rows.Close()

	photos := []*model.Photo{}
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("scan photo: %w", err))
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("iterate photos: %w", err))
	}

	return photos, nil
}

// GetAllPublicWithOwner retrieves every public photo joined with its
// owner, newest photo first.
func (d *PhotoDAO) GetAllPublicWithOwner(ctx context.Context) ([]*PhotoWithOwner, error) {
	query := `
		SELECT p.id, p.user_id, p.url, p.is_public, p.created_at, p.updated_at,
		       u.id, u.name, u.created_at, u.updated_at
		FROM photos p
		INNER JOIN users u ON u.id = p.user_id
		WHERE p.is_public
		ORDER BY p.created_at DESC
	`

	rows, err := d.q.Query(ctx, query)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list photos with owner: %w", err))
	}
	defer rows.Close()

	result := []*PhotoWithOwner{}
	for rows.Next() {
		var photo model.Photo
		var owner model.User
		err := rows.Scan(
			&photo.ID,
			&photo.UserID,
			&photo.URL,
			&photo.IsPublic,
			&photo.CreatedAt,
			&photo.UpdatedAt,
			&owner.ID,
			&owner.Name,
			&owner.CreatedAt,
			&owner.UpdatedAt,
		)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("scan photo with owner: %w", err))
		}
		result = append(result, &PhotoWithOwner{Photo: &photo, Owner: &owner})
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("iterate photos with owner: %w", err))
	}

	return result, nil
}

// Insert creates a photo. A missing owner or duplicate ID violates a
// constraint and surfaces as an internal error.
func (d *PhotoDAO) Insert(ctx context.Context, photo *model.Photo) error {
	query := `
		INSERT INTO photos (id, user_id, url, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := d.q.Exec(ctx, query,
		photo.ID,
		photo.UserID,
		photo.URL,
		photo.IsPublic,
		photo.CreatedAt,
		photo.UpdatedAt,
	)
	if err != nil {
		return apperr.Internal(fmt.Errorf("insert photo: %w", err))
	}

	return nil
}

// Update writes the mutable column subset (is_public, updated_at) only.
func (d *PhotoDAO) Update(ctx context.Context, photo *model.Photo) error {
	query := `
		UPDATE photos
		SET is_public = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := d.q.Exec(ctx, query, photo.ID, photo.IsPublic, photo.UpdatedAt)
	if err != nil {
		return apperr.Internal(fmt.Errorf("update photo: %w", err))
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("photo")
	}

	return nil
}

// Delete removes a photo. Deleting an absent ID is not an error.
func (d *PhotoDAO) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM photos WHERE id = $1`

	if _, err := d.q.Exec(ctx, query, id); err != nil {
		return apperr.Internal(fmt.Errorf("delete photo: %w", err))
	}

	return nil
}

// DeleteAllByOwner removes every photo owned by ownerID. Used by account
// deletion, inside the same transaction that removes the user row.
func (d *PhotoDAO) DeleteAllByOwner(ctx context.Context, ownerID string) error {
	query := `DELETE FROM photos WHERE user_id = $1`

	if _, err := d.q.Exec(ctx, query, ownerID); err != nil {
		return apperr.Internal(fmt.Errorf("delete photos by owner: %w", err))
	}

	return nil
}

// BatchGetByOwner retrieves photos for every owner ID in one query,
// grouped by owner and ordered newest first within each group. Owners
// with no photos are simply absent from the result map.
func (d *PhotoDAO) BatchGetByOwner(ctx context.Context, ownerIDs []string) (map[string][]*model.Photo, error) {
	query := `
		SELECT id, user_id, url, is_public, created_at, updated_at
		FROM photos
		WHERE user_id = ANY($1)
		ORDER BY created_at DESC
	`

	rows, err := d.q.Query(ctx, query, ownerIDs)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("batch get photos: %w", err))
	}
	defer rows.Close()

	grouped := make(map[string][]*model.Photo, len(ownerIDs))
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("scan photo: %w", err))
		}
		grouped[photo.UserID] = append(grouped[photo.UserID], photo)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("iterate photos: %w", err))
	}

	return grouped, nil
}

// scanPhoto scans a single row into a Photo model.
func scanPhoto(row pgx.Row) (*model.Photo, error) {
	var photo model.Photo
	err := row.Scan(
		&photo.ID,
		&photo.UserID,
		&photo.URL,
		&photo.IsPublic,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &photo, nil
}
