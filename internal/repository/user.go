package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/photogram/photogram/internal/apperr"
	"github.com/photogram/photogram/internal/model"
)

// UserDAO provides store access for users.
type UserDAO struct {
	q Querier
}

// NewUserDAO creates a UserDAO bound to q.
func NewUserDAO(q Querier) *UserDAO {
	return &UserDAO{q: q}
}

// UserWithPhotos pairs a user with their photos, newest photo first.
type UserWithPhotos struct {
	User   *model.User
	Photos []*model.Photo
}

// Get retrieves a user by ID.
func (d *UserDAO) Get(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(d.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Internal(fmt.Errorf("get user: %w", err))
	}

	return user, nil
}

// GetForUpdate retrieves a user by ID and takes a row lock. Call it inside
// a transaction; concurrent read-check-write sequences on the same row
// serialize on the lock.
func (d *UserDAO) GetForUpdate(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM users
		WHERE id = $1
		FOR UPDATE
	`

	user, err := scanUser(d.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Internal(fmt.Errorf("get user for update: %w", err))
	}

	return user, nil
}

// GetAllExcept retrieves every user except excludeID, newest first.
func (d *UserDAO) GetAllExcept(ctx context.Context, excludeID string) ([]*model.User, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM users
		WHERE id <> $1
		ORDER BY created_at DESC
	`

	rows, err := d.q.Query(ctx, query, excludeID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list users: %w", err))
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("scan user: %w", err))
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("iterate users: %w", err))
	}

	return users, nil
}

// GetAllWithPhotos retrieves every user paired with their photos, both
// ordered newest first. Two round trips: one for users, one batched query
// for all their photos.
func (d *UserDAO) GetAllWithPhotos(ctx context.Context) ([]*UserWithPhotos, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := d.q.Query(ctx, query)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list users: %w", err))
	}
	defer rows.Close()

	result := []*UserWithPhotos{}
	ids := []string{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("scan user: %w", err))
		}
		result = append(result, &UserWithPhotos{User: user, Photos: []*model.Photo{}})
		ids = append(ids, user.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("iterate users: %w", err))
	}

	if len(ids) == 0 {
		return result, nil
	}

	photosByOwner, err := NewPhotoDAO(d.q).BatchGetByOwner(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, entry := range result {
		if photos, ok := photosByOwner[entry.User.ID]; ok {
			entry.Photos = photos
		}
	}

	return result, nil
}

// Insert creates a user. Constraint violations surface as internal errors.
func (d *UserDAO) Insert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := d.q.Exec(ctx, query,
		user.ID,
		user.Name,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return apperr.Internal(fmt.Errorf("insert user: %w", err))
	}

	return nil
}

// Update writes the mutable column subset (name, updated_at) only, so
// concurrent changes to other columns are never clobbered.
func (d *UserDAO) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := d.q.Exec(ctx, query, user.ID, user.Name, user.UpdatedAt)
	if err != nil {
		return apperr.Internal(fmt.Errorf("update user: %w", err))
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}

	return nil
}

// Delete removes a user. Deleting an absent ID is not an error.
func (d *UserDAO) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	if _, err := d.q.Exec(ctx, query, id); err != nil {
		return apperr.Internal(fmt.Errorf("delete user: %w", err))
	}

	return nil
}

// BatchGetByID retrieves users for every ID in one query, grouped by ID.
// IDs that match nothing are simply absent from the result map.
func (d *UserDAO) BatchGetByID(ctx context.Context, ids []string) (map[string][]*model.User, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM users
		WHERE id = ANY($1)
		ORDER BY created_at DESC
	`

	rows, err := d.q.Query(ctx, query, ids)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("batch get users: %w", err))
	}
	defer rows.Close()

	grouped := make(map[string][]*model.User, len(ids))
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("scan user: %w", err))
		}
		grouped[user.ID] = append(grouped[user.ID], user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("iterate users: %w", err))
	}

	return grouped, nil
}

// scanUser scans a single row into a User model.
func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
