package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Photo is an image posted by a user. The owner never changes after
// creation; IsPublic and UpdatedAt are the only mutable fields.
type Photo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPhoto creates a photo owned by userID with a fresh ID and both
// timestamps set to now.
func NewPhoto(userID, url string, isPublic bool, now time.Time) *Photo {
	return &Photo{
		ID:        ulid.Make().String(),
		UserID:    userID,
		URL:       url,
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetVisibility toggles the public flag and bumps UpdatedAt.
func (p *Photo) SetVisibility(isPublic bool, now time.Time) {
	p.IsPublic = isPublic
	p.UpdatedAt = now
}

// OwnedBy reports whether userID owns the photo.
func (p *Photo) OwnedBy(userID string) bool {
	return p.UserID == userID
}
