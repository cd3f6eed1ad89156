// Package model defines domain entities for the application.
// Entities are plain values constructed from store rows or user input;
// every repository call returns an independent copy.
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the service. The ID is an opaque random token
// assigned at construction and immutable afterwards; only Name and
// UpdatedAt change over the user's lifetime.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a user with a fresh ID and both timestamps set to now.
func NewUser(name string, now time.Time) *User {
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename updates the only mutable attribute and bumps UpdatedAt.
func (u *User) Rename(name string, now time.Time) {
	u.Name = name
	u.UpdatedAt = now
}
