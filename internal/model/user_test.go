package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	now := time.Now().UTC()
	user := NewUser("alice", now)

	require.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, now, user.CreatedAt)
	assert.Equal(t, now, user.UpdatedAt)

	other := NewUser("alice", now)
	assert.NotEqual(t, user.ID, other.ID, "ids must be unique")
}

func TestUserRename(t *testing.T) {
	created := time.Now().UTC()
	user := NewUser("alice", created)

	later := created.Add(time.Second)
	user.Rename("alicia", later)

	assert.Equal(t, "alicia", user.Name)
	assert.Equal(t, later, user.UpdatedAt)
	assert.Equal(t, created, user.CreatedAt, "created_at is immutable")
}
