//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/photogram/photogram/internal/apperr"
	"github.com/photogram/photogram/internal/model"
	"github.com/photogram/photogram/internal/testutil"
)

func newRepoTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}

func mustInsertUsers(t *testing.T, ctx context.Context, repo *Repository, users ...*model.User) {
	t.Helper()
	for _, u := range users {
		if err := repo.Users().Insert(ctx, u); err != nil {
			t.Fatalf("Insert user %s failed: %v", u.Name, err)
		}
	}
}

func TestIntegrationUserDAO_InsertAndGet(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, "alice")
	mustInsertUsers(t, ctx, repo, user)

	retrieved, err := repo.Users().Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if retrieved.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", retrieved.ID, user.ID)
	}
	if retrieved.Name != "alice" {
		t.Errorf("Name mismatch: got %q, want %q", retrieved.Name, "alice")
	}
	if !retrieved.CreatedAt.Equal(retrieved.UpdatedAt) {
		t.Errorf("fresh user timestamps differ: created %v, updated %v", retrieved.CreatedAt, retrieved.UpdatedAt)
	}
}

func TestIntegrationUserDAO_Get_NotFound(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	_, err := repo.Users().Get(ctx, "nonexistent-user-id")
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got: %v", err)
	}
}

func TestIntegrationUserDAO_GetAllExcept(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	base := time.Now().UTC().Add(-time.Hour)
	viewer := testutil.NewTestUser(t, "viewer")
	older := testutil.NewTestUser(t, "older")
	older.CreatedAt = base
	newer := testutil.NewTestUser(t, "newer")
	newer.CreatedAt = base.Add(time.Minute)

	mustInsertUsers(t, ctx, repo, viewer, older, newer)

	users, err := repo.Users().GetAllExcept(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("GetAllExcept failed: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != newer.ID || users[1].ID != older.ID {
		t.Errorf("expected newest-first order [%s %s], got [%s %s]",
			newer.ID, older.ID, users[0].ID, users[1].ID)
	}
	for _, u := range users {
		if u.ID == viewer.ID {
			t.Error("viewer should be excluded from result")
		}
	}
}

func TestIntegrationUserDAO_Update_PartialColumns(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, "before")
	mustInsertUsers(t, ctx, repo, user)

	user.Rename("after", user.UpdatedAt.Add(time.Minute))
	if err := repo.Users().Update(ctx, user); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	retrieved, err := repo.Users().Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if retrieved.Name != "after" {
		t.Errorf("Name mismatch: got %q, want %q", retrieved.Name, "after")
	}
	if !retrieved.UpdatedAt.After(retrieved.CreatedAt) {
		t.Errorf("UpdatedAt should advance past CreatedAt: created %v, updated %v",
			retrieved.CreatedAt, retrieved.UpdatedAt)
	}
}

func TestIntegrationUserDAO_Update_NotFound(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	ghost := testutil.NewTestUser(t, "ghost")
	err := repo.Users().Update(ctx, ghost)
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got: %v", err)
	}
}

func TestIntegrationUserDAO_Delete_Idempotent(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	user := testutil.NewTestUser(t, "doomed")
	mustInsertUsers(t, ctx, repo, user)

	if err := repo.Users().Delete(ctx, user.ID); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if err := repo.Users().Delete(ctx, user.ID); err != nil {
		t.Errorf("second Delete should be a no-op, got: %v", err)
	}

	if _, err := repo.Users().Get(ctx, user.ID); apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Errorf("expected NOT_FOUND after delete, got: %v", err)
	}
}

func TestIntegrationUserDAO_BatchGetByID(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	alice := testutil.NewTestUser(t, "alice")
	bob := testutil.NewTestUser(t, "bob")
	mustInsertUsers(t, ctx, repo, alice, bob)

	grouped, err := repo.Users().BatchGetByID(ctx, []string{alice.ID, bob.ID, "no-such-id"})
	if err != nil {
		t.Fatalf("BatchGetByID failed: %v", err)
	}

	if len(grouped) != 2 {
		t.Errorf("expected 2 groups, got %d", len(grouped))
	}
	if len(grouped[alice.ID]) != 1 || grouped[alice.ID][0].Name != "alice" {
		t.Errorf("unexpected group for alice: %+v", grouped[alice.ID])
	}
	if _, ok := grouped["no-such-id"]; ok {
		t.Error("missing ID should be absent from result map")
	}
}

func TestIntegrationUserDAO_GetAllWithPhotos(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	owner := testutil.NewTestUser(t, "owner")
	empty := testutil.NewTestUser(t, "empty")
	mustInsertUsers(t, ctx, repo, owner, empty)

	photo := testutil.NewTestPhoto(t, owner.ID, true)
	if err := repo.Photos().Insert(ctx, photo); err != nil {
		t.Fatalf("Insert photo failed: %v", err)
	}

	entries, err := repo.Users().GetAllWithPhotos(ctx)
	if err != nil {
		t.Fatalf("GetAllWithPhotos failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	photoCount := map[string]int{}
	for _, e := range entries {
		if e.Photos == nil {
			t.Errorf("photos for %s should be non-nil", e.User.ID)
		}
		photoCount[e.User.ID] = len(e.Photos)
	}
	if photoCount[owner.ID] != 1 {
		t.Errorf("expected 1 photo for owner, got %d", photoCount[owner.ID])
	}
	if photoCount[empty.ID] != 0 {
		t.Errorf("expected 0 photos for empty user, got %d", photoCount[empty.ID])
	}
}
