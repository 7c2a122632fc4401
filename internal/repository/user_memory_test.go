package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getcovered/userapi-go/internal/model"
)

func TestMemoryUserRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, model.NewUser{Email: "a@b.io", FirstName: "John", LastName: "Doe", HashedPassword: "h"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.IsActive)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	byEmail, err := repo.GetByEmail(ctx, "a@b.io")
	require.NoError(t, err)
	assert.Equal(t, created, byEmail)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	_, err = repo.GetByEmail(ctx, "A@b.io")
	assert.ErrorIs(t, err, ErrUserNotFound, "emails are case-sensitive")
}

func TestMemoryUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, model.NewUser{Email: "a@b.io"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.NewUser{Email: "a@b.io"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, repo.Count())
}

func TestMemoryUserRepository_ConcurrentDuplicates(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Create(ctx, model.NewUser{Email: "race@b.io"}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, repo.Count())
}

func TestMemoryUserRepository_Update(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, model.NewUser{Email: "a@b.io", FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, u.ID, model.UserPatch{LastName: strPtr("Smith")})
	require.NoError(t, err)
	assert.Equal(t, "John", updated.FirstName)
	assert.Equal(t, "Smith", updated.LastName)
	assert.Equal(t, "a@b.io", updated.Email)
	assert.False(t, updated.UpdatedAt.Before(u.UpdatedAt))
	assert.Equal(t, u.CreatedAt, updated.CreatedAt)

	same, err := repo.Update(ctx, u.ID, model.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, updated, same)

	_, err = repo.Update(ctx, 999, model.UserPatch{LastName: strPtr("Smith")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, model.NewUser{Email: "a@b.io", FirstName: "John"})
	require.NoError(t, err)
	u.FirstName = "Mallory"

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", stored.FirstName)
}

func TestMemoryUserRepository_SetActiveAndDelete(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, model.NewUser{Email: "a@b.io"})
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(u.ID, false))
	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	require.NoError(t, repo.Delete(u.ID))
	_, err = repo.GetByEmail(ctx, "a@b.io")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(u.ID), ErrUserNotFound)
	assert.ErrorIs(t, repo.SetActive(u.ID, true), ErrUserNotFound)
}

func TestMemoryUserRepository_CanceledContext(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, model.NewUser{Email: "a@b.io"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.Count())
}
