package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-flashcards-api/internal/domain"
	"go-flashcards-api/pkg/utils"
)

func TestUserCreate_HashesPassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	u, err := repo.Create(ctx, "  alice@example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	assert.True(t, utils.CheckPassword("s3cret-pass", u.PasswordHash))
	assert.False(t, utils.CheckPassword("wrong", u.PasswordHash))
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	_, err := repo.Create(ctx, "bob@example.com", "password-1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "bob@example.com", "password-2")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserFind_Missing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	u, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.FindByID(ctx, 4242)
	require.NoError(t, err)
	assert.Nil(t, u)
}
