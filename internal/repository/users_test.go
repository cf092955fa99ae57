package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspection-back/internal/errs"
	"inspection-back/internal/models"
	"inspection-back/internal/testutil"
)

func TestUserRepo(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	u := &models.User{Email: "a@example.com", Password: "hash", Name: "A", IsActive: true}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Email: "a@example.com", Password: "hash"})
		require.ErrorIs(t, err, errs.ErrAlreadyExists)
	})

	t.Run("lookup", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		got, err = repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", got.Name)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, errs.ErrNotFound)
		_, err = repo.GetByID(ctx, 999)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("save to taken email", func(t *testing.T) {
		b := &models.User{Email: "b@example.com", Password: "hash"}
		require.NoError(t, repo.Create(ctx, b))
		b.Email = "a@example.com"
		require.ErrorIs(t, repo.Save(ctx, b), errs.ErrAlreadyExists)
	})
}
