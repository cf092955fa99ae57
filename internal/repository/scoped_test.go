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

func TestScoped_ListIsOwnerScopedAndOrdered(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	repo := NewClientRepo(db)

	first := &models.Client{Name: "Shell", Location: "Miri", Logo: "a"}
	second := &models.Client{Name: "Petronas", Location: "KL", Logo: "b"}
	require.NoError(t, repo.Create(ctx, alice.ID, first))
	require.NoError(t, repo.Create(ctx, alice.ID, second))
	require.NoError(t, repo.Create(ctx, bob.ID, &models.Client{Name: "Bob's", Location: "x", Logo: "y"}))

	rows, err := repo.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID, "most recent first")
	assert.Equal(t, first.ID, rows[1].ID)
	for _, r := range rows {
		assert.Equal(t, alice.ID, r.UserID)
	}

	none, err := repo.List(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestScoped_JobsOrderedByNameDesc(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "u@example.com")
	repo := NewJobRepo(db)

	for _, name := range []string{"Breakfast", "Lunch", "Dinner"} {
		require.NoError(t, repo.Create(ctx, u.ID, &models.Job{Name: name}))
	}

	rows, err := repo.List(ctx, u.ID)
	require.NoError(t, err)
	var names []string
	for _, r := range rows {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Lunch", "Dinner", "Breakfast"}, names)
}

func TestScoped_CrossOwnerIsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	repo := NewClientRepo(db)

	c := &models.Client{Name: "Shell", Location: "Miri", Logo: "a"}
	require.NoError(t, repo.Create(ctx, alice.ID, c))

	_, err := repo.Get(ctx, bob.ID, c.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = repo.Delete(ctx, bob.ID, c.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	got, err := repo.Get(ctx, alice.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shell", got.Name)

	_, err = repo.Get(ctx, alice.ID, c.ID+100)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestScoped_SaveKeepsOwner(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	repo := NewClientRepo(db)

	c := &models.Client{Name: "Shell", Location: "Miri", Logo: "a"}
	require.NoError(t, repo.Create(ctx, alice.ID, c))

	c.UserID = bob.ID
	c.Name = "Shell Oil"
	require.NoError(t, repo.Save(ctx, alice.ID, c))

	got, err := repo.Get(ctx, alice.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.UserID)
	assert.Equal(t, "Shell Oil", got.Name)
}

func TestScoped_SaveAfterDelete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	repo := NewClientRepo(db)

	c := &models.Client{Name: "Shell", Location: "Miri", Logo: "a"}
	require.NoError(t, repo.Create(ctx, alice.ID, c))

	c.Name = "Shell Oil"
	require.ErrorIs(t, repo.Save(ctx, bob.ID, c), errs.ErrNotFound)

	_, err := repo.Delete(ctx, alice.ID, c.ID)
	require.NoError(t, err)
	require.ErrorIs(t, repo.Save(ctx, alice.ID, c), errs.ErrNotFound)

	_, err = repo.Get(ctx, alice.ID, c.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
	list, err := repo.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScoped_Delete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "u@example.com")
	repo := NewClientRepo(db)

	c := &models.Client{Name: "Shell", Location: "Miri", Logo: "a"}
	require.NoError(t, repo.Create(ctx, u.ID, c))

	deleted, err := repo.Delete(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, deleted.ID)

	_, err = repo.Get(ctx, u.ID, c.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
