package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/recipebox/backend/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPantryRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewPostgresUserRepository(db)
	repo := NewPostgresPantryRepository(db)

	john := createUser(t, users, "john", "john@example.com")
	susan := createUser(t, users, "susan", "susan@example.com")

	flour, err := repo.AddItem(ctx, john.ID, "flour", "1kg")
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, john.ID, "flour", "500g")
	require.NoError(t, err)
	eggs, err := repo.AddItem(ctx, john.ID, "eggs", "6")
	require.NoError(t, err)

	t.Run("Names are not unique", func(t *testing.T) {
		items, err := repo.ListItems(ctx, john.ID)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "flour", items[0].Name)
		assert.Equal(t, "1kg", items[0].Amount)
		assert.Equal(t, "500g", items[1].Amount)
	})

	t.Run("Find by name returns the first match", func(t *testing.T) {
		item, err := repo.FindItemByName(ctx, john.ID, "flour")
		require.NoError(t, err)
		assert.Equal(t, flour.ID, item.ID)

		_, err = repo.FindItemByName(ctx, susan.ID, "flour")
		assert.True(t, errs.Is(err, errs.ENOTFOUND))
	})

	t.Run("Removing another user's item fails and changes nothing", func(t *testing.T) {
		ok, err := repo.RemoveItem(ctx, susan.ID, eggs.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		items, err := repo.ListItems(ctx, john.ID)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("Removing a missing item fails", func(t *testing.T) {
		ok, err := repo.RemoveItem(ctx, john.ID, 9999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Owner removes item", func(t *testing.T) {
		ok, err := repo.RemoveItem(ctx, john.ID, eggs.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		items, err := repo.ListItems(ctx, john.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("Empty pantry", func(t *testing.T) {
		items, err := repo.ListItems(ctx, susan.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
