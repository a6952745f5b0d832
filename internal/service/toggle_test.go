package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/types"
)

func TestFavoriteToggle(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db, nil)
	toggles := NewToggleService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	salt := createTestIngredient(t, db, "Salt", "g")

	recipe, err := recipes.CreateRecipe(ctx, author.ID, newRecipeRequest("Soup",
		types.RecipeIngredientRef{ID: salt.ID, Amount: 1}))
	require.NoError(t, err)

	got, err := toggles.AddFavorite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, got.ID)

	assert.True(t, recipes.IsFavorited(ctx, fan.ID, recipe.ID))

	// A second add is rejected, not absorbed.
	_, err = toggles.AddFavorite(ctx, fan.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, toggles.RemoveFavorite(ctx, fan.ID, recipe.ID))

	err = toggles.RemoveFavorite(ctx, fan.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShoppingCartToggle(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db, nil)
	toggles := NewToggleService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	shopper := createTestUser(t, db, "shopper")
	salt := createTestIngredient(t, db, "Salt", "g")

	recipe, err := recipes.CreateRecipe(ctx, author.ID, newRecipeRequest("Stew",
		types.RecipeIngredientRef{ID: salt.ID, Amount: 1}))
	require.NoError(t, err)

	_, err = toggles.AddCartEntry(ctx, shopper.ID, recipe.ID)
	require.NoError(t, err)

	assert.True(t, recipes.IsInShoppingCart(ctx, shopper.ID, recipe.ID))

	_, err = toggles.AddCartEntry(ctx, shopper.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// The same pair is independent per user.
	_, err = toggles.AddCartEntry(ctx, author.ID, recipe.ID)
	assert.NoError(t, err)

	require.NoError(t, toggles.RemoveCartEntry(ctx, shopper.ID, recipe.ID))
	err = toggles.RemoveCartEntry(ctx, shopper.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleUnknownRecipe(t *testing.T) {
	db := setupTestDB(t)
	toggles := NewToggleService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "user")
	missing := uuid.New()

	_, err := toggles.AddFavorite(ctx, user.ID, missing)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = toggles.AddCartEntry(ctx, user.ID, missing)
	assert.ErrorIs(t, err, ErrNotFound)

	err = toggles.RemoveFavorite(ctx, user.ID, missing)
	assert.ErrorIs(t, err, ErrNotFound)
}
