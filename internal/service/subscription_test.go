package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/types"
)

func TestFollowToggle(t *testing.T) {
	db := setupTestDB(t)
	subs := NewSubscriptionService(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "follower")
	author := createTestUser(t, db, "author")

	sub, err := subs.Follow(ctx, follower.ID, author.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, author.ID, sub.Author.ID)
	assert.True(t, subs.IsFollowing(ctx, follower.ID, author.ID))

	_, err = subs.Follow(ctx, follower.ID, author.ID, 0)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, subs.Unfollow(ctx, follower.ID, author.ID))
	assert.False(t, subs.IsFollowing(ctx, follower.ID, author.ID))

	err = subs.Unfollow(ctx, follower.ID, author.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowRejectsSelf(t *testing.T) {
	db := setupTestDB(t)
	subs := NewSubscriptionService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "loner")

	_, err := subs.Follow(ctx, user.ID, user.ID, 0)
	assert.True(t, IsValidationError(err))
	assert.False(t, subs.IsFollowing(ctx, user.ID, user.ID))
}

func TestFollowUnknownAuthor(t *testing.T) {
	db := setupTestDB(t)
	subs := NewSubscriptionService(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "follower")

	_, err := subs.Follow(ctx, follower.ID, uuid.New(), 0)
	assert.ErrorIs(t, err, ErrNotFound)

	err = subs.Unfollow(ctx, follower.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscriptionsListing(t *testing.T) {
	db := setupTestDB(t)
	subs := NewSubscriptionService(db)
	recipes := NewRecipeService(db, nil)
	ctx := context.Background()

	follower := createTestUser(t, db, "follower")
	author := createTestUser(t, db, "prolific")
	salt := createTestIngredient(t, db, "Salt", "g")

	for i := 0; i < 5; i++ {
		_, err := recipes.CreateRecipe(ctx, author.ID, newRecipeRequest(
			"Recipe", types.RecipeIngredientRef{ID: salt.ID, Amount: 1}))
		require.NoError(t, err)
	}

	_, err := subs.Follow(ctx, follower.ID, author.ID, 0)
	require.NoError(t, err)

	list, total, err := subs.Subscriptions(ctx, follower.ID, 1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	// The nested recipes are capped at the default, with the full count
	// reported alongside.
	assert.Len(t, list[0].Recipes, DefaultRecipesLimit)
	assert.Equal(t, int64(5), list[0].RecipesCount)

	list, _, err = subs.Subscriptions(ctx, follower.ID, 1, 10, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Recipes, 2)
}
