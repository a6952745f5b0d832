package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/types"
)

func TestBuildReportAggregatesByNameAndUnit(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db, nil)
	toggles := NewToggleService(db)
	shopping := NewShoppingListService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	shopper := createTestUser(t, db, "shopper")
	salt := createTestIngredient(t, db, "Salt", "g")
	sugar := createTestIngredient(t, db, "Sugar", "g")

	soup, err := recipes.CreateRecipe(ctx, author.ID, newRecipeRequest("Soup",
		types.RecipeIngredientRef{ID: salt.ID, Amount: 5},
		types.RecipeIngredientRef{ID: sugar.ID, Amount: 20},
	))
	require.NoError(t, err)

	stew, err := recipes.CreateRecipe(ctx, author.ID, newRecipeRequest("Stew",
		types.RecipeIngredientRef{ID: salt.ID, Amount: 10},
	))
	require.NoError(t, err)

	_, err = toggles.AddCartEntry(ctx, shopper.ID, soup.ID)
	require.NoError(t, err)
	_, err = toggles.AddCartEntry(ctx, shopper.ID, stew.ID)
	require.NoError(t, err)

	report, err := shopping.BuildReport(ctx, shopper.ID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Platefeed shopping list"))

	// Salt appears in both recipes and is summed into a single line; line
	// order follows first encounter.
	assert.Equal(t, "Salt (g): 15", lines[1])
	assert.Equal(t, "Sugar (g): 20", lines[2])
}

func TestBuildReportScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	recipes := NewRecipeService(db, nil)
	toggles := NewToggleService(db)
	shopping := NewShoppingListService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")
	salt := createTestIngredient(t, db, "Salt", "g")

	recipe, err := recipes.CreateRecipe(ctx, author.ID, newRecipeRequest("Soup",
		types.RecipeIngredientRef{ID: salt.ID, Amount: 5}))
	require.NoError(t, err)

	_, err = toggles.AddCartEntry(ctx, other.ID, recipe.ID)
	require.NoError(t, err)

	report, err := shopping.BuildReport(ctx, author.ID)
	require.NoError(t, err)
	assert.NotContains(t, report, "Salt")
}

func TestBuildReportEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	shopping := NewShoppingListService(db)
	ctx := context.Background()

	shopper := createTestUser(t, db, "shopper")

	report, err := shopping.BuildReport(ctx, shopper.ID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Platefeed shopping list"))
}
