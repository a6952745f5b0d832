package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
)

// Favorite, ShoppingCartEntry and Follow all share the same add/remove
// contract over a unique pair row, so one generic implementation backs all
// three. Add leans on the store's unique constraint as the arbiter for
// concurrent calls; any existence pre-check would only be advisory.

// addPair inserts the pair row, translating a duplicate-key rejection into
// ErrConflict with a domain message.
func addPair[T any](db *gorm.DB, row *T, conflictMsg string) error {
	if err := db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%s: %w", conflictMsg, ErrConflict)
		}
		return err
	}
	return nil
}

// removePair deletes the pair row matching the condition; an absent row fails
// with ErrNotFound.
func removePair[T any](db *gorm.DB, notFoundMsg string, query string, args ...interface{}) error {
	res := db.Where(query, args...).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", notFoundMsg, ErrNotFound)
	}
	return nil
}

// ToggleService implements the favorite and shopping cart toggles.
type ToggleService struct {
	db *gorm.DB
}

// NewToggleService creates a new ToggleService instance
func NewToggleService(db *gorm.DB) *ToggleService {
	return &ToggleService{db: db}
}

// AddFavorite marks the recipe as favorited by the user and returns the
// recipe for the short response body.
func (s *ToggleService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	fav := models.Favorite{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	if err := addPair(s.db.WithContext(ctx), &fav, "recipe already in favorites"); err != nil {
		return nil, err
	}
	return recipe, nil
}

// RemoveFavorite deletes the favorite row.
func (s *ToggleService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(ctx, recipeID); err != nil {
		return err
	}
	return removePair[models.Favorite](s.db.WithContext(ctx),
		"recipe not in favorites", "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// AddCartEntry queues the recipe in the user's shopping cart.
func (s *ToggleService) AddCartEntry(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	entry := models.ShoppingCartEntry{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	if err := addPair(s.db.WithContext(ctx), &entry, "recipe already in shopping cart"); err != nil {
		return nil, err
	}
	return recipe, nil
}

// RemoveCartEntry removes the recipe from the user's shopping cart.
func (s *ToggleService) RemoveCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(ctx, recipeID); err != nil {
		return err
	}
	return removePair[models.ShoppingCartEntry](s.db.WithContext(ctx),
		"recipe not in shopping cart", "user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (s *ToggleService) findRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &recipe, nil
}
