package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

const (
	// MinIngredientAmount is the smallest amount a recipe may require.
	MinIngredientAmount = 1

	// DefaultPageSize is used when a list request carries no limit parameter.
	DefaultPageSize = 10
	// MaxPageSize caps the limit parameter.
	MaxPageSize = 100
)

// RecipeService handles recipe reads and the transactional recipe writes that
// keep the junction tables consistent with the caller-supplied desired state.
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// CreateRecipe creates a recipe and its junction rows as one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	if req.CookingTime < 1 {
		return nil, newValidationError("cooking_time", "must be a positive number of minutes")
	}
	if len(req.Ingredients) == 0 {
		return nil, newValidationError("ingredients", "at least one ingredient is required")
	}

	imageURL, err := s.storeImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := syncIngredients(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return syncTags(tx, recipe.ID, req.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe applies a partial update. Scalar fields change only when
// present; an ingredient or tag list, when present, fully replaces the
// recipe's prior associations.
func (s *RecipeService) UpdateRecipe(ctx context.Context, actorID, id uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.getOwned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if req.CookingTime != nil && *req.CookingTime < 1 {
		return nil, newValidationError("cooking_time", "must be a positive number of minutes")
	}
	if req.Ingredients != nil && len(req.Ingredients) == 0 {
		return nil, newValidationError("ingredients", "at least one ingredient is required")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.CookingTime != nil {
		updates["cooking_time"] = *req.CookingTime
	}
	if req.Image != nil {
		imageURL, err := s.storeImage(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		updates["image_url"] = imageURL
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(recipe).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Ingredients != nil {
			if err := syncIngredients(tx, recipe.ID, req.Ingredients); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := syncTags(tx, recipe.ID, req.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes a recipe with all its junction and toggle rows.
func (s *RecipeService) DeleteRecipe(ctx context.Context, actorID, id uuid.UUID) error {
	recipe, err := s.getOwned(ctx, actorID, id)
	if err != nil {
		return err
	}

	// Explicit cascade so the behavior does not depend on driver-level
	// foreign key enforcement.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.RecipeIngredient{},
			&models.RecipeTag{},
			&models.Favorite{},
			&models.ShoppingCartEntry{},
		} {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(recipe).Error
	})
}

// GetRecipe retrieves a recipe with its author, tags and ingredients.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// RecipeFilter holds the recognized recipe list parameters. Each filter is a
// no-op when its field is zero.
type RecipeFilter struct {
	Author         *uuid.UUID
	TagSlugs       []string
	Favorited      bool
	InShoppingCart bool
	Page           int
	Limit          int
}

// ListRecipes composes the active filters into one query, newest first.
// The membership flags are scoped to the authenticated actor; without an
// actor they yield an empty result.
func (s *RecipeService) ListRecipes(ctx context.Context, actor *uuid.UUID, f RecipeFilter) ([]models.Recipe, int64, error) {
	if (f.Favorited || f.InShoppingCart) && actor == nil {
		return []models.Recipe{}, 0, nil
	}

	q := s.db.WithContext(ctx).Model(&models.Recipe{})

	if f.Author != nil {
		q = q.Where("author_id = ?", *f.Author)
	}
	if len(f.TagSlugs) > 0 {
		tagged := s.db.Model(&models.RecipeTag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		q = q.Where("id IN (?)", tagged)
	}
	if f.Favorited {
		q = q.Where("id IN (?)", s.db.Model(&models.Favorite{}).
			Select("recipe_id").Where("user_id = ?", *actor))
	}
	if f.InShoppingCart {
		q = q.Where("id IN (?)", s.db.Model(&models.ShoppingCartEntry{}).
			Select("recipe_id").Where("user_id = ?", *actor))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	var recipes []models.Recipe
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// IsFavorited reports whether the user has favorited the recipe.
func (s *RecipeService) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) bool {
	var count int64
	s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count)
	return count > 0
}

// IsInShoppingCart reports whether the recipe sits in the user's cart.
func (s *RecipeService) IsInShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) bool {
	var count int64
	s.db.WithContext(ctx).Model(&models.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count)
	return count > 0
}

func (s *RecipeService) getOwned(ctx context.Context, actorID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != actorID {
		return nil, ErrForbidden
	}
	return &recipe, nil
}

func (s *RecipeService) storeImage(ctx context.Context, image string) (string, error) {
	if image == "" {
		return "", nil
	}
	// Pre-uploaded images arrive as a plain URL, fresh ones as a base64
	// data URI that goes through the image store.
	if !strings.HasPrefix(image, "data:") {
		return image, nil
	}
	if s.images == nil {
		return "", newValidationError("image", "image upload is not configured")
	}
	data, contentType, err := DecodeBase64Image(image)
	if err != nil {
		return "", newValidationError("image", "invalid base64 image: %v", err)
	}
	return s.images.UploadImage(ctx, data, contentType)
}

// syncIngredients reconciles the recipe's ingredient junction rows to exactly
// match the desired set: validate every reference, delete rows whose
// ingredient is no longer desired, then upsert the rest. Calling it twice with
// the same desired set is a no-op on the second call.
func syncIngredients(tx *gorm.DB, recipeID uuid.UUID, desired []types.RecipeIngredientRef) error {
	ids := make([]uuid.UUID, 0, len(desired))
	seen := make(map[uuid.UUID]bool, len(desired))
	for _, ref := range desired {
		if seen[ref.ID] {
			return newValidationError("ingredients", "duplicate ingredient id %s", ref.ID)
		}
		seen[ref.ID] = true
		if ref.Amount < MinIngredientAmount {
			return newValidationError("ingredients", "amount for ingredient %s must be at least %d", ref.ID, MinIngredientAmount)
		}
		ids = append(ids, ref.ID)
	}

	if err := resolveReferences(tx, &models.Ingredient{}, "ingredients", ids); err != nil {
		return err
	}

	del := tx.Where("recipe_id = ?", recipeID)
	if len(ids) > 0 {
		del = del.Where("ingredient_id NOT IN ?", ids)
	}
	if err := del.Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}

	for _, ref := range desired {
		row := models.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: ref.ID,
			Amount:       ref.Amount,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "ingredient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// syncTags reconciles the recipe's tag junction rows the same way; tags carry
// no payload, so the upsert degrades to insert-if-absent.
func syncTags(tx *gorm.DB, recipeID uuid.UUID, desired []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(desired))
	for _, id := range desired {
		if seen[id] {
			return newValidationError("tags", "duplicate tag id %s", id)
		}
		seen[id] = true
	}

	if err := resolveReferences(tx, &models.Tag{}, "tags", desired); err != nil {
		return err
	}

	del := tx.Where("recipe_id = ?", recipeID)
	if len(desired) > 0 {
		del = del.Where("tag_id NOT IN ?", desired)
	}
	if err := del.Delete(&models.RecipeTag{}).Error; err != nil {
		return err
	}

	for _, tagID := range desired {
		row := models.RecipeTag{
			ID:       uuid.New(),
			RecipeID: recipeID,
			TagID:    tagID,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "tag_id"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// resolveReferences fails with a ValidationError naming the first id that does
// not resolve to an existing row of the given model.
func resolveReferences(tx *gorm.DB, model interface{}, field string, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uuid.UUID
	if err := tx.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	existing := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}
	for _, id := range ids {
		if !existing[id] {
			return newValidationError(field, "unknown id %s", id)
		}
	}
	return nil
}
