package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/service"
)

// UserResponse represents a user in API responses
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

// IngredientResponse represents an ingredient in API responses
type IngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// RecipeIngredientResponse is an ingredient nested in a recipe, with amount
type RecipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          float64   `json:"amount"`
}

// RecipeResponse is the full recipe representation
type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Author           UserResponse               `json:"author"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	Tags             []TagResponse              `json:"tags"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// RecipeShortResponse is the compact recipe view returned by toggle adds and
// nested under subscriptions.
type RecipeShortResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionResponse is a followed author with a capped recipe list
type SubscriptionResponse struct {
	ID           uuid.UUID             `json:"id"`
	Username     string                `json:"username"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	IsSubscribed bool                  `json:"is_subscribed"`
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// PageResponse wraps a paginated result set
type PageResponse struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}

func newUserResponse(user *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Name:         user.Name,
		Email:        user.Email,
		IsSubscribed: isSubscribed,
	}
}

func newTagResponse(tag *models.Tag) TagResponse {
	return TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func newIngredientResponse(ingredient *models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

func newRecipeShortResponse(recipe *models.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}

func newRecipeResponse(recipe *models.Recipe, isFavorited, isInCart bool) RecipeResponse {
	tags := make([]TagResponse, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, newTagResponse(&recipe.Tags[i].Tag))
	}
	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for i := range recipe.Ingredients {
		item := &recipe.Ingredients[i]
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              item.IngredientID,
			Name:            item.Ingredient.Name,
			MeasurementUnit: item.Ingredient.MeasurementUnit,
			Amount:          item.Amount,
		})
	}
	return RecipeResponse{
		ID:               recipe.ID,
		Author:           newUserResponse(&recipe.Author, false),
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		CreatedAt:        recipe.CreatedAt,
	}
}

func newSubscriptionResponse(sub *service.Subscription) SubscriptionResponse {
	recipes := make([]RecipeShortResponse, 0, len(sub.Recipes))
	for i := range sub.Recipes {
		recipes = append(recipes, newRecipeShortResponse(&sub.Recipes[i]))
	}
	return SubscriptionResponse{
		ID:           sub.Author.ID,
		Username:     sub.Author.Username,
		Name:         sub.Author.Name,
		Email:        sub.Author.Email,
		IsSubscribed: true,
		Recipes:      recipes,
		RecipesCount: sub.RecipesCount,
	}
}
