package types

import (
	"github.com/google/uuid"
)

// RecipeIngredientRef is one entry of the desired ingredient set on a recipe
// write: a reference to an existing Ingredient plus the required amount.
type RecipeIngredientRef struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount float64   `json:"amount"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name        string                `json:"name" binding:"required"`
	Text        string                `json:"text" binding:"required"`
	Image       string                `json:"image"`
	CookingTime int                   `json:"cooking_time"`
	Ingredients []RecipeIngredientRef `json:"ingredients" binding:"required"`
	Tags        []uuid.UUID           `json:"tags"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Ingredient and tag lists are the full desired state: whatever is absent from
// them is removed from the recipe.
type UpdateRecipeRequest struct {
	Name        *string               `json:"name"`
	Text        *string               `json:"text"`
	Image       *string               `json:"image"`
	CookingTime *int                  `json:"cooking_time"`
	Ingredients []RecipeIngredientRef `json:"ingredients"`
	Tags        []uuid.UUID           `json:"tags"`
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
