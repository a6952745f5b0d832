package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/types"
)

type RecipeHandler struct {
	recipes     *service.RecipeService
	toggles     *service.ToggleService
	shopping    *service.ShoppingListService
	authService *service.AuthService
	// Optional; nil disables rate limiting (tests, no Redis).
	writeLimiter *middleware.RateLimiter
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	toggles *service.ToggleService,
	shopping *service.ShoppingListService,
	authService *service.AuthService,
	writeLimiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:      recipes,
		toggles:      toggles,
		shopping:     shopping,
		authService:  authService,
		writeLimiter: writeLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	optional := middleware.OptionalAuthMiddleware(h.authService)
	required := middleware.AuthMiddleware(h.authService)

	write := []gin.HandlerFunc{required}
	if h.writeLimiter != nil {
		write = append(write, h.writeLimiter.RateLimitMiddleware())
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/download_shopping_cart", required, h.DownloadShoppingCart)
		recipes.GET("/:id", optional, h.GetRecipe)
		recipes.POST("", append(write, h.CreateRecipe)...)
		recipes.PATCH("/:id", append(write, h.UpdateRecipe)...)
		recipes.DELETE("/:id", append(write, h.DeleteRecipe)...)
		recipes.POST("/:id/favorite", required, h.AddFavorite)
		recipes.DELETE("/:id/favorite", required, h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", required, h.AddToShoppingCart)
		recipes.DELETE("/:id/shopping_cart", required, h.RemoveFromShoppingCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var actor *uuid.UUID
	if id, ok := middleware.CurrentUserID(c); ok {
		actor = &id
	}

	filter := service.RecipeFilter{
		TagSlugs:       c.QueryArray("tags"),
		Favorited:      truthy(c.Query("is_favorited")),
		InShoppingCart: truthy(c.Query("is_in_shopping_cart")),
		Page:           intQuery(c, "page", 1),
		Limit:          intQuery(c, "limit", 0),
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.Author = &authorID
	}

	recipes, total, err := h.recipes.ListRecipes(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		results = append(results, h.recipeResponse(c, &recipes[i], actor))
	}
	c.JSON(http.StatusOK, PageResponse{Count: total, Results: results})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var actor *uuid.UUID
	if actorID, ok := middleware.CurrentUserID(c); ok {
		actor = &actorID
	}
	c.JSON(http.StatusOK, h.recipeResponse(c, recipe, actor))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.recipeResponse(c, recipe, &userID))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.recipeResponse(c, recipe, &userID))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addToggle(c, h.toggles.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeToggle(c, h.toggles.RemoveFavorite)
}

func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	h.addToggle(c, h.toggles.AddCartEntry)
}

func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeToggle(c, h.toggles.RemoveCartEntry)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	report, err := h.shopping.BuildReport(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ShoppingListFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

func (h *RecipeHandler) addToggle(c *gin.Context, add func(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := add(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newRecipeShortResponse(recipe))
}

func (h *RecipeHandler) removeToggle(c *gin.Context, remove func(ctx context.Context, userID, recipeID uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := remove(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) recipeResponse(c *gin.Context, recipe *models.Recipe, actor *uuid.UUID) RecipeResponse {
	isFavorited := false
	isInCart := false
	if actor != nil {
		ctx := c.Request.Context()
		isFavorited = h.recipes.IsFavorited(ctx, *actor, recipe.ID)
		isInCart = h.recipes.IsInShoppingCart(ctx, *actor, recipe.ID)
	}
	return newRecipeResponse(recipe, isFavorited, isInCart)
}

func truthy(value string) bool {
	switch value {
	case "1", "true", "True":
		return true
	}
	return false
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
