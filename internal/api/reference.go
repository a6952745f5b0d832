package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/service"
)

// ReferenceHandler serves the public tag and ingredient endpoints.
type ReferenceHandler struct {
	reference *service.ReferenceService
}

func NewReferenceHandler(reference *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference}
}

func (h *ReferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
	}

	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}
}

func (h *ReferenceHandler) ListTags(c *gin.Context) {
	tags, err := h.reference.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]TagResponse, 0, len(tags))
	for i := range tags {
		results = append(results, newTagResponse(&tags[i]))
	}
	c.JSON(http.StatusOK, results)
}

func (h *ReferenceHandler) GetTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id"})
		return
	}

	tag, err := h.reference.GetTag(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTagResponse(tag))
}

func (h *ReferenceHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.reference.SearchIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		results = append(results, newIngredientResponse(&ingredients[i]))
	}
	c.JSON(http.StatusOK, results)
}

func (h *ReferenceHandler) GetIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ingredient, err := h.reference.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newIngredientResponse(ingredient))
}
