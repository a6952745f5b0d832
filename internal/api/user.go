package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/types"
)

type UserHandler struct {
	authService   *service.AuthService
	subscriptions *service.SubscriptionService
}

func NewUserHandler(authService *service.AuthService, subscriptions *service.SubscriptionService) *UserHandler {
	return &UserHandler{
		authService:   authService,
		subscriptions: subscriptions,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	required := middleware.AuthMiddleware(h.authService)
	users := router.Group("/users")
	{
		users.GET("/me", required, h.Me)
		users.GET("/subscriptions", required, h.Subscriptions)
		users.POST("/:id/subscribe", required, h.Subscribe)
		users.DELETE("/:id/subscribe", required, h.Unsubscribe)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user with this email or username already exists"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  newUserResponse(user, false),
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  newUserResponse(user, false),
	})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user, false))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	isSubscribed := false
	if actorID, ok := middleware.CurrentUserID(c); ok {
		isSubscribed = h.subscriptions.IsFollowing(c.Request.Context(), actorID, id)
	}
	c.JSON(http.StatusOK, newUserResponse(user, isSubscribed))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	sub, err := h.subscriptions.Follow(c.Request.Context(), userID, authorID, intQuery(c, "recipes_limit", service.DefaultRecipesLimit))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSubscriptionResponse(sub))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.subscriptions.Unfollow(c.Request.Context(), userID, authorID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	subs, total, err := h.subscriptions.Subscriptions(
		c.Request.Context(),
		userID,
		intQuery(c, "page", 1),
		intQuery(c, "limit", 0),
		intQuery(c, "recipes_limit", service.DefaultRecipesLimit),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		results = append(results, newSubscriptionResponse(&subs[i]))
	}
	c.JSON(http.StatusOK, PageResponse{Count: total, Results: results})
}
