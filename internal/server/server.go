package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platefeed/backend/config"
	"github.com/platefeed/backend/internal/api"
	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New wires the services and handlers into a server instance. The Redis
// client and image store may be nil; the corresponding features degrade
// gracefully.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, images service.ImageStore) *Server {
	router := gin.Default()
	router.Use(middleware.CORS("http://localhost:5173"))

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, images)
	toggleService := service.NewToggleService(db)
	shoppingService := service.NewShoppingListService(db)
	subscriptionService := service.NewSubscriptionService(db)
	referenceService := service.NewReferenceService(db)

	var writeLimiter *middleware.RateLimiter
	if redisClient != nil {
		writeLimiter = middleware.NewRecipeWriteRateLimiter(redisClient)
	}

	v1 := router.Group("/api/v1")
	api.NewUserHandler(authService, subscriptionService).RegisterRoutes(v1)
	api.NewReferenceHandler(referenceService).RegisterRoutes(v1)
	api.NewRecipeHandler(recipeService, toggleService, shoppingService, authService, writeLimiter).RegisterRoutes(v1)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Start begins serving; it blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
