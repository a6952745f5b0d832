package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/service"
)

const testJWTSecret = "test-secret"

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeTag{},
		&models.Favorite{},
		&models.ShoppingCartEntry{},
		&models.Follow{},
	)
	require.NoError(t, err)

	auth := service.NewAuthService(db, testJWTSecret)
	recipes := service.NewRecipeService(db, nil)
	toggles := service.NewToggleService(db)
	shopping := service.NewShoppingListService(db)
	subscriptions := service.NewSubscriptionService(db)
	reference := service.NewReferenceService(db)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewUserHandler(auth, subscriptions).RegisterRoutes(v1)
	NewRecipeHandler(recipes, toggles, shopping, auth, nil).RegisterRoutes(v1)
	NewReferenceHandler(reference).RegisterRoutes(v1)

	return router, db
}

// registerTestUser registers through the real endpoint and returns the user id
// with a usable bearer token.
func registerTestUser(t *testing.T, router *gin.Engine, username string) (uuid.UUID, string) {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     username,
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.User.ID, body.Token
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)
	return &ingredient
}

func seedTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	t.Helper()
	tag := models.Tag{ID: uuid.New(), Name: name, Color: "#49B64E", Slug: slug}
	require.NoError(t, db.Create(&tag).Error)
	return &tag
}
