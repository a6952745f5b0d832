package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platefeed/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

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
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test " + username,
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	tag := &models.Tag{
		ID:    uuid.New(),
		Name:  name,
		Color: "#E26C2D",
		Slug:  slug,
	}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	ingredient := &models.Ingredient{
		ID:              uuid.New(),
		Name:            name,
		MeasurementUnit: unit,
	}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("failed to create test ingredient: %v", err)
	}
	return ingredient
}

func recipeIngredients(t *testing.T, db *gorm.DB, recipeID uuid.UUID) map[uuid.UUID]float64 {
	var rows []models.RecipeIngredient
	if err := db.Where("recipe_id = ?", recipeID).Find(&rows).Error; err != nil {
		t.Fatalf("failed to load junction rows: %v", err)
	}
	out := make(map[uuid.UUID]float64, len(rows))
	for _, row := range rows {
		out[row.IngredientID] = row.Amount
	}
	return out
}
