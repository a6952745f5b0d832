package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`
	AuthorID    uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Author      User               `gorm:"foreignKey:AuthorID" json:"-"`
	Name        string             `gorm:"size:150;not null" json:"name"`
	ImageURL    string             `gorm:"size:255" json:"image"`
	Text        string             `gorm:"type:text;not null" json:"text"`
	CookingTime int                `gorm:"not null;check:cooking_time > 0" json:"cooking_time"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Tags        []RecipeTag        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// RecipeIngredient is the junction row carrying the required amount.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
	Amount       float64    `gorm:"not null;check:amount > 0" json:"amount"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_tag" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_tag" json:"tag_id"`
	Tag      Tag       `gorm:"foreignKey:TagID" json:"-"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
