package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite, ShoppingCartEntry and Follow are toggle relations: a unique pair row
// whose existence is the whole state. The unique index is the arbiter for
// concurrent adds.

type Favorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe;index" json:"recipe_id"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type ShoppingCartEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_recipe;index" json:"recipe_id"`
}

func (ShoppingCartEntry) TableName() string {
	return "shopping_cart_entries"
}

type Follow struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	FollowerID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	AuthorID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_pair;index" json:"author_id"`
}

func (Follow) TableName() string {
	return "follows"
}
