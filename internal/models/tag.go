package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is immutable reference data attached to recipes.
type Tag struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Color     string    `gorm:"size:7;not null" json:"color"`
	Slug      string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
}
