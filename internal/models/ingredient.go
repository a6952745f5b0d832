package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is reference data; the unique (name, measurement_unit) pair keeps
// CSV reseeding idempotent.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Name            string    `gorm:"size:200;not null;index;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:50;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}
