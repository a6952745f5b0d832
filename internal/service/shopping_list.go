package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
)

// ShoppingListFilename is the attachment name for the exported report.
const ShoppingListFilename = "ingredients.txt"

// ShoppingListService aggregates ingredient amounts across every recipe in a
// user's shopping cart.
type ShoppingListService struct {
	db *gorm.DB
}

// NewShoppingListService creates a new ShoppingListService instance
func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

type shoppingListLine struct {
	name  string
	unit  string
	total float64
}

// BuildReport renders the consolidated shopping list as plain text: a
// timestamped header followed by one "{name} ({unit}): {total}" line per
// distinct (name, unit) pair. Lines keep the order of first encounter, so the
// output is reproducible for a given cart. An empty cart yields the header
// only.
func (s *ShoppingListService) BuildReport(ctx context.Context, userID uuid.UUID) (string, error) {
	var entries []models.ShoppingCartEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&entries).Error
	if err != nil {
		return "", err
	}

	type key struct{ name, unit string }
	totals := make(map[key]*shoppingListLine)
	order := make([]*shoppingListLine, 0)

	for _, entry := range entries {
		var items []models.RecipeIngredient
		err := s.db.WithContext(ctx).
			Preload("Ingredient").
			Where("recipe_id = ?", entry.RecipeID).
			Find(&items).Error
		if err != nil {
			return "", err
		}
		for _, item := range items {
			k := key{name: item.Ingredient.Name, unit: item.Ingredient.MeasurementUnit}
			line, ok := totals[k]
			if !ok {
				line = &shoppingListLine{name: k.name, unit: k.unit}
				totals[k] = line
				order = append(order, line)
			}
			line.total += item.Amount
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Platefeed shopping list\t%s\n", time.Now().Format("02-01-2006 15:04:05"))
	for _, line := range order {
		fmt.Fprintf(&b, "%s (%s): %s\n", line.name, line.unit, strconv.FormatFloat(line.total, 'f', -1, 64))
	}
	return b.String(), nil
}
