package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/config"
	"github.com/platefeed/backend/internal/database"
	"github.com/platefeed/backend/internal/models"
)

// Loads ingredient reference data from a CSV file with "name,measurement_unit"
// rows. Safe to run repeatedly: existing (name, unit) pairs are left alone.
func main() {
	csvPath := flag.String("file", "data/ingredients.csv", "Path to the ingredients CSV file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *csvPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	var created, skipped int
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read CSV row: %v", err)
		}

		var existing models.Ingredient
		err = db.Where("name = ? AND measurement_unit = ?", row[0], row[1]).
			First(&existing).Error
		switch {
		case err == nil:
			skipped++
		case errors.Is(err, gorm.ErrRecordNotFound):
			ingredient := models.Ingredient{
				ID:              uuid.New(),
				Name:            row[0],
				MeasurementUnit: row[1],
			}
			if err := db.Create(&ingredient).Error; err != nil {
				log.Fatalf("Failed to seed ingredient %q: %v", row[0], err)
			}
			created++
		default:
			log.Fatalf("Failed to look up ingredient %q: %v", row[0], err)
		}
	}

	log.Printf("Ingredients loaded: %d created, %d already present", created, skipped)
}
