package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/warung-ledger/internal/models"
	"gorm.io/gorm"
)

// Seed inserts the baseline categories and order-entry presets. Running it again
// only fills in entries that are missing.
func Seed(gdb *gorm.DB) error {
	baseCategories := []models.Category{
		{Name: "Makanan", SortOrder: 1},
		{Name: "Minuman", SortOrder: 2},
		{Name: "Snack", SortOrder: 3},
	}
	for _, c := range baseCategories {
		var existing models.Category
		err := gdb.Where("name = ?", c.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gdb.Create(&c).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", c.Name, err)
			}
		} else if err != nil {
			return err
		}
	}

	basePresets := []models.SuggestionPreset{
		{Label: "Pedas", SortOrder: 1},
		{Label: "Tidak pedas", SortOrder: 2},
		{Label: "Es sedikit", SortOrder: 3},
		{Label: "Bungkus", SortOrder: 4},
	}
	for _, p := range basePresets {
		var existing models.SuggestionPreset
		err := gdb.Where("label = ?", p.Label).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gdb.Create(&p).Error; err != nil {
				return fmt.Errorf("seed preset %s: %w", p.Label, err)
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
