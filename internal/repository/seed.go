package repository

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"care-tracker/internal/model"
)

// Seed populates an empty database with the default household pet and
// her care regimen. Idempotent: keyed on the pet name, so restarting
// the process never duplicates rows.
func Seed(ctx context.Context, db *gorm.DB) error {
	var existing model.Pet
	err := db.WithContext(ctx).Where("name = ?", "Chessie").First(&existing).Error
	switch {
	case err == nil:
		return nil
	case err != gorm.ErrRecordNotFound:
		return fmt.Errorf("seed lookup: %w", err)
	}

	pet := model.Pet{
		Name:    "Chessie",
		Species: "dog",
		Notes:   "Requires daily medications and supplements.",
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pet).Error; err != nil {
			return fmt.Errorf("seed pet: %w", err)
		}
		items := []model.CareItem{
			{PetID: pet.ID, Name: "Denamarin", Description: "Liver supplement",
				Notes:    "Give on empty stomach, at least 1 hour before food",
				Category: "medication", DisplayOrder: 1},
			{PetID: pet.ID, Name: "Ursodiol", Description: "Liver medication",
				Notes: "Give with food", Category: "medication", DisplayOrder: 2},
			{PetID: pet.ID, Name: "Fish Oil", Description: "Omega supplement for coat and joints",
				Notes: "Give with food", Category: "supplement", DisplayOrder: 3},
			{PetID: pet.ID, Name: "Breakfast", Description: "Morning meal",
				Category: "food", DisplayOrder: 4},
			{PetID: pet.ID, Name: "Dinner", Description: "Evening meal",
				Category: "food", DisplayOrder: 5},
			{PetID: pet.ID, Name: "Cosequin", Description: "Joint supplement",
				Notes: "Give with food", Category: "supplement", DisplayOrder: 6},
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("seed care items: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[info] seeded default pet %q with care items", pet.Name)
	return nil
}
