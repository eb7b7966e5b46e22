package model

import "time"

// CareItem is one recurring care task for a pet (medication, feeding,
// supplement, ...). Immutable after creation except for soft
// deactivation. Its creation timestamp's care day is the first day for
// which history is meaningful.
type CareItem struct {
	ID          uint   `gorm:"primaryKey"`
	PetID       uint   `gorm:"index;not null"`
	Name        string `gorm:"size:100;not null"`
	Description string
	// Notes carries human-readable timing/dependency hints
	// ("give on empty stomach"); nothing enforces them.
	Notes        string
	Category     string `gorm:"size:50"`
	DisplayOrder int    `gorm:"default:0"`
	CreatedAt    time.Time
	IsActive     bool `gorm:"default:true"`

	Pet *Pet `gorm:"foreignKey:PetID"`
}
