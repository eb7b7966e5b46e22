package model

import "time"

// Pet is a household animal with its own set of care items.
//
// The Timer* fields are a mutable sub-record holding transient
// countdown state (e.g. "fed 2h ago, next meal in 4h"); they are
// presentation/notification state, not history.
type Pet struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Species   string `gorm:"size:50;not null"`
	Notes     string
	CreatedAt time.Time
	IsActive  bool `gorm:"default:true"`

	TimerEndTime   *time.Time
	TimerLabel     *string `gorm:"size:100"`
	TimerAlertSent bool    `gorm:"default:false"`

	CareItems []CareItem `gorm:"foreignKey:PetID"`
}
