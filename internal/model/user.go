package model

import "time"

// User is a household caretaker. There is no login: the name is a
// free-text identity used to label who completed a task and, when a
// phone number is present, where to send alerts.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
	LastSeen  time.Time

	PhoneNumber     string `gorm:"size:20"`
	WantsAlerts     bool   `gorm:"default:false"`
	AlertExpiryDate *time.Time
}

// AlertEligible reports whether this user should receive notifications
// on the given care day: alerts enabled, a phone on file, and either no
// expiry date or one that has not yet passed.
func (u User) AlertEligible(careDay time.Time) bool {
	if !u.WantsAlerts || u.PhoneNumber == "" {
		return false
	}
	return u.AlertExpiryDate == nil || !u.AlertExpiryDate.Before(careDay)
}
