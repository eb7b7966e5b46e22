package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"care-tracker/internal/model"
)

// UserRepository handles household caretakers.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CheckIn finds or creates a user by name and refreshes their profile
// and last-seen stamp. Returns the user and whether it was newly created.
func (r *UserRepository) CheckIn(ctx context.Context, name, phone string, wantsAlerts bool, alertExpiry *time.Time, now time.Time) (*model.User, bool, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("name = ?", name).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"last_seen":         now,
			"phone_number":      phone,
			"wants_alerts":      wantsAlerts,
			"alert_expiry_date": alertExpiry,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, false, fmt.Errorf("update user: %w", err)
		}
		return &user, false, nil
	case err == gorm.ErrRecordNotFound:
		user = model.User{
			Name:            name,
			LastSeen:        now,
			PhoneNumber:     phone,
			WantsAlerts:     wantsAlerts,
			AlertExpiryDate: alertExpiry,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, false, fmt.Errorf("create user: %w", err)
		}
		return &user, true, nil
	default:
		return nil, false, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) FindByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Search matches user names by substring, for the "who are you" picker.
func (r *UserRepository) Search(ctx context.Context, query string) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+query+"%").
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListAlertRecipients returns users eligible for notifications on the
// given care day: alerts on, phone on file, and no expiry date or one
// at/after the care day.
func (r *UserRepository) ListAlertRecipients(ctx context.Context, careDay time.Time) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("wants_alerts = ? AND phone_number <> '' AND (alert_expiry_date IS NULL OR alert_expiry_date >= ?)", true, careDay).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
