package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"care-tracker/internal/model"
)

// PetRepository handles pets and their timer sub-records.
type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, pet *model.Pet) error {
	if err := r.db.WithContext(ctx).Create(pet).Error; err != nil {
		return fmt.Errorf("create pet: %w", err)
	}
	return nil
}

func (r *PetRepository) FindByID(ctx context.Context, petID uint) (*model.Pet, error) {
	var pet model.Pet
	if err := r.db.WithContext(ctx).First(&pet, petID).Error; err != nil {
		return nil, notFound(err)
	}
	return &pet, nil
}

func (r *PetRepository) ListActive(ctx context.Context) ([]model.Pet, error) {
	var pets []model.Pet
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("id ASC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

// EarliestCreated returns the oldest pet by creation time, or nil when
// the table is empty. The grid builder uses it to keep paging sensible
// before any task has ever been logged.
func (r *PetRepository) EarliestCreated(ctx context.Context) (*model.Pet, error) {
	var pet model.Pet
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").First(&pet).Error
	switch {
	case err == nil:
		return &pet, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("earliest pet: %w", err)
	}
}

// UpdateTimer writes the pet's timer sub-record in one statement.
// Passing nils clears the timer.
func (r *PetRepository) UpdateTimer(ctx context.Context, petID uint, endTime *time.Time, label *string, alertSent bool) error {
	res := r.db.WithContext(ctx).Model(&model.Pet{}).Where("id = ?", petID).
		Updates(map[string]interface{}{
			"timer_end_time":   endTime,
			"timer_label":      label,
			"timer_alert_sent": alertSent,
		})
	if res.Error != nil {
		return fmt.Errorf("update timer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAlerted flips the alert-sent flag while leaving the end time in
// place so the UI can keep showing the "ready" state.
func (r *PetRepository) MarkAlerted(ctx context.Context, petID uint) error {
	if err := r.db.WithContext(ctx).Model(&model.Pet{}).Where("id = ?", petID).
		Update("timer_alert_sent", true).Error; err != nil {
		return fmt.Errorf("mark alerted: %w", err)
	}
	return nil
}

// ListExpiredUnalerted finds pets whose timer has run out but have not
// been notified about it yet.
func (r *PetRepository) ListExpiredUnalerted(ctx context.Context, now time.Time) ([]model.Pet, error) {
	var pets []model.Pet
	if err := r.db.WithContext(ctx).
		Where("timer_end_time IS NOT NULL AND timer_end_time <= ? AND timer_alert_sent = ?", now, false).
		Order("id ASC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

// ListExpiredAlerted finds pets whose expiry has already been announced
// and whose timer is therefore eligible for the daily cleanup.
func (r *PetRepository) ListExpiredAlerted(ctx context.Context, now time.Time) ([]model.Pet, error) {
	var pets []model.Pet
	if err := r.db.WithContext(ctx).
		Where("timer_end_time IS NOT NULL AND timer_end_time <= ? AND timer_alert_sent = ?", now, true).
		Order("id ASC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

// CountExpired counts pets with a timer at or past its end time.
func (r *PetRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Pet{}).
		Where("timer_end_time IS NOT NULL AND timer_end_time <= ?", now).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count expired timers: %w", err)
	}
	return n, nil
}

// CountActive counts pets with a timer still running.
func (r *PetRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Pet{}).
		Where("timer_end_time IS NOT NULL AND timer_end_time > ?", now).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count active timers: %w", err)
	}
	return n, nil
}
