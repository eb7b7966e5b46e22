package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"care-tracker/internal/model"
)

// CareItemRepository handles the per-pet care task catalog.
type CareItemRepository struct {
	db *gorm.DB
}

func NewCareItemRepository(db *gorm.DB) *CareItemRepository {
	return &CareItemRepository{db: db}
}

func (r *CareItemRepository) Create(ctx context.Context, item *model.CareItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create care item: %w", err)
	}
	return nil
}

func (r *CareItemRepository) FindByID(ctx context.Context, itemID uint) (*model.CareItem, error) {
	var item model.CareItem
	if err := r.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// ListActive returns active care items ordered for display. A zero
// petID means all pets.
func (r *CareItemRepository) ListActive(ctx context.Context, petID uint) ([]model.CareItem, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if petID != 0 {
		q = q.Where("pet_id = ?", petID)
	}
	var items []model.CareItem
	if err := q.Order("display_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Deactivate soft-deletes a care item. History for its logged days
// remains readable; it simply stops appearing as a grid column.
func (r *CareItemRepository) Deactivate(ctx context.Context, itemID uint) error {
	res := r.db.WithContext(ctx).Model(&model.CareItem{}).Where("id = ?", itemID).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate care item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
