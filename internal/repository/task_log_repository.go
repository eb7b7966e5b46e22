package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"care-tracker/internal/model"
)

// HistoryFilter narrows a raw task-log listing. Zero values mean "no
// filter" for that field.
type HistoryFilter struct {
	StartDay   time.Time
	EndDay     time.Time
	PetID      uint
	CareItemID uint
	Limit      int
}

// TaskLogRepository reads and appends the completion log. The log is
// append-only: nothing here updates or deletes rows.
type TaskLogRepository struct {
	db *gorm.DB
}

func NewTaskLogRepository(db *gorm.DB) *TaskLogRepository {
	return &TaskLogRepository{db: db}
}

func (r *TaskLogRepository) Append(ctx context.Context, entry *model.TaskLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append task log: %w", err)
	}
	return nil
}

// LastForDay returns the winning entry for (item, day): newest by
// timestamp, ties broken by id so concurrent same-second writes resolve
// deterministically by insertion order. Nil when the pair has no entries.
func (r *TaskLogRepository) LastForDay(ctx context.Context, careItemID uint, careDay time.Time) (*model.TaskLog, error) {
	var entry model.TaskLog
	err := r.db.WithContext(ctx).
		Where("care_item_id = ? AND care_day = ?", careItemID, careDay).
		Order("timestamp DESC, id DESC").
		First(&entry).Error
	switch {
	case err == nil:
		return &entry, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("last log for day: %w", err)
	}
}

// LastCompletedForDay returns the newest completed entry for (item, day),
// or nil. Callers wanting "current completion" must first confirm the
// pair still resolves to completed via LastForDay.
func (r *TaskLogRepository) LastCompletedForDay(ctx context.Context, careItemID uint, careDay time.Time) (*model.TaskLog, error) {
	var entry model.TaskLog
	err := r.db.WithContext(ctx).
		Where("care_item_id = ? AND care_day = ? AND action = ?", careItemID, careDay, model.ActionCompleted).
		Order("timestamp DESC, id DESC").
		First(&entry).Error
	switch {
	case err == nil:
		return &entry, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("last completion for day: %w", err)
	}
}

// ListByCareDayRange fetches every entry whose care day falls in
// [startDay, endDay], oldest first by (timestamp, id) so a fold over the
// result leaves the winning action last.
func (r *TaskLogRepository) ListByCareDayRange(ctx context.Context, startDay, endDay time.Time) ([]model.TaskLog, error) {
	var entries []model.TaskLog
	if err := r.db.WithContext(ctx).
		Where("care_day >= ? AND care_day <= ?", startDay, endDay).
		Order("timestamp ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// EarliestCareDay returns the oldest care day in the log, or nil when
// the log is empty.
func (r *TaskLogRepository) EarliestCareDay(ctx context.Context) (*time.Time, error) {
	var entry model.TaskLog
	err := r.db.WithContext(ctx).Order("care_day ASC").First(&entry).Error
	switch {
	case err == nil:
		day := entry.CareDay
		return &day, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("earliest care day: %w", err)
	}
}

// ListHistory returns log entries newest first under the given filter.
func (r *TaskLogRepository) ListHistory(ctx context.Context, f HistoryFilter) ([]model.TaskLog, error) {
	q := r.db.WithContext(ctx).Model(&model.TaskLog{})
	if f.PetID != 0 {
		q = q.Joins("JOIN care_items ON care_items.id = task_logs.care_item_id").
			Where("care_items.pet_id = ?", f.PetID)
	}
	if !f.StartDay.IsZero() {
		q = q.Where("task_logs.care_day >= ?", f.StartDay)
	}
	if !f.EndDay.IsZero() {
		q = q.Where("task_logs.care_day <= ?", f.EndDay)
	}
	if f.CareItemID != 0 {
		q = q.Where("task_logs.care_item_id = ?", f.CareItemID)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	var entries []model.TaskLog
	if err := q.Order("task_logs.timestamp DESC, task_logs.id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
