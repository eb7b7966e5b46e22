package service

import (
	"context"
	"time"

	"care-tracker/internal/careday"
	"care-tracker/internal/model"
	"care-tracker/internal/repository"
)

// TaskService derives completion status from the append-only log and
// records new completions/undos. There is no stored "done" flag: status
// for a (care item, care day) pair is always a pure function of that
// pair's log entries, resolved last-writer-wins with the entry id as a
// deterministic tiebreak under timestamp collisions.
type TaskService struct {
	logRepo  *repository.TaskLogRepository
	itemRepo *repository.CareItemRepository
	petRepo  *repository.PetRepository
	days     *careday.Calculator
	now      func() time.Time
}

func NewTaskService(logRepo *repository.TaskLogRepository, itemRepo *repository.CareItemRepository, petRepo *repository.PetRepository, days *careday.Calculator) *TaskService {
	return &TaskService{
		logRepo:  logRepo,
		itemRepo: itemRepo,
		petRepo:  petRepo,
		days:     days,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *TaskService) SetClock(now func() time.Time) {
	s.now = now
}

// StatusForDay reports whether the item resolves to completed for the
// given care day, as of now.
func (s *TaskService) StatusForDay(ctx context.Context, careItemID uint, careDay time.Time) (bool, error) {
	last, err := s.logRepo.LastForDay(ctx, careItemID, careDay)
	if err != nil {
		return false, err
	}
	return last != nil && last.Completed(), nil
}

// LastCompletionForDay returns the entry behind the item's current
// completed state, or nil when the item does not currently resolve to
// completed. An item that was completed then undone has no current
// completion even though completed rows exist in history.
func (s *TaskService) LastCompletionForDay(ctx context.Context, careItemID uint, careDay time.Time) (*model.TaskLog, error) {
	completed, err := s.StatusForDay(ctx, careItemID, careDay)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, nil
	}
	return s.logRepo.LastCompletedForDay(ctx, careItemID, careDay)
}

// Complete marks a task done for today's care day by appending a
// completed entry. Fails with ErrAlreadyCompleted (and appends nothing)
// when the task already resolves to completed.
func (s *TaskService) Complete(ctx context.Context, careItemID uint, completedBy, notes string) (*model.TaskLog, error) {
	if _, err := s.itemRepo.FindByID(ctx, careItemID); err != nil {
		return nil, err
	}

	now := s.now()
	day := s.days.DayFor(now)

	completed, err := s.StatusForDay(ctx, careItemID, day)
	if err != nil {
		return nil, err
	}
	if completed {
		return nil, ErrAlreadyCompleted
	}

	entry := &model.TaskLog{
		CareItemID:  careItemID,
		CareDay:     day,
		Action:      model.ActionCompleted,
		CompletedBy: completedBy,
		Timestamp:   now,
		Notes:       notes,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Undo reverses today's completion by appending an undone entry. Fails
// with ErrNotCompleted (and appends nothing) when the task does not
// currently resolve to completed.
func (s *TaskService) Undo(ctx context.Context, careItemID uint, completedBy, notes string) (*model.TaskLog, error) {
	if _, err := s.itemRepo.FindByID(ctx, careItemID); err != nil {
		return nil, err
	}

	now := s.now()
	day := s.days.DayFor(now)

	completed, err := s.StatusForDay(ctx, careItemID, day)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrNotCompleted
	}

	entry := &model.TaskLog{
		CareItemID:  careItemID,
		CareDay:     day,
		Action:      model.ActionUndone,
		CompletedBy: completedBy,
		Timestamp:   now,
		Notes:       notes,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// TaskStatus is one care item's resolved state for a care day, with
// the metadata of the winning completion when there is one.
type TaskStatus struct {
	CareItem    model.CareItem
	IsCompleted bool
	CompletedAt *time.Time
	CompletedBy string
}

// PetSummary groups a pet's task statuses for one care day.
type PetSummary struct {
	Pet     model.Pet
	CareDay time.Time
	Tasks   []TaskStatus
}

// DailySummary resolves every active care item of every active pet for
// the given care day. Drives both the dashboard and the nightly
// incomplete-task reminder.
func (s *TaskService) DailySummary(ctx context.Context, careDay time.Time) ([]PetSummary, error) {
	pets, err := s.petRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]PetSummary, 0, len(pets))
	for _, pet := range pets {
		items, err := s.itemRepo.ListActive(ctx, pet.ID)
		if err != nil {
			return nil, err
		}

		tasks := make([]TaskStatus, 0, len(items))
		for _, item := range items {
			status := TaskStatus{CareItem: item}
			last, err := s.LastCompletionForDay(ctx, item.ID, careDay)
			if err != nil {
				return nil, err
			}
			if last != nil {
				status.IsCompleted = true
				at := last.Timestamp
				status.CompletedAt = &at
				status.CompletedBy = last.CompletedBy
			}
			tasks = append(tasks, status)
		}

		summaries = append(summaries, PetSummary{Pet: pet, CareDay: careDay, Tasks: tasks})
	}
	return summaries, nil
}

// History lists raw log entries newest first under the given filter.
func (s *TaskService) History(ctx context.Context, filter repository.HistoryFilter) ([]model.TaskLog, error) {
	return s.logRepo.ListHistory(ctx, filter)
}
