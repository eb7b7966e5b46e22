package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"care-tracker/internal/careday"
	"care-tracker/internal/model"
	"care-tracker/internal/repository"
)

// noon on a fixed date, Eastern: well inside one care day.
func testNoon(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Date(2025, 6, 10, 12, 0, 0, 0, loc)
}

func seedPetWithItem(t *testing.T, r repos, createdAt time.Time) (model.Pet, model.CareItem) {
	t.Helper()
	ctx := context.Background()
	pet := model.Pet{Name: "Chessie", Species: "dog", IsActive: true, CreatedAt: createdAt}
	if err := r.pets.Create(ctx, &pet); err != nil {
		t.Fatalf("create pet: %v", err)
	}
	item := model.CareItem{PetID: pet.ID, Name: "Denamarin", Category: "medication", IsActive: true, CreatedAt: createdAt}
	if err := r.items.Create(ctx, &item); err != nil {
		t.Fatalf("create care item: %v", err)
	}
	return pet, item
}

func countLogsForDay(t *testing.T, r repos, itemID uint, day time.Time) int {
	t.Helper()
	entries, err := r.logs.ListByCareDayRange(context.Background(), day, day)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	n := 0
	for _, e := range entries {
		if e.CareItemID == itemID {
			n++
		}
	}
	return n
}

func TestCompleteThenUndoRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newRepos(newTestDB(t))
	now := testNoon(t)
	days := testCalculator(t)
	svc := NewTaskService(r.logs, r.items, r.pets, days)
	svc.SetClock(fixedClock(now))

	_, item := seedPetWithItem(t, r, now.Add(-24*time.Hour))
	today := days.DayFor(now)

	if _, err := svc.Complete(ctx, item.ID, "Alice", "with food"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	done, err := svc.StatusForDay(ctx, item.ID, today)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !done {
		t.Fatal("status should be completed after Complete")
	}

	if _, err := svc.Undo(ctx, item.ID, "Bob", ""); err != nil {
		t.Fatalf("undo: %v", err)
	}
	done, err = svc.StatusForDay(ctx, item.ID, today)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if done {
		t.Fatal("status should be false after Undo")
	}

	if n := countLogsForDay(t, r, item.ID, today); n != 2 {
		t.Errorf("expected exactly 2 log rows, got %d", n)
	}
}

func TestDoubleCompleteRejected(t *testing.T) {
	ctx := context.Background()
	r := newRepos(newTestDB(t))
	now := testNoon(t)
	days := testCalculator(t)
	svc := NewTaskService(r.logs, r.items, r.pets, days)
	svc.SetClock(fixedClock(now))

	_, item := seedPetWithItem(t, r, now.Add(-24*time.Hour))
	today := days.DayFor(now)

	if _, err := svc.Complete(ctx, item.ID, "Alice", ""); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := svc.Complete(ctx, item.ID, "Bob", ""); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second complete: got %v, want ErrAlreadyCompleted", err)
	}
	if n := countLogsForDay(t, r, item.ID, today); n != 1 {
		t.Errorf("rejected complete must append nothing, got %d rows", n)
	}
}

func TestUndoWithoutCompleteRejected(t *testing.T) {
	ctx := context.Background()
	r := newRepos(newTestDB(t))
	now := testNoon(t)
	svc := NewTaskService(r.logs, r.items, r.pets, testCalculator(t))
	svc.SetClock(fixedClock(now))

	_, item := seedPetWithItem(t, r, now.Add(-24*time.Hour))

	if _, err := svc.Undo(ctx, item.ID, "Alice", ""); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("undo: got %v, want ErrNotCompleted", err)
	}
}

func TestCompleteUnknownItem(t *testing.T) {
	ctx := context.Background()
	r := newRepos(newTestDB(t))
	svc := NewTaskService(r.logs, r.items, r.pets, testCalculator(t))

	if _, err := svc.Complete(ctx, 9999, "Alice", ""); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("complete unknown item: got %v, want ErrNotFound", err)
	}
}

func TestTieBreakHigherIDWins(t *testing.T) {
	ctx := context.Background()
	r := newRepos(newTestDB(t))
	now := testNoon(t)
	days := testCalculator(t)
	svc := NewTaskService(r.logs, r.items, r.pets, days)

	_, item := seedPetWithItem(t, r, now.Add(-24*time.Hour))
	today := days.DayFor(now)

	// Two entries sharing one timestamp: the completed row gets the
	// lower id, the undone row the higher. Insertion order must win.
	collide := now.Truncate(time.Second)
	for _, action := range []string{model.ActionCompleted, model.ActionUndone} {
		entry := &model.TaskLog{CareItemID: item.ID, CareDay: today, Action: action, Timestamp: collide}
		if err := r.logs.Append(ctx, entry); err != nil {
			t.Fatalf("append %s: %v", action, err)
		}
	}

	done, err := svc.StatusForDay(ctx, item.ID, today)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if done {
		t.Fatal("higher id must win under a timestamp collision: want not completed")
	}
}

func TestLastCompletionGoneAfterUndo(t *testing.T) {
	ctx := context.Background()
	r := newRepos(newTestDB(t))
	now := testNoon(t)
	days := testCalculator(t)
	svc := NewTaskService(r.logs, r.items, r.pets, days)
	svc.SetClock(fixedClock(now))

	_, item := seedPetWithItem(t, r, now.Add(-24*time.Hour))
	today := days.DayFor(now)

	if _, err := svc.Complete(ctx, item.ID, "Alice", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	last, err := svc.LastCompletionForDay(ctx, item.ID, today)
	if err != nil {
		t.Fatalf("last completion: %v", err)
	}
	if last == nil || last.CompletedBy != "Alice" {
		t.Fatalf("want Alice's completion, got %+v", last)
	}

	// A completed row still exists in history after the undo, but there
	// is no *current* completion anymore.
	svc.SetClock(fixedClock(now.Add(time.Minute)))
	if _, err := svc.Undo(ctx, item.ID, "Bob", ""); err != nil {
		t.Fatalf("undo: %v", err)
	}
	last, err = svc.LastCompletionForDay(ctx, item.ID, today)
	if err != nil {
		t.Fatalf("last completion after undo: %v", err)
	}
	if last != nil {
		t.Errorf("want nil completion after undo, got %+v", last)
	}
}

func TestCareDayFixedAtWriteTime(t *testing.T) {
	ctx := context.Background()
	r := newRepos(newTestDB(t))
	days := testCalculator(t)
	svc := NewTaskService(r.logs, r.items, r.pets, days)

	// 3:30 AM Eastern belongs to the previous care day.
	early := time.Date(2025, 6, 10, 3, 30, 0, 0, days.Location())
	svc.SetClock(fixedClock(early))

	_, item := seedPetWithItem(t, r, early.Add(-48*time.Hour))

	entry, err := svc.Complete(ctx, item.ID, "Alice", "")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	want := careday.Date(2025, 6, 9)
	if !careday.Truncate(entry.CareDay).Equal(want) {
		t.Errorf("care day = %v, want %v", entry.CareDay, want)
	}
}

func TestDailySummaryMetadata(t *testing.T) {
	ctx := context.Background()
	r := newRepos(newTestDB(t))
	now := testNoon(t)
	days := testCalculator(t)
	svc := NewTaskService(r.logs, r.items, r.pets, days)
	svc.SetClock(fixedClock(now))

	pet, item := seedPetWithItem(t, r, now.Add(-24*time.Hour))
	second := model.CareItem{PetID: pet.ID, Name: "Dinner", Category: "food", IsActive: true, CreatedAt: now.Add(-24 * time.Hour)}
	if err := r.items.Create(ctx, &second); err != nil {
		t.Fatalf("create second item: %v", err)
	}

	if _, err := svc.Complete(ctx, item.ID, "Alice", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}

	summary, err := svc.DailySummary(ctx, days.DayFor(now))
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if len(summary) != 1 {
		t.Fatalf("want 1 pet summary, got %d", len(summary))
	}
	tasks := summary[0].Tasks
	if len(tasks) != 2 {
		t.Fatalf("want 2 task statuses, got %d", len(tasks))
	}
	byName := map[string]TaskStatus{}
	for _, task := range tasks {
		byName[task.CareItem.Name] = task
	}
	if got := byName["Denamarin"]; !got.IsCompleted || got.CompletedBy != "Alice" || got.CompletedAt == nil {
		t.Errorf("Denamarin status = %+v, want completed by Alice", got)
	}
	if got := byName["Dinner"]; got.IsCompleted {
		t.Errorf("Dinner should be incomplete, got %+v", got)
	}
}

func TestHistoryNewestFirstWithFilter(t *testing.T) {
	ctx := context.Background()
	r := newRepos(newTestDB(t))
	now := testNoon(t)
	days := testCalculator(t)
	svc := NewTaskService(r.logs, r.items, r.pets, days)

	pet, item := seedPetWithItem(t, r, now.Add(-24*time.Hour))
	other := model.CareItem{PetID: pet.ID, Name: "Dinner", IsActive: true, CreatedAt: now.Add(-24 * time.Hour)}
	if err := r.items.Create(ctx, &other); err != nil {
		t.Fatalf("create item: %v", err)
	}

	svc.SetClock(fixedClock(now))
	if _, err := svc.Complete(ctx, item.ID, "Alice", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	svc.SetClock(fixedClock(now.Add(time.Minute)))
	if _, err := svc.Undo(ctx, item.ID, "Bob", ""); err != nil {
		t.Fatalf("undo: %v", err)
	}
	svc.SetClock(fixedClock(now.Add(2 * time.Minute)))
	if _, err := svc.Complete(ctx, other.ID, "Alice", ""); err != nil {
		t.Fatalf("complete other: %v", err)
	}

	all, err := svc.History(ctx, repository.HistoryFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 entries, got %d", len(all))
	}
	// Newest first: the other item's completion was written last.
	if all[0].CareItemID != other.ID {
		t.Errorf("first entry item = %d, want %d", all[0].CareItemID, other.ID)
	}

	filtered, err := svc.History(ctx, repository.HistoryFilter{CareItemID: item.ID})
	if err != nil {
		t.Fatalf("filtered history: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("want 2 entries for the first item, got %d", len(filtered))
	}
	if filtered[0].Action != model.ActionUndone {
		t.Errorf("newest entry action = %q, want %q", filtered[0].Action, model.ActionUndone)
	}

	limited, err := svc.History(ctx, repository.HistoryFilter{Limit: 1})
	if err != nil {
		t.Fatalf("limited history: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1: got %d entries", len(limited))
	}
}
