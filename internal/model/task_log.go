package model

import "time"

// Actions recorded in the task log.
const (
	ActionCompleted = "completed"
	ActionUndone    = "undone"
)

// TaskLog is one immutable entry in the append-only completion log.
// There is no stored "is done" flag anywhere: current status is always
// derived by replaying entries for a (care item, care day) pair, newest
// (timestamp, id) first. CareDay is fixed at insert time and never
// recomputed, even if the day-reset rule changes later.
type TaskLog struct {
	ID          uint      `gorm:"primaryKey"`
	CareItemID  uint      `gorm:"index:idx_task_logs_item_day;not null"`
	CareDay     time.Time `gorm:"index:idx_task_logs_item_day;not null"`
	Action      string    `gorm:"size:20;not null"`
	CompletedBy string    `gorm:"size:100"`
	Timestamp   time.Time
	Notes       string

	CareItem *CareItem `gorm:"foreignKey:CareItemID"`
}

// Completed reports whether this entry records a completion.
func (l TaskLog) Completed() bool {
	return l.Action == ActionCompleted
}
