package service

import "errors"

// Conflict errors for the completion log. Both surface to the caller
// with no state change and no retry.
var (
	// ErrAlreadyCompleted rejects a second completion of a task that
	// already resolves to completed for the current care day.
	ErrAlreadyCompleted = errors.New("task already completed for today")

	// ErrNotCompleted rejects an undo of a task that does not
	// currently resolve to completed.
	ErrNotCompleted = errors.New("task is not completed")
)
