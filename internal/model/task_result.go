package model

import (
	"time"
)

const (
	// StatusSuccess marks a task whose actions all completed.
	StatusSuccess = "success"
	// StatusFailed marks a task whose action returned an error.
	StatusFailed = "failed"
	// StatusSkipped indicates the task did not run because a dependency failed.
	StatusSkipped = "skipped"
	// StatusPlanned indicates a dry-run task whose actions were only planned.
	StatusPlanned = "planned"
)

// TaskResult captures the outcome of executing a single task.
type TaskResult struct {
	Task      string
	Status    string
	Message   string
	Error     error
	Duration  time.Duration
	Timestamp time.Time
}

// Failed reports whether the task failed or was skipped because of a failure.
func (r TaskResult) Failed() bool {
	return r.Status == StatusFailed || r.Status == StatusSkipped
}
