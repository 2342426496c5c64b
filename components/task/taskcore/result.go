package taskcore

import (
	"time"

	"github.com/google/uuid"
)

// Result is the terminal state of a single task.
type Result struct {
	// Task is the name of the task.
	Task string `json:"task"`

	// Iterations is the number of iterations the task performed.
	Iterations int `json:"iterations"`

	// Elapsed is the total wall-clock time the task was running.
	Elapsed time.Duration `json:"elapsed"`
}

// Report aggregates the results of a single run.
type Report struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// CompletedAt is the UTC time at which the last task completed.
	CompletedAt time.Time `json:"completed_at"`

	// Results holds one entry per configured task.
	Results []Result `json:"results"`
}

// NewReport initializes a report with a unique run ID.
func NewReport(results []Result) Report {
	return Report{
		ID:          uuid.NewString(),
		CompletedAt: time.Now().UTC(),
		Results:     results,
	}
}
