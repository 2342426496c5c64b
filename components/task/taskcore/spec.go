package taskcore

import (
	"fmt"
	"time"

	"github.com/open-control-systems/task-hub/components/status"
)

// Spec is an immutable set of parameters for a single periodic task.
type Spec struct {
	// Name labels every record the task emits.
	Name string

	// Period is the delay between the end of one iteration and the start of the next.
	Period time.Duration

	// Iterations is the total number of iterations the task performs.
	//
	// Remarks:
	//   - A task with zero iterations emits no progress records and completes immediately.
	Iterations int
}

// Validate verifies that the task can be executed.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("task-spec: missing task name: %w", status.StatusInvalidState)
	}

	if s.Period < 0 {
		return fmt.Errorf("task-spec: invalid period: task=%s period=%v: %w",
			s.Name, s.Period, status.StatusInvalidState)
	}

	if s.Iterations < 0 {
		return fmt.Errorf("task-spec: invalid iteration count: task=%s iterations=%d: %w",
			s.Name, s.Iterations, status.StatusInvalidState)
	}

	return nil
}

// ReferenceSpecs returns the default task set: two tasks with different rates
// and an equal number of iterations.
func ReferenceSpecs() []Spec {
	return []Spec{
		{Name: "TASK_A", Period: time.Millisecond * 10, Iterations: 5},
		{Name: "TASK_B", Period: time.Millisecond * 16, Iterations: 5},
	}
}
