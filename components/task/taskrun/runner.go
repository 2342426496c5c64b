package taskrun

import (
	"context"
	"fmt"

	"github.com/open-control-systems/task-hub/components/status"
	"github.com/open-control-systems/task-hub/components/system/syscore"
	"github.com/open-control-systems/task-hub/components/task/taskcore"
)

// Runner owns the task set: it launches one worker per task, waits for all of
// them to reach their terminal state and only then reports the run status.
type Runner struct {
	writer  taskcore.RecordWriter
	workers []*Worker
}

// NewRunner validates the task set and prepares one worker per task.
//
// Remarks:
//   - A validation failure means no worker is launched at all.
func NewRunner(
	ctx context.Context,
	specs []taskcore.Spec,
	workload taskcore.Workload,
	writer taskcore.RecordWriter,
	clock syscore.MonotonicClock,
) (*Runner, error) {
	workers := make([]*Worker, 0, len(specs))

	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}

		workers = append(workers, NewWorker(ctx, spec, workload, writer, clock))
	}

	return &Runner{
		writer:  writer,
		workers: workers,
	}, nil
}

// Run executes all tasks concurrently to completion.
//
// Remarks:
//   - Every launched worker is joined, even if a sibling worker failed.
//   - The success marker is emitted exactly once, and only after every worker
//     completed.
func (r *Runner) Run() (taskcore.Report, error) {
	for _, worker := range r.workers {
		worker.Start()
	}

	var firstErr error

	for _, worker := range r.workers {
		if err := worker.Wait(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return taskcore.Report{}, firstErr
	}

	results := make([]taskcore.Result, 0, len(r.workers))
	for _, worker := range r.workers {
		results = append(results, worker.Result())
	}

	if err := r.writer.WriteRecord(taskcore.SuccessMarker); err != nil {
		return taskcore.Report{}, fmt.Errorf("runner: failed to write status record: %v: %w",
			err, status.StatusError)
	}

	return taskcore.NewReport(results), nil
}
