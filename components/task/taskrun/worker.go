package taskrun

import (
	"context"
	"fmt"
	"time"

	"github.com/open-control-systems/task-hub/components/status"
	"github.com/open-control-systems/task-hub/components/system/syscore"
	"github.com/open-control-systems/task-hub/components/task/taskcore"
)

// Worker runs a single task to completion in a standalone goroutine.
type Worker struct {
	ctx      context.Context
	spec     taskcore.Spec
	workload taskcore.Workload
	writer   taskcore.RecordWriter
	clock    syscore.MonotonicClock

	doneCh chan struct{}
	result taskcore.Result
	err    error
}

// NewWorker is an initialization of Worker.
//
// Parameters:
//   - ctx - parent context, cancellation interrupts the period wait.
//   - spec - task parameters, owned by the worker, never mutated.
//   - workload - simulated work performed on each iteration.
//   - writer - destination for progress and completion records.
//   - clock - monotonic clock to measure the task running time.
func NewWorker(
	ctx context.Context,
	spec taskcore.Spec,
	workload taskcore.Workload,
	writer taskcore.RecordWriter,
	clock syscore.MonotonicClock,
) *Worker {
	return &Worker{
		ctx:      ctx,
		spec:     spec,
		workload: workload,
		writer:   writer,
		clock:    clock,
		doneCh:   make(chan struct{}),
	}
}

// Start begins asynchronous task processing.
//
// Remarks:
//   - Doesn't block waiting for the task to make progress.
func (w *Worker) Start() {
	go w.run()
}

// Wait blocks until the task reaches its terminal state.
func (w *Worker) Wait() error {
	<-w.doneCh

	return w.err
}

// Result returns the terminal state of the task.
//
// Remarks:
//   - Valid only after Wait() returned nil.
func (w *Worker) Result() taskcore.Result {
	return w.result
}

func (w *Worker) run() {
	defer close(w.doneCh)

	started := w.clock.Now()

	for n := 1; n <= w.spec.Iterations; n++ {
		w.workload.Perform()

		if err := w.writer.WriteRecord(taskcore.FormatProgress(w.spec.Name, n)); err != nil {
			w.err = fmt.Errorf("worker: failed to write progress record: task=%s: %v: %w",
				w.spec.Name, err, status.StatusError)

			return
		}

		// No suspension after the final iteration.
		if n == w.spec.Iterations {
			break
		}

		if err := w.wait(); err != nil {
			w.err = err

			return
		}
	}

	if err := w.writer.WriteRecord(taskcore.FormatCompletion(w.spec.Name)); err != nil {
		w.err = fmt.Errorf("worker: failed to write completion record: task=%s: %v: %w",
			w.spec.Name, err, status.StatusError)

		return
	}

	w.result = taskcore.Result{
		Task:       w.spec.Name,
		Iterations: w.spec.Iterations,
		Elapsed:    w.clock.Now().Sub(started),
	}
}

func (w *Worker) wait() error {
	if w.spec.Period == 0 {
		return nil
	}

	timer := time.NewTimer(w.spec.Period)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil

	case <-w.ctx.Done():
		return fmt.Errorf("worker: period wait interrupted: task=%s: %w",
			w.spec.Name, w.ctx.Err())
	}
}
