package taskcore

import "sync/atomic"

// Workload is a single iteration of simulated work.
type Workload interface {
	// Perform runs the workload to completion.
	Perform()
}

// DefaultSpinCount is the default number of rounds for SpinWorkload,
// a sub-millisecond amount of work on current hardware.
const DefaultSpinCount = 100000

// spinSink accumulates workload results so the spin loop can't be optimized away.
var spinSink atomic.Uint64

// SpinWorkload emulates a bounded amount of CPU-bound work.
//
// Remarks:
//   - Perform has no observable side effect beyond consuming time.
//   - Safe for concurrent use by multiple workers.
type SpinWorkload struct {
	spins int
}

// NewSpinWorkload is an initialization of SpinWorkload.
//
// Parameters:
//   - spins - number of rounds per iteration, negative values are treated as zero.
func NewSpinWorkload(spins int) *SpinWorkload {
	if spins < 0 {
		spins = 0
	}

	return &SpinWorkload{spins: spins}
}

// Perform spins for the configured number of rounds.
func (w *SpinWorkload) Perform() {
	var acc uint64

	for k := 0; k < w.spins; k++ {
		acc += uint64(k)
	}

	spinSink.Add(acc)
}
