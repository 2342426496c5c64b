package taskrun

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/task-hub/components/status"
	"github.com/open-control-systems/task-hub/components/system/syscore"
	"github.com/open-control-systems/task-hub/components/task/taskcore"
	"github.com/open-control-systems/task-hub/components/task/taskreport"
)

func TestRunnerReportStatusAfterAllTasks(t *testing.T) {
	buf := &bytes.Buffer{}

	specs := []taskcore.Spec{
		{Name: "TASK_A", Period: time.Millisecond, Iterations: 5},
		{Name: "TASK_B", Period: time.Millisecond * 2, Iterations: 5},
	}

	runner, err := NewRunner(
		context.Background(),
		specs,
		taskcore.NewSpinWorkload(100),
		taskcore.NewLineWriter(buf),
		&syscore.LocalMonotonicClock{},
	)
	require.Nil(t, err)

	report, err := runner.Run()
	require.Nil(t, err)
	require.NotEmpty(t, report.ID)
	require.Equal(t, 2, len(report.Results))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	progressCount := map[string]int{}
	completionCount := map[string]int{}
	markerCount := 0

	for _, line := range lines {
		switch {
		case line == taskcore.SuccessMarker:
			markerCount++

		case strings.HasSuffix(line, "] done"):
			completionCount[line]++

		default:
			name := strings.TrimPrefix(strings.SplitN(line, "]", 2)[0], "[")
			progressCount[name]++
		}
	}

	require.Equal(t, 5, progressCount["TASK_A"])
	require.Equal(t, 5, progressCount["TASK_B"])
	require.Equal(t, 1, completionCount["[TASK_A] done"])
	require.Equal(t, 1, completionCount["[TASK_B] done"])
	require.Equal(t, 1, markerCount)

	// The terminal status record is the last record of the run.
	require.Equal(t, taskcore.SuccessMarker, lines[len(lines)-1])

	// The emitted output satisfies the external collaborator's check.
	require.Nil(t, taskreport.Verify(bytes.NewReader(buf.Bytes()), specs))
}

func TestRunnerConcurrentExecution(t *testing.T) {
	buf := &bytes.Buffer{}

	// Each task spends 4 x 30ms in period waits, a sequential run would need
	// at least 240ms.
	specs := []taskcore.Spec{
		{Name: "TASK_A", Period: time.Millisecond * 30, Iterations: 5},
		{Name: "TASK_B", Period: time.Millisecond * 30, Iterations: 5},
	}

	runner, err := NewRunner(
		context.Background(),
		specs,
		taskcore.NewSpinWorkload(100),
		taskcore.NewLineWriter(buf),
		&syscore.LocalMonotonicClock{},
	)
	require.Nil(t, err)

	started := time.Now()

	_, err = runner.Run()
	require.Nil(t, err)

	elapsed := time.Since(started)
	require.True(t, elapsed >= time.Millisecond*120)
	require.True(t, elapsed < time.Millisecond*220)
}

func TestRunnerInvalidSpec(t *testing.T) {
	specs := []taskcore.Spec{
		{Name: "TASK_A", Period: time.Millisecond, Iterations: 5},
		{Name: "TASK_B", Period: time.Millisecond, Iterations: -1},
	}

	runner, err := NewRunner(
		context.Background(),
		specs,
		taskcore.NewSpinWorkload(100),
		taskcore.NewLineWriter(&bytes.Buffer{}),
		&syscore.LocalMonotonicClock{},
	)
	require.Nil(t, runner)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, status.StatusInvalidState))
}

func TestRunnerInterrupted(t *testing.T) {
	buf := &bytes.Buffer{}

	ctx, cancelFunc := context.WithCancel(context.Background())

	specs := []taskcore.Spec{
		{Name: "TASK_A", Period: time.Minute, Iterations: 2},
		{Name: "TASK_B", Period: time.Minute, Iterations: 2},
	}

	runner, err := NewRunner(
		ctx,
		specs,
		taskcore.NewSpinWorkload(100),
		taskcore.NewLineWriter(buf),
		&syscore.LocalMonotonicClock{},
	)
	require.Nil(t, err)

	cancelFunc()

	_, err = runner.Run()
	require.NotNil(t, err)
	require.True(t, errors.Is(err, context.Canceled))

	require.False(t, strings.Contains(buf.String(), taskcore.SuccessMarker))
}

type testRunnerFailWriter struct {
	err error
}

func (w *testRunnerFailWriter) WriteRecord(_ string) error {
	return w.err
}

func TestRunnerWriteFailure(t *testing.T) {
	specs := []taskcore.Spec{
		{Name: "TASK_A", Period: 0, Iterations: 2},
	}

	runner, err := NewRunner(
		context.Background(),
		specs,
		taskcore.NewSpinWorkload(100),
		&testRunnerFailWriter{err: errors.New("broken pipe")},
		&syscore.LocalMonotonicClock{},
	)
	require.Nil(t, err)

	_, err = runner.Run()
	require.NotNil(t, err)
	require.True(t, errors.Is(err, status.StatusError))
}
