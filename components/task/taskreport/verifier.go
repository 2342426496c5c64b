package taskreport

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/open-control-systems/task-hub/components/status"
	"github.com/open-control-systems/task-hub/components/task/taskcore"
)

var recordPattern = regexp.MustCompile(`^\[([^\]]+)\] (?:iteration (\d+)|done)$`)

type taskState struct {
	iterations int
	progress   int
	done       bool
}

// Verify checks captured run output against the configured task set.
//
// The check mirrors what external automation expects from a run:
//   - per task, the number of progress records equals the configured
//     iteration count, with strictly sequential 1-based indices;
//   - per task, exactly one completion record, after the last progress record;
//   - the success marker appears exactly once, after every completion record;
//   - no records from unknown tasks, no unrecognized lines.
//
// No ordering is required between records of different tasks.
func Verify(r io.Reader, specs []taskcore.Spec) error {
	tasks := make(map[string]*taskState, len(specs))

	for _, spec := range specs {
		if _, ok := tasks[spec.Name]; ok {
			return fmt.Errorf("verify: duplicate task: task=%s: %w",
				spec.Name, status.StatusInvalidState)
		}

		tasks[spec.Name] = &taskState{iterations: spec.Iterations}
	}

	markerSeen := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if line == taskcore.SuccessMarker {
			if markerSeen {
				return fmt.Errorf("verify: duplicate success marker: %w", status.StatusError)
			}

			for name, task := range tasks {
				if !task.done {
					return fmt.Errorf("verify: premature success marker: task=%s not done: %w",
						name, status.StatusError)
				}
			}

			markerSeen = true

			continue
		}

		if markerSeen {
			return fmt.Errorf("verify: record after success marker: %q: %w",
				line, status.StatusError)
		}

		if err := handleRecord(tasks, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("verify: failed to read output: %v: %w", err, status.StatusError)
	}

	if !markerSeen {
		return fmt.Errorf("verify: missing success marker: want=%q: %w",
			taskcore.SuccessMarker, status.StatusNoData)
	}

	return nil
}

func handleRecord(tasks map[string]*taskState, line string) error {
	groups := recordPattern.FindStringSubmatch(line)
	if groups == nil {
		return fmt.Errorf("verify: unrecognized record: %q: %w", line, status.StatusError)
	}

	name := groups[1]

	task, ok := tasks[name]
	if !ok {
		return fmt.Errorf("verify: record from unknown task: task=%s: %w",
			name, status.StatusError)
	}

	if task.done {
		return fmt.Errorf("verify: record after completion: task=%s: %w",
			name, status.StatusError)
	}

	if groups[2] == "" {
		if task.progress != task.iterations {
			return fmt.Errorf(
				"verify: premature completion: task=%s progress=%d iterations=%d: %w",
				name, task.progress, task.iterations, status.StatusError)
		}

		task.done = true

		return nil
	}

	iteration, err := strconv.Atoi(groups[2])
	if err != nil {
		return fmt.Errorf("verify: invalid iteration index: %q: %w", line, status.StatusError)
	}

	if iteration != task.progress+1 {
		return fmt.Errorf("verify: out of order progress record: task=%s want=%d got=%d: %w",
			name, task.progress+1, iteration, status.StatusError)
	}

	if iteration > task.iterations {
		return fmt.Errorf("verify: excess progress record: task=%s iterations=%d got=%d: %w",
			name, task.iterations, iteration, status.StatusError)
	}

	task.progress = iteration

	return nil
}
