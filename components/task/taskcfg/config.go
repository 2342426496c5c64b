package taskcfg

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/open-control-systems/task-hub/components/status"
	"github.com/open-control-systems/task-hub/components/task/taskcore"
)

// Config describes the task set for a single run.
type Config struct {
	Tasks []TaskConfig `toml:"task"`
}

// TaskConfig describes a single periodic task.
type TaskConfig struct {
	Name       string `toml:"name"`
	PeriodMs   int    `toml:"period_ms"`
	Iterations int    `toml:"iterations"`
}

// LoadSpecs reads the task set from a TOML file.
//
// Remarks:
//   - Unknown keys in the file are treated as an error.
//   - Every loaded task is validated, see taskcore.Spec.
func LoadSpecs(path string) ([]taskcore.Spec, error) {
	var config Config

	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("task-config: failed to decode %s: %v: %w",
			path, err, status.StatusError)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("task-config: unknown keys in %s: %v: %w",
			path, undecoded, status.StatusInvalidState)
	}

	if len(config.Tasks) == 0 {
		return nil, fmt.Errorf("task-config: no tasks in %s: %w", path, status.StatusNoData)
	}

	specs := make([]taskcore.Spec, 0, len(config.Tasks))

	for _, task := range config.Tasks {
		spec := taskcore.Spec{
			Name:       task.Name,
			Period:     time.Duration(task.PeriodMs) * time.Millisecond,
			Iterations: task.Iterations,
		}

		if err := spec.Validate(); err != nil {
			return nil, err
		}

		specs = append(specs, spec)
	}

	return specs, nil
}
