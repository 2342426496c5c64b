package stcore

import (
	"github.com/open-control-systems/task-hub/components/status"
	"github.com/open-control-systems/task-hub/components/task/taskcore"
)

// NoopStore is a non-operational report store.
type NoopStore struct{}

// Save is non-operational.
func (*NoopStore) Save(_ taskcore.Report) error {
	return nil
}

// Load is non-operational.
func (*NoopStore) Load(_ string) (taskcore.Report, error) {
	return taskcore.Report{}, status.StatusNoData
}

// ForEach is non-operational.
func (*NoopStore) ForEach(_ func(report taskcore.Report) error) error {
	return nil
}

// Close is non-operational.
func (*NoopStore) Close() error {
	return nil
}
