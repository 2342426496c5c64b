package stcore

import "github.com/open-control-systems/task-hub/components/task/taskcore"

// ReportStore persists run reports.
//
// Remarks:
//   - Implementation should be thread-safe.
type ReportStore interface {
	// Save persists the report.
	Save(report taskcore.Report) error

	// Load reads a previously persisted report.
	//
	// Remarks:
	//  - Implementation should return status.StatusNoData if the report doesn't exist.
	Load(id string) (taskcore.Report, error)

	// ForEach iterates over all persisted reports.
	ForEach(fn func(report taskcore.Report) error) error

	// Close releases all resources for the store.
	Close() error
}
