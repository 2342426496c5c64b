package stcore

import (
	"encoding/json"

	"go.etcd.io/bbolt"

	"github.com/open-control-systems/task-hub/components/status"
	"github.com/open-control-systems/task-hub/components/task/taskcore"
)

const reportBucket = "run_reports"

// BoltStore persists run reports in a bbolt database file.
//
// References:
//   - https://github.com/etcd-io/bbolt
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore is an initialization of BoltStore.
//
// Parameters:
//   - dbPath - database file path, if it doesn't exist then it will be created automatically.
func NewBoltStore(dbPath string, opts *bbolt.Options) (*BoltStore, error) {
	db, err := bbolt.Open(dbPath, 0600, opts)
	if err != nil {
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Save persists the report, keyed by the run ID.
func (s *BoltStore) Save(report taskcore.Report) error {
	buf, err := json.Marshal(report)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(reportBucket))
		if err != nil {
			return err
		}

		return bucket.Put([]byte(report.ID), buf)
	})
}

// Load reads a previously persisted report by run ID.
func (s *BoltStore) Load(id string) (taskcore.Report, error) {
	report := taskcore.Report{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(reportBucket))
		if bucket == nil {
			return status.StatusNoData
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return status.StatusNoData
		}

		return json.Unmarshal(data, &report)
	})
	if err != nil {
		return taskcore.Report{}, err
	}

	return report, nil
}

// ForEach iterates over all persisted reports.
func (s *BoltStore) ForEach(fn func(report taskcore.Report) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(reportBucket))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(_, v []byte) error {
			report := taskcore.Report{}
			if err := json.Unmarshal(v, &report); err != nil {
				return err
			}

			return fn(report)
		})
	})
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
