package stinfluxdb

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/open-control-systems/task-hub/components/core"
	"github.com/open-control-systems/task-hub/components/task/taskcore"
)

// DBParams provides various configuration options for influxDB.
type DBParams struct {
	URL    string
	Org    string
	Token  string
	Bucket string
}

// ResultHandler stores task run results in influxDB.
//
// References:
//   - https://docs.influxdata.com/influxdb/cloud/api-guide/client-libraries/go/
type ResultHandler struct {
	ctx         context.Context
	dbClient    influxdb2.Client
	writeClient api.WriteAPIBlocking
}

// NewResultHandler initializes influxDB handler.
//
// Parameters:
//   - ctx - parent context.
//   - closer - to register the handler for the underlying resource deallocation.
//   - params - various influxDB configuration parameters.
func NewResultHandler(
	ctx context.Context,
	closer *core.FanoutCloser,
	params DBParams,
) *ResultHandler {
	dbClient := influxdb2.NewClient(params.URL, params.Token)
	writeClient := dbClient.WriteAPIBlocking(params.Org, params.Bucket)

	handler := &ResultHandler{
		ctx:         ctx,
		dbClient:    dbClient,
		writeClient: writeClient,
	}

	closer.Add("influxdb-result-handler", handler)

	return handler
}

// HandleReport stores one point per task result.
func (h *ResultHandler) HandleReport(report taskcore.Report) error {
	for _, result := range report.Results {
		point := influxdb2.NewPoint("task_result",
			map[string]string{
				"task":   result.Task,
				"run_id": report.ID,
			},
			map[string]interface{}{
				"iterations": result.Iterations,
				"elapsed_ms": float64(result.Elapsed) / float64(time.Millisecond),
			},
			report.CompletedAt)

		if err := h.writeClient.WritePoint(h.ctx, point); err != nil {
			return fmt.Errorf("influxdb-result-handler: failed to write to DB: %w", err)
		}
	}

	return nil
}

// Close stops writing data to the DB.
func (h *ResultHandler) Close() error {
	h.dbClient.Close()

	return nil
}
