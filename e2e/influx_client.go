package e2e

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// InfluxReader is a small helper around the official InfluxDB v2 client used
// by the E2E tests. The pipeline under test writes through its own sink; the
// tests read back through Flux queries and assert on what landed.
type InfluxReader struct {
	client influxdb2.Client
	query  api.QueryAPI
	bucket string
}

// NewInfluxReader creates a reader for the given endpoint. Org, bucket and
// token must already exist; the container bootstrap provisions them.
func NewInfluxReader(url, org, bucket, token string) *InfluxReader {
	c := influxdb2.NewClient(url, token)
	return &InfluxReader{client: c, query: c.QueryAPI(org), bucket: bucket}
}

// GapRow is one gap_metrics point read back from the bucket.
type GapRow struct {
	Group       string
	ShortfallMW float64
}

// GapRows returns the dispatchable-shortfall points recorded for the run.
func (r *InfluxReader) GapRows(ctx context.Context, runID string) ([]GapRow, error) {
	flux := fmt.Sprintf(`from(bucket:%q)
	|> range(start: -1h)
	|> filter(fn: (r) => r._measurement == "gap_metrics" and r._field == "dispatchable_shortfall_mw" and r.run_id == %q)`,
		r.bucket, runID)
	res, err := r.query.Query(ctx, flux)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	var rows []GapRow
	for res.Next() {
		rec := res.Record()
		var row GapRow
		if g, ok := rec.ValueByKey("group").(string); ok {
			row.Group = g
		}
		if v, ok := rec.Value().(float64); ok {
			row.ShortfallMW = v
		}
		rows = append(rows, row)
	}
	return rows, res.Err()
}

// PolicyRows counts the policy_summary points recorded for the run. Two per
// group are expected, one per policy.
func (r *InfluxReader) PolicyRows(ctx context.Context, runID string) (int, error) {
	flux := fmt.Sprintf(`from(bucket:%q)
	|> range(start: -1h)
	|> filter(fn: (r) => r._measurement == "policy_summary" and r._field == "hours" and r.run_id == %q)`,
		r.bucket, runID)
	res, err := r.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	count := 0
	for res.Next() {
		count++
	}
	return count, res.Err()
}

// Close releases the underlying client resources.
func (r *InfluxReader) Close() { r.client.Close() }
