package metrics

import (
	"time"

	"github.com/vanditkanudia/gridgap/core/metrics/kpi"
	"github.com/vanditkanudia/gridgap/core/model"
)

// RunResult represents one finished group analysis to be recorded.
type RunResult struct {
	RunID string
	Group string
	Year  int
	Gap   model.GapMetrics
	Time  time.Time
}

// MetricsSink records run results for observability purposes.
type MetricsSink interface {
	RecordRunResult(results []RunResult) error
}

// PolicySummaryEvent captures one simulated policy year for a group.
type PolicySummaryEvent struct {
	RunID        string
	Group        string
	Policy       model.Policy
	Hours        int
	UnmetMWh     float64
	CurtailedMWh float64
	Duration     time.Duration
	Time         time.Time
}

// PolicySummaryRecorder records per-policy simulation summaries.
type PolicySummaryRecorder interface {
	RecordPolicySummary(ev PolicySummaryEvent) error
}

// GroupFailureEvent reports a group aborted by a hard error.
type GroupFailureEvent struct {
	RunID string
	Group string
	Kind  string
	Error string
	Time  time.Time
}

// GroupFailureRecorder records aborted group runs.
type GroupFailureRecorder interface {
	RecordGroupFailure(ev GroupFailureEvent) error
}

// TimesliceKPIRecorder records per-timeslice reliability KPIs.
type TimesliceKPIRecorder interface {
	RecordTimesliceKPIs(recs []kpi.Record) error
}

// RunDurationRecorder records wall-clock durations of whole group runs.
type RunDurationRecorder interface {
	RecordRunDuration(group string, d time.Duration) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRunResult([]RunResult) error { return nil }

func (NopSink) RecordPolicySummary(PolicySummaryEvent) error  { return nil }
func (NopSink) RecordGroupFailure(GroupFailureEvent) error    { return nil }
func (NopSink) RecordTimesliceKPIs([]kpi.Record) error        { return nil }
func (NopSink) RecordRunDuration(string, time.Duration) error { return nil }
