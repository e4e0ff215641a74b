package metrics

import (
	"time"

	"github.com/vanditkanudia/gridgap/core/metrics/kpi"
)

// MultiSink fans out run results to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRunResult forwards the results to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRunResult(res []RunResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordRunResult(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordPolicySummary forwards policy summaries when supported by the sink.
func (m *MultiSink) RecordPolicySummary(ev PolicySummaryEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PolicySummaryRecorder); ok {
			if err := rec.RecordPolicySummary(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordGroupFailure forwards failure events when supported by the sink.
func (m *MultiSink) RecordGroupFailure(ev GroupFailureEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(GroupFailureRecorder); ok {
			if err := rec.RecordGroupFailure(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordTimesliceKPIs forwards KPI records when supported by the sink.
func (m *MultiSink) RecordTimesliceKPIs(recs []kpi.Record) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(TimesliceKPIRecorder); ok {
			if err := rec.RecordTimesliceKPIs(recs); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRunDuration forwards run durations when supported by the sink.
func (m *MultiSink) RecordRunDuration(group string, d time.Duration) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RunDurationRecorder); ok {
			if err := rec.RecordRunDuration(group, d); err != nil {
				return err
			}
		}
	}
	return nil
}
