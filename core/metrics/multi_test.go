package metrics

import (
	"testing"

	"github.com/vanditkanudia/gridgap/core/metrics/kpi"
)

// TestMultiSink ensures events are forwarded to all sinks.

type recordSink struct {
	count int
}

func (r *recordSink) RecordRunResult([]RunResult) error {
	r.count++
	return nil
}

func (r *recordSink) RecordPolicySummary(PolicySummaryEvent) error {
	r.count++
	return nil
}

func (r *recordSink) RecordTimesliceKPIs([]kpi.Record) error {
	r.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordRunResult(nil); err != nil {
		t.Fatalf("record result: %v", err)
	}
	if err := m.RecordPolicySummary(PolicySummaryEvent{}); err != nil {
		t.Fatalf("record summary: %v", err)
	}
	if err := m.RecordTimesliceKPIs(nil); err != nil {
		t.Fatalf("record kpis: %v", err)
	}
	if s1.count != 3 || s2.count != 3 {
		t.Fatalf("results not forwarded")
	}
}

func TestMultiSinkSkipsUnsupported(t *testing.T) {
	s := &recordSink{}
	m := NewMultiSink(s, NopSink{})
	// NopSink supports everything; a bare MetricsSink would simply be skipped
	if err := m.RecordGroupFailure(GroupFailureEvent{Group: "NORDIC"}); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if s.count != 0 {
		t.Fatalf("recordSink does not implement GroupFailureRecorder, count=%d", s.count)
	}
}
