package metrics

import (
	"context"
	"time"

	"github.com/vanditkanudia/gridgap/core/events"
	coremetrics "github.com/vanditkanudia/gridgap/core/metrics"
	"github.com/vanditkanudia/gridgap/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.GroupCompleted:
					_ = sink.RecordRunResult([]coremetrics.RunResult{{
						RunID: e.RunID,
						Group: e.Group,
						Year:  e.Year,
						Gap:   e.Gap,
						Time:  e.Time,
					}})
					if r, ok := sink.(coremetrics.RunDurationRecorder); ok {
						_ = r.RecordRunDuration(e.Group, e.Duration)
					}
				case events.PolicyCompleted:
					if r, ok := sink.(coremetrics.PolicySummaryRecorder); ok {
						_ = r.RecordPolicySummary(coremetrics.PolicySummaryEvent{
							RunID:        e.RunID,
							Group:        e.Group,
							Policy:       e.Policy,
							Hours:        e.Hours,
							UnmetMWh:     e.UnmetMWh,
							CurtailedMWh: e.CurtailedMWh,
							Duration:     e.Duration,
							Time:         time.Now(),
						})
					}
				case events.GroupFailed:
					if r, ok := sink.(coremetrics.GroupFailureRecorder); ok {
						errStr := ""
						if e.Err != nil {
							errStr = e.Err.Error()
						}
						_ = r.RecordGroupFailure(coremetrics.GroupFailureEvent{
							RunID: e.RunID,
							Group: e.Group,
							Kind:  e.Kind,
							Error: errStr,
							Time:  time.Now(),
						})
					}
				}
			}
		}
	}()
}
