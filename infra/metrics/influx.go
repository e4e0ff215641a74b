package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/vanditkanudia/gridgap/core/metrics"
	"github.com/vanditkanudia/gridgap/core/metrics/kpi"
	"github.com/vanditkanudia/gridgap/infra/logger"
)

// InfluxSink writes run results to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRunResult writes one gap_metrics point per group plus one
// dispatch_stress_hour point per recorded stress hour.
func (s *InfluxSink) RecordRunResult(res []coremetrics.RunResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range res {
		p := write.NewPointWithMeasurement("gap_metrics").
			AddTag("run_id", r.RunID).
			AddTag("group", r.Group).
			AddField("planned_dispatchable_mw", round3(r.Gap.PlannedDispatchableMW)).
			AddField("peak_dispatchable_need_mw", round3(r.Gap.PeakDispatchableNeedMW)).
			AddField("dispatchable_shortfall_mw", round3(r.Gap.DispatchableShortfallMW)).
			AddField("dispatchable_shortfall_pct", round3(r.Gap.DispatchableShortfallPct)).
			AddField("required_storage_energy_mwh", round3(r.Gap.RequiredStorageEnergyMWh)).
			AddField("required_storage_power_mw", round3(r.Gap.RequiredStoragePowerMW)).
			AddField("max_ramp_as_planned_mw", round3(r.Gap.MaxRampAsPlannedMW)).
			AddField("max_ramp_realistic_mw", round3(r.Gap.MaxRampRealisticMW)).
			AddField("surplus_fraction", round3(r.Gap.SurplusFraction)).
			AddField("curtailed_mwh", round3(r.Gap.CurtailedMWh)).
			AddField("unmet_mwh", round3(r.Gap.UnmetMWh)).
			AddField("unmet_hours", r.Gap.UnmetHours).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
		for _, h := range r.Gap.StressHours {
			sp := write.NewPointWithMeasurement("dispatch_stress_hour").
				AddTag("run_id", r.RunID).
				AddTag("group", r.Group).
				AddField("hour", h).
				SetTime(r.Time)
			if err := s.writeAPI.WritePoint(ctx, sp); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordPolicySummary writes the per-policy year summary.
func (s *InfluxSink) RecordPolicySummary(ev coremetrics.PolicySummaryEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("policy_summary").
		AddTag("run_id", ev.RunID).
		AddTag("group", ev.Group).
		AddTag("policy", ev.Policy.String()).
		AddField("hours", ev.Hours).
		AddField("unmet_mwh", round3(ev.UnmetMWh)).
		AddField("curtailed_mwh", round3(ev.CurtailedMWh)).
		AddField("duration_ms", round3(float64(ev.Duration.Milliseconds()))).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordGroupFailure writes an aborted group run.
func (s *InfluxSink) RecordGroupFailure(ev coremetrics.GroupFailureEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("group_failure").
		AddTag("run_id", ev.RunID).
		AddTag("group", ev.Group).
		AddTag("kind", ev.Kind).
		AddField("error", ev.Error).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTimesliceKPIs writes one timeslice_kpi point per record.
func (s *InfluxSink) RecordTimesliceKPIs(recs []kpi.Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for _, r := range recs {
		p := write.NewPointWithMeasurement("timeslice_kpi").
			AddTag("group", r.Group).
			AddTag("timeslice", r.Timeslice).
			AddField("hours", r.Hours).
			AddField("unmet_mwh", round3(r.UnmetMWh)).
			AddField("curtailed_mwh", round3(r.CurtailedMWh)).
			AddField("stress_hours", r.StressHours).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
