package metrics

import (
	"time"

	coremetrics "github.com/vanditkanudia/gridgap/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records gap metrics in Prometheus collectors.
type PromSink struct {
	shortfall     *prometheus.GaugeVec
	peakNeed      *prometheus.GaugeVec
	storageEnergy *prometheus.GaugeVec
	storagePower  *prometheus.GaugeVec
	unmetEnergy   *prometheus.GaugeVec
	maxRamp       *prometheus.GaugeVec
	runDuration   *prometheus.HistogramVec
	failures      *prometheus.CounterVec
}

// NewPromSink registers gap metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.shortfall, err = registerGauge(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gap_dispatchable_shortfall_mw",
		Help: "Dispatchable capacity missing at the realistic peak need",
	}, []string{"group"})); err != nil {
		return nil, err
	}
	if s.peakNeed, err = registerGauge(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gap_peak_dispatchable_need_mw",
		Help: "Highest hourly dispatchable plus unmet power",
	}, []string{"group"})); err != nil {
		return nil, err
	}
	if s.storageEnergy, err = registerGauge(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gap_required_storage_energy_mwh",
		Help: "Energy that would have bridged the worst deficit episode",
	}, []string{"group"})); err != nil {
		return nil, err
	}
	if s.storagePower, err = registerGauge(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gap_required_storage_power_mw",
		Help: "Highest hourly discharge plus unmet power",
	}, []string{"group"})); err != nil {
		return nil, err
	}
	if s.unmetEnergy, err = registerGauge(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gap_unmet_demand_mwh",
		Help: "Unserved energy over the realistic year",
	}, []string{"group"})); err != nil {
		return nil, err
	}
	if s.maxRamp, err = registerGauge(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gap_max_hourly_ramp_mw",
		Help: "Largest hour-to-hour net load swing per policy",
	}, []string{"group", "policy"})); err != nil {
		return nil, err
	}
	dur := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "group_run_duration_seconds",
		Help:    "Wall clock duration of a full group run",
		Buckets: prometheus.DefBuckets,
	}, []string{"group"})
	if err := reg.Register(dur); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dur = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	s.runDuration = dur
	fails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "group_run_failures_total",
		Help: "Group runs aborted by a hard error",
	}, []string{"group", "kind"})
	if err := reg.Register(fails); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fails = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	s.failures = fails
	return s, nil
}

func registerGauge(reg prometheus.Registerer, g *prometheus.GaugeVec) (*prometheus.GaugeVec, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.GaugeVec), nil
		}
		return nil, err
	}
	return g, nil
}

// RecordRunResult sets the gap gauges for each finished group.
func (s *PromSink) RecordRunResult(res []coremetrics.RunResult) error {
	for _, r := range res {
		s.shortfall.WithLabelValues(r.Group).Set(r.Gap.DispatchableShortfallMW)
		s.peakNeed.WithLabelValues(r.Group).Set(r.Gap.PeakDispatchableNeedMW)
		s.storageEnergy.WithLabelValues(r.Group).Set(r.Gap.RequiredStorageEnergyMWh)
		s.storagePower.WithLabelValues(r.Group).Set(r.Gap.RequiredStoragePowerMW)
		s.unmetEnergy.WithLabelValues(r.Group).Set(r.Gap.UnmetMWh)
		s.maxRamp.WithLabelValues(r.Group, "as_planned").Set(r.Gap.MaxRampAsPlannedMW)
		s.maxRamp.WithLabelValues(r.Group, "realistic").Set(r.Gap.MaxRampRealisticMW)
	}
	return nil
}

// RecordRunDuration observes the duration histogram for the group.
func (s *PromSink) RecordRunDuration(group string, d time.Duration) error {
	s.runDuration.WithLabelValues(group).Observe(d.Seconds())
	return nil
}

// RecordGroupFailure counts an aborted group run by error kind.
func (s *PromSink) RecordGroupFailure(ev coremetrics.GroupFailureEvent) error {
	s.failures.WithLabelValues(ev.Group, ev.Kind).Inc()
	return nil
}
