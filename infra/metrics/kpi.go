package metrics

import (
	core "github.com/vanditkanudia/gridgap/core/metrics"
	"github.com/vanditkanudia/gridgap/core/metrics/kpi"
	"github.com/prometheus/client_golang/prometheus"
)

// KPISink stores per-timeslice reliability KPIs and exposes them as gauges.
type KPISink struct {
	store     kpi.Store
	unmet     *prometheus.GaugeVec
	curtailed *prometheus.GaugeVec
	stress    *prometheus.GaugeVec
}

// NewKPISink creates a sink with Prometheus gauges registered on reg.
func NewKPISink(store kpi.Store, reg prometheus.Registerer) *KPISink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	unmet := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timeslice_unmet_energy_mwh",
		Help: "Unserved energy per group and timeslice",
	}, []string{"group", "timeslice"})
	curtailed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timeslice_curtailed_energy_mwh",
		Help: "Curtailed energy per group and timeslice",
	}, []string{"group", "timeslice"})
	stress := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timeslice_stress_hours",
		Help: "Hours under stress per group and timeslice",
	}, []string{"group", "timeslice"})
	reg.MustRegister(unmet, curtailed, stress)
	return &KPISink{store: store, unmet: unmet, curtailed: curtailed, stress: stress}
}

// RecordRunResult is a no-op; the sink only consumes timeslice KPIs.
func (s *KPISink) RecordRunResult([]core.RunResult) error { return nil }

// RecordTimesliceKPIs persists the records and updates the gauges.
func (s *KPISink) RecordTimesliceKPIs(recs []kpi.Record) error {
	for _, r := range recs {
		if err := s.store.Add(r); err != nil {
			return err
		}
		s.unmet.WithLabelValues(r.Group, r.Timeslice).Set(r.UnmetMWh)
		s.curtailed.WithLabelValues(r.Group, r.Timeslice).Set(r.CurtailedMWh)
		s.stress.WithLabelValues(r.Group, r.Timeslice).Set(float64(r.StressHours))
	}
	return nil
}

// Store exposes the backing KPI store.
func (s *KPISink) Store() kpi.Store { return s.store }
