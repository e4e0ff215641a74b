package dispatch

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsRegistration(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)
	// touch metrics so they are exported
	hoursSimulated.WithLabelValues("NORDIC", "realistic").Add(8760)
	unmetHours.WithLabelValues("NORDIC", "realistic").Inc()
	curtailedEnergy.WithLabelValues("NORDIC", "realistic").Add(42)
	balanceFailures.WithLabelValues("NORDIC", "realistic").Inc()
	lpFallbacks.WithLabelValues("NORDIC", "realistic").Inc()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[*mf.Name] = true
	}
	expected := []string{
		"dispatch_hours_simulated_total",
		"dispatch_unmet_hours_total",
		"dispatch_curtailed_energy_mwh_total",
		"dispatch_balance_failures_total",
		"dispatch_lp_fallbacks_total",
	}
	for _, n := range expected {
		if !names[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}
