package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	hoursSimulated  *prometheus.CounterVec
	unmetHours      *prometheus.CounterVec
	curtailedEnergy *prometheus.CounterVec
	balanceFailures *prometheus.CounterVec
	lpFallbacks     *prometheus.CounterVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec) {
	hours := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_hours_simulated_total",
			Help: "Number of hours settled by the dispatch recurrence",
		},
		[]string{"group", "policy"},
	)
	unmet := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_unmet_hours_total",
			Help: "Number of hours with unmet demand",
		},
		[]string{"group", "policy"},
	)
	curtailed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_curtailed_energy_mwh_total",
			Help: "Curtailed energy in MWh",
		},
		[]string{"group", "policy"},
	)
	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_balance_failures_total",
			Help: "Balance identity or SOC invariant violations",
		},
		[]string{"group", "policy"},
	)
	fallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_lp_fallbacks_total",
			Help: "Windows where the lp storage plan fell back to greedy",
		},
		[]string{"group", "policy"},
	)
	return hours, unmet, curtailed, failures, fallbacks
}

func init() {
	hoursSimulated, unmetHours, curtailedEnergy, balanceFailures, lpFallbacks = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(hoursSimulated, unmetHours, curtailedEnergy, balanceFailures, lpFallbacks)
}

// ResetMetrics reinitializes metric collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	hoursSimulated, unmetHours, curtailedEnergy, balanceFailures, lpFallbacks = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
