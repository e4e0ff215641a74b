package model

import (
	"fmt"
	"strings"
)

// Policy selects how hourly renewable and baseload output is sourced. Both
// policies share the same dispatch recurrence; their divergence is the
// analytical product.
type Policy int

const (
	// PolicyAsPlanned replays every hour of a timeslice at the slice's
	// planned average, reproducing the planning assumption under test.
	PolicyAsPlanned Policy = iota
	// PolicyRealistic follows the weather-driven hourly profiles, rescaled
	// to the plan's annual energy.
	PolicyRealistic
)

// String returns the canonical policy code.
func (p Policy) String() string {
	switch p {
	case PolicyAsPlanned:
		return "as_planned"
	case PolicyRealistic:
		return "realistic"
	default:
		return "unknown"
	}
}

// ParsePolicy resolves a policy code.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "as_planned", "as-planned", "planned":
		return PolicyAsPlanned, nil
	case "realistic", "profile":
		return PolicyRealistic, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", s)
	}
}

// Policies lists both policies in run order.
func Policies() []Policy {
	return []Policy{PolicyAsPlanned, PolicyRealistic}
}

// StorageSpec describes the group's pooled storage asset. Power bounds both
// the charging and the discharging leg.
type StorageSpec struct {
	EnergyMWh float64
	PowerMW   float64
}

// Enabled reports whether the spec describes usable storage.
func (s StorageSpec) Enabled() bool {
	return s.EnergyMWh > 0 && s.PowerMW > 0
}

// DispatchHour is the per-hour record of one simulated year. Charge is
// measured at the grid connection; the round-trip efficiency loss is taken
// on the charging leg, so SOC rises by efficiency x charge.
type DispatchHour struct {
	Hour           int     `json:"hour"`
	DemandMW       float64 `json:"demand_mw"`
	RenewableMW    float64 `json:"renewable_mw"`
	BaseloadMW     float64 `json:"baseload_mw"`
	DispatchableMW float64 `json:"dispatchable_mw"`
	ChargeMW       float64 `json:"charge_mw"`
	DischargeMW    float64 `json:"discharge_mw"`
	SOCMWh         float64 `json:"soc_mwh"`
	CurtailedMWh   float64 `json:"curtailed_mwh"`
	UnmetMWh       float64 `json:"unmet_mwh"`
	NetLoadMW      float64 `json:"net_load_mw"`
	RampMW         float64 `json:"ramp_mw"`
}

// DispatchTrace is the complete simulated year for one group under one
// policy. Generation carries the expanded per-technology series the engine
// dispatched against. Immutable once produced.
type DispatchTrace struct {
	Group      string                  `json:"group"`
	Policy     Policy                  `json:"-"`
	Year       int                     `json:"year"`
	Hours      []DispatchHour          `json:"hours"`
	Generation map[Technology][]float64 `json:"-"`
}

// UnmetMWh sums unmet demand energy over the year.
func (t DispatchTrace) UnmetMWh() float64 {
	var total float64
	for _, h := range t.Hours {
		total += h.UnmetMWh
	}
	return total
}

// CurtailedMWh sums curtailed energy over the year.
func (t DispatchTrace) CurtailedMWh() float64 {
	var total float64
	for _, h := range t.Hours {
		total += h.CurtailedMWh
	}
	return total
}
