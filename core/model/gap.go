package model

// GapMetrics summarizes, for one transmission group, what chronological
// operation required beyond what the plan assumed. Requirements are read
// from the realistic-policy trace; the as-planned ramp is carried for the
// comparison. Derived once per run, never mutated.
type GapMetrics struct {
	Group string `json:"group"`
	Year  int    `json:"year"`

	// Dispatchable capacity: the peak need is the output that would have
	// been called upon had capacity sufficed (served plus unmet).
	PlannedDispatchableMW    float64 `json:"planned_dispatchable_mw"`
	PeakDispatchableNeedMW   float64 `json:"peak_dispatchable_need_mw"`
	DispatchableShortfallMW  float64 `json:"dispatchable_shortfall_mw"`
	DispatchableShortfallPct float64 `json:"dispatchable_shortfall_pct"`

	// Storage sized to close every deficit episode of the realistic trace.
	RequiredStorageEnergyMWh float64 `json:"required_storage_energy_mwh"`
	RequiredStoragePowerMW   float64 `json:"required_storage_power_mw"`

	MaxRampAsPlannedMW float64 `json:"max_ramp_as_planned_mw"`
	MaxRampRealisticMW float64 `json:"max_ramp_realistic_mw"`

	SurplusHours    int     `json:"surplus_hours"`
	SurplusFraction float64 `json:"surplus_fraction"`
	CurtailedMWh    float64 `json:"curtailed_mwh"`

	// Unmet hours are the validity signal on the requirement figures, not a
	// tolerated steady state.
	UnmetHours int     `json:"unmet_hours"`
	UnmetMWh   float64 `json:"unmet_mwh"`

	// StressHours lists hours with unmet demand or dispatchable output near
	// installed capacity, capped at MaxStressHours entries.
	StressHours []int `json:"stress_hours,omitempty"`
}

// MaxStressHours caps the stress-hour list carried in a metrics record.
const MaxStressHours = 100
