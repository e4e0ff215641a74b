package gap

import (
	"testing"

	"github.com/vanditkanudia/gridgap/core/dispatch"
	"github.com/vanditkanudia/gridgap/core/model"
	"github.com/vanditkanudia/gridgap/core/temporal"
	"github.com/vanditkanudia/gridgap/infra/logger"
)

func traceOf(policy model.Policy, rows []model.DispatchHour) model.DispatchTrace {
	for i := range rows {
		rows[i].Hour = i
	}
	return model.DispatchTrace{Group: "test", Policy: policy, Year: 2019, Hours: rows}
}

func dispatchablePlan(capMW float64) model.GroupPlan {
	return model.GroupPlan{
		Group:      "test",
		CapacityMW: map[model.Technology]float64{model.TechGasCCGT: capMW},
		StorageMWh: map[model.Technology]float64{},
	}
}

func TestAnalyzeShortfallAndRamp(t *testing.T) {
	asPlanned := traceOf(model.PolicyAsPlanned, []model.DispatchHour{
		{RampMW: 0}, {RampMW: 100}, {RampMW: -100},
	})
	realistic := traceOf(model.PolicyRealistic, []model.DispatchHour{
		{DispatchableMW: 80, RampMW: 0},
		{DispatchableMW: 100, UnmetMWh: 20, RampMW: 30},
		{DispatchableMW: 90, RampMW: -60},
	})
	m, err := Analyze(asPlanned, realistic, dispatchablePlan(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PeakDispatchableNeedMW != 120 {
		t.Fatalf("expected peak need 120 got %v", m.PeakDispatchableNeedMW)
	}
	if m.DispatchableShortfallMW != 20 {
		t.Fatalf("expected shortfall 20 got %v", m.DispatchableShortfallMW)
	}
	if m.DispatchableShortfallPct != 20 {
		t.Fatalf("expected shortfall 20%% got %v", m.DispatchableShortfallPct)
	}
	if m.MaxRampAsPlannedMW != 100 || m.MaxRampRealisticMW != 60 {
		t.Fatalf("expected ramps 100/60 got %v/%v", m.MaxRampAsPlannedMW, m.MaxRampRealisticMW)
	}
}

func TestAnalyzeRequiredStorageFromEpisodes(t *testing.T) {
	asPlanned := traceOf(model.PolicyAsPlanned, make([]model.DispatchHour, 6))
	realistic := traceOf(model.PolicyRealistic, []model.DispatchHour{
		{UnmetMWh: 20, DischargeMW: 10},
		{UnmetMWh: 30, DischargeMW: 5},
		{},
		{UnmetMWh: 40},
		{},
		{DischargeMW: 25},
	})
	m, err := Analyze(asPlanned, realistic, dispatchablePlan(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// episodes: 20+30=50 and 40; the sizing closes the worst episode
	if m.RequiredStorageEnergyMWh != 50 {
		t.Fatalf("expected required energy 50 got %v", m.RequiredStorageEnergyMWh)
	}
	// peak of discharge plus unmet
	if m.RequiredStoragePowerMW != 40 {
		t.Fatalf("expected required power 40 got %v", m.RequiredStoragePowerMW)
	}
	if m.UnmetHours != 3 || m.UnmetMWh != 90 {
		t.Fatalf("expected 3 unmet hours of 90 MWh got %d/%v", m.UnmetHours, m.UnmetMWh)
	}
}

func TestAnalyzeSurplusAndStressHours(t *testing.T) {
	asPlanned := traceOf(model.PolicyAsPlanned, make([]model.DispatchHour, 4))
	realistic := traceOf(model.PolicyRealistic, []model.DispatchHour{
		{CurtailedMWh: 50},
		{DispatchableMW: 99},
		{CurtailedMWh: 10},
		{DispatchableMW: 50},
	})
	m, err := Analyze(asPlanned, realistic, dispatchablePlan(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.SurplusHours != 2 || m.CurtailedMWh != 60 {
		t.Fatalf("expected 2 surplus hours of 60 MWh got %d/%v", m.SurplusHours, m.CurtailedMWh)
	}
	if m.SurplusFraction != 0.5 {
		t.Fatalf("expected surplus fraction 0.5 got %v", m.SurplusFraction)
	}
	if len(m.StressHours) != 1 || m.StressHours[0] != 1 {
		t.Fatalf("expected stress hour 1 got %v", m.StressHours)
	}
}

func TestAnalyzeRejectsMismatchedTraces(t *testing.T) {
	a := traceOf(model.PolicyAsPlanned, make([]model.DispatchHour, 2))
	r := traceOf(model.PolicyRealistic, make([]model.DispatchHour, 3))
	if _, err := Analyze(a, r, dispatchablePlan(10)); err == nil {
		t.Fatalf("expected error for mismatched lengths")
	}
	if _, err := Analyze(r, a, dispatchablePlan(10)); err == nil {
		t.Fatalf("expected error for swapped policies")
	}
}

// Scaling demand up while holding capacities fixed must not decrease the
// peak dispatchable shortfall.
func TestShortfallMonotonicUnderDemandScaling(t *testing.T) {
	demand := []float64{90, 130, 180, 120}
	renewable := []float64{40, 10, 0, 30}
	plan := model.GroupPlan{
		Group: "test",
		CapacityMW: map[model.Technology]float64{
			model.TechGasCCGT: 100,
			model.TechBattery: 20,
		},
		StorageMWh: map[model.Technology]float64{model.TechBattery: 40},
	}

	shortfall := func(scale float64) float64 {
		t.Helper()
		scaled := make([]float64, len(demand))
		for i, d := range demand {
			scaled[i] = d * scale
		}
		cfg := dispatch.Config{InitialSOCFraction: 0.5, RoundTripEfficiency: 0.85, Strategy: "greedy", LPWindowHours: 24}
		e, err := dispatch.New(cfg, logger.NopLogger{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		run := func(policy model.Policy) model.DispatchTrace {
			x := &temporal.Expansion{
				Group:        "test",
				Policy:       policy,
				Year:         2019,
				DemandMW:     scaled,
				RenewableMW:  renewable,
				BaseloadMW:   make([]float64, len(demand)),
				ByTechnology: map[model.Technology][]float64{},
			}
			trace, err := e.Run(x, plan)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			return trace
		}
		m, err := Analyze(run(model.PolicyAsPlanned), run(model.PolicyRealistic), plan)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return m.DispatchableShortfallMW
	}

	base := shortfall(1)
	for _, scale := range []float64{1.1, 1.5, 2, 3} {
		if s := shortfall(scale); s < base-1e-9 {
			t.Fatalf("shortfall %v at scale %v below base %v", s, scale, base)
		}
	}
	if shortfall(2) <= 0 {
		t.Fatalf("expected positive shortfall at scale 2")
	}
}
