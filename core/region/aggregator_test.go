package region

import (
	"testing"

	"github.com/vanditkanudia/gridgap/core/model"
	"github.com/vanditkanudia/gridgap/infra/logger"
)

func twoRegionPlan() model.Plan {
	return model.Plan{
		Regions: []model.Region{
			{
				Code: "NO01", Group: "nordic", Zone: "NO01", PeakDemandMW: 100,
				CapacityMW:    map[model.Technology]float64{model.TechWind: 400},
				GenerationMWh: map[model.Technology]map[string]float64{model.TechWind: {"WINTER_NIGHT": 1000}},
			},
			{
				Code: "SE04", Group: "nordic", Zone: "SE04", PeakDemandMW: 60,
				CapacityMW:    map[model.Technology]float64{model.TechSolar: 250, model.TechBattery: 50},
				StorageMWh:    map[model.Technology]float64{model.TechBattery: 200},
				GenerationMWh: map[model.Technology]map[string]float64{model.TechSolar: {"SUMMER_DAY": 800}},
			},
		},
		Groups: []model.TransmissionGroup{
			{ID: "nordic", Regions: []string{"NO01", "SE04"}},
		},
	}
}

func TestAggregateSumsDisjointCapacities(t *testing.T) {
	agg := NewAggregator(logger.NopLogger{})
	got, err := agg.Aggregate(twoRegionPlan(), "nordic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CapacityMW[model.TechWind] != 400 {
		t.Fatalf("expected wind 400 got %v", got.CapacityMW[model.TechWind])
	}
	if got.CapacityMW[model.TechSolar] != 250 {
		t.Fatalf("expected solar 250 got %v", got.CapacityMW[model.TechSolar])
	}
	if got.PeakDemandMW != 160 {
		t.Fatalf("expected peak 160 got %v", got.PeakDemandMW)
	}
	if got.StorageMWh[model.TechBattery] != 200 {
		t.Fatalf("expected battery energy 200 got %v", got.StorageMWh[model.TechBattery])
	}
	if got.GenerationMWh[model.TechSolar]["SUMMER_DAY"] != 800 {
		t.Fatalf("expected solar SUMMER_DAY 800 got %v", got.GenerationMWh[model.TechSolar]["SUMMER_DAY"])
	}
	if len(got.Members) != 2 {
		t.Fatalf("expected 2 members got %d", len(got.Members))
	}
}

func TestAggregateRemovalReducesByContribution(t *testing.T) {
	agg := NewAggregator(logger.NopLogger{})
	full, err := agg.Aggregate(twoRegionPlan(), "nordic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reduced := twoRegionPlan()
	reduced.Groups[0].Regions = []string{"NO01"}
	part, err := agg.Aggregate(reduced, "nordic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := full.PeakDemandMW - part.PeakDemandMW; diff != 60 {
		t.Fatalf("expected peak reduced by 60 got %v", diff)
	}
	if part.CapacityMW[model.TechSolar] != 0 {
		t.Fatalf("expected no solar after removal got %v", part.CapacityMW[model.TechSolar])
	}
	if part.CapacityMW[model.TechWind] != full.CapacityMW[model.TechWind] {
		t.Fatalf("wind capacity must be untouched by removing SE04")
	}
}

func TestAggregateUnknownGroup(t *testing.T) {
	agg := NewAggregator(logger.NopLogger{})
	_, err := agg.Aggregate(twoRegionPlan(), "baltic")
	if err == nil {
		t.Fatalf("expected error for unknown group")
	}
	if !model.IsConfiguration(err) {
		t.Fatalf("expected ConfigurationError got %v", err)
	}
}

func TestAggregateDoubleClaimedRegion(t *testing.T) {
	plan := twoRegionPlan()
	plan.Groups = append(plan.Groups, model.TransmissionGroup{ID: "baltic", Regions: []string{"SE04"}})
	agg := NewAggregator(logger.NopLogger{})
	_, err := agg.Aggregate(plan, "nordic")
	if err == nil {
		t.Fatalf("expected error for double-claimed region")
	}
	if !model.IsAggregation(err) {
		t.Fatalf("expected AggregationError got %v", err)
	}
}

func TestAggregateMissingMemberRegion(t *testing.T) {
	plan := twoRegionPlan()
	plan.Groups[0].Regions = append(plan.Groups[0].Regions, "FI01")
	agg := NewAggregator(logger.NopLogger{})
	_, err := agg.Aggregate(plan, "nordic")
	if err == nil {
		t.Fatalf("expected error for missing member region")
	}
	if !model.IsConfiguration(err) {
		t.Fatalf("expected ConfigurationError got %v", err)
	}
}

func TestAggregateUnknownTechnology(t *testing.T) {
	plan := twoRegionPlan()
	plan.Regions[0].CapacityMW[model.Technology("FUSION")] = 10
	agg := NewAggregator(logger.NopLogger{})
	_, err := agg.Aggregate(plan, "nordic")
	if err == nil {
		t.Fatalf("expected error for unknown technology")
	}
	if !model.IsConfiguration(err) {
		t.Fatalf("expected ConfigurationError got %v", err)
	}
}
