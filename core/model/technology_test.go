package model

import "testing"

func TestClassOfKnownCodes(t *testing.T) {
	cases := map[Technology]TechClass{
		TechSolar:     ClassVariable,
		TechNuclear:   ClassBaseload,
		TechGasCCGT:   ClassDispatchable,
		TechBattery:   ClassStorage,
		TechDemand:    ClassDemand,
		TechPumpedHyd: ClassStorage,
	}
	for tech, want := range cases {
		got, err := ClassOf(tech)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tech, err)
		}
		if got != want {
			t.Fatalf("expected %s for %s got %s", want, tech, got)
		}
	}
}

func TestClassOfUnknownCode(t *testing.T) {
	_, err := ClassOf(Technology("FUSION"))
	if err == nil {
		t.Fatalf("expected error for unknown technology")
	}
	if !IsConfiguration(err) {
		t.Fatalf("expected ConfigurationError got %v", err)
	}
}

func TestTechnologiesStableOrder(t *testing.T) {
	dispatchable := Technologies(ClassDispatchable)
	want := []Technology{TechGasCCGT, TechGasOCGT, TechCoal, TechOil}
	if len(dispatchable) != len(want) {
		t.Fatalf("expected %d dispatchable technologies got %d", len(want), len(dispatchable))
	}
	for i, tech := range want {
		if dispatchable[i] != tech {
			t.Fatalf("expected %s at %d got %s", tech, i, dispatchable[i])
		}
	}
}
