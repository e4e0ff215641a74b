package model

import "fmt"

// TechClass describes how a technology participates in dispatch.
type TechClass int

const (
	// ClassVariable output follows a weather-driven capacity-factor profile.
	ClassVariable TechClass = iota
	// ClassBaseload output is held at the planned constant level.
	ClassBaseload
	// ClassDispatchable output is commanded on demand up to installed capacity.
	ClassDispatchable
	// ClassStorage shifts energy between hours within its SOC bounds.
	ClassStorage
	// ClassDemand is consumption, expanded from the demand profile.
	ClassDemand
)

// String returns a human-readable representation of the class.
func (c TechClass) String() string {
	switch c {
	case ClassVariable:
		return "variable"
	case ClassBaseload:
		return "baseload"
	case ClassDispatchable:
		return "dispatchable"
	case ClassStorage:
		return "storage"
	case ClassDemand:
		return "demand"
	default:
		return "unknown"
	}
}

// Technology identifies a generation, storage or demand technology from the
// expansion plan. Codes are canonical: trimmed and uppercased.
type Technology string

const (
	TechSolar      Technology = "SOLAR"
	TechWind       Technology = "WIND"
	TechHydroROR   Technology = "HYDRO_ROR"
	TechNuclear    Technology = "NUCLEAR"
	TechGeothermal Technology = "GEOTHERMAL"
	TechBiomass    Technology = "BIOMASS"
	TechGasCCGT    Technology = "GAS_CCGT"
	TechGasOCGT    Technology = "GAS_OCGT"
	TechCoal       Technology = "COAL"
	TechOil        Technology = "OIL"
	TechBattery    Technology = "BATTERY"
	TechPumpedHyd  Technology = "PUMPED_HYDRO"
	TechDemand     Technology = "DEMAND"
)

// catalog maps every known technology to its dispatch class. Codes outside
// the catalog are a configuration error wherever they appear.
var catalog = map[Technology]TechClass{
	TechSolar:      ClassVariable,
	TechWind:       ClassVariable,
	TechHydroROR:   ClassVariable,
	TechNuclear:    ClassBaseload,
	TechGeothermal: ClassBaseload,
	TechBiomass:    ClassBaseload,
	TechGasCCGT:    ClassDispatchable,
	TechGasOCGT:    ClassDispatchable,
	TechCoal:       ClassDispatchable,
	TechOil:        ClassDispatchable,
	TechBattery:    ClassStorage,
	TechPumpedHyd:  ClassStorage,
	TechDemand:     ClassDemand,
}

// ClassOf returns the dispatch class for tech. Unknown codes yield a
// ConfigurationError naming the code.
func ClassOf(tech Technology) (TechClass, error) {
	c, ok := catalog[tech]
	if !ok {
		return 0, &ConfigurationError{
			Table: "technology",
			Key:   string(tech),
			Msg:   "not in the technology catalog",
		}
	}
	return c, nil
}

// Known reports whether tech is in the technology catalog.
func (t Technology) Known() bool {
	_, ok := catalog[t]
	return ok
}

// Class returns the dispatch class and panics on unknown codes. Callers must
// have validated the technology first; use ClassOf at input boundaries.
func (t Technology) Class() TechClass {
	c, err := ClassOf(t)
	if err != nil {
		panic(fmt.Sprintf("unvalidated technology %q", t))
	}
	return c
}

// Technologies returns every catalog entry of the given class, in stable
// order.
func Technologies(class TechClass) []Technology {
	ordered := []Technology{
		TechSolar, TechWind, TechHydroROR,
		TechNuclear, TechGeothermal, TechBiomass,
		TechGasCCGT, TechGasOCGT, TechCoal, TechOil,
		TechBattery, TechPumpedHyd,
		TechDemand,
	}
	var out []Technology
	for _, t := range ordered {
		if catalog[t] == class {
			out = append(out, t)
		}
	}
	return out
}
