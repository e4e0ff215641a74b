package model

// Region is one node of the expansion plan: installed capacity and planned
// generation per technology, plus peak demand. Immutable once loaded; codes
// are canonical.
type Region struct {
	Code         string
	Group        string
	Zone         string // profile zone, defaults to Code
	PeakDemandMW float64

	CapacityMW map[Technology]float64
	// StorageMWh holds energy capacity for storage technologies only.
	StorageMWh map[Technology]float64
	// GenerationMWh holds planned energy per technology and timeslice id.
	GenerationMWh map[Technology]map[string]float64
}

// AnnualGenerationMWh sums the region's planned energy for tech over all
// timeslices.
func (r Region) AnnualGenerationMWh(tech Technology) float64 {
	var total float64
	for _, e := range r.GenerationMWh[tech] {
		total += e
	}
	return total
}

// TransmissionGroup is a copper-plate set of regions dispatched as a single
// node. Membership is exclusive: a region belongs to exactly one group per
// run.
type TransmissionGroup struct {
	ID      string
	Regions []string // canonical member codes, load order
}

// GroupPlan is the aggregate the dispatch pipeline works on: element-wise
// sums of the member regions' plan values, with the member snapshot kept for
// per-zone profile lookups. Derived, never edited.
type GroupPlan struct {
	Group        string
	Members      []Region
	PeakDemandMW float64

	CapacityMW    map[Technology]float64
	StorageMWh    map[Technology]float64
	GenerationMWh map[Technology]map[string]float64
}

// AnnualGenerationMWh sums the group's planned energy for tech over all
// timeslices.
func (p GroupPlan) AnnualGenerationMWh(tech Technology) float64 {
	var total float64
	for _, e := range p.GenerationMWh[tech] {
		total += e
	}
	return total
}

// DispatchableCapacityMW sums installed capacity over dispatchable
// technologies.
func (p GroupPlan) DispatchableCapacityMW() float64 {
	var total float64
	for tech, cap := range p.CapacityMW {
		if tech.Known() && tech.Class() == ClassDispatchable {
			total += cap
		}
	}
	return total
}

// Storage pools the group's storage technologies into one equivalent asset:
// summed power and energy ratings. Zero-valued when the plan has no storage.
func (p GroupPlan) Storage() StorageSpec {
	var spec StorageSpec
	for tech, cap := range p.CapacityMW {
		if tech.Known() && tech.Class() == ClassStorage {
			spec.PowerMW += cap
			spec.EnergyMWh += p.StorageMWh[tech]
		}
	}
	return spec
}

// Technologies returns the group's technologies of the given class that have
// nonzero capacity or planned generation, in catalog order.
func (p GroupPlan) Technologies(class TechClass) []Technology {
	var out []Technology
	for _, tech := range Technologies(class) {
		if p.CapacityMW[tech] > 0 || p.AnnualGenerationMWh(tech) > 0 {
			out = append(out, tech)
		}
	}
	return out
}

// Plan bundles the validated input tables for one analysis run.
type Plan struct {
	Regions    []Region
	Groups     []TransmissionGroup
	Timeslices []Timeslice
}

// GroupByID returns the group with the given id.
func (p Plan) GroupByID(id string) (TransmissionGroup, bool) {
	for _, g := range p.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return TransmissionGroup{}, false
}

// RegionByCode returns the region with the given canonical code.
func (p Plan) RegionByCode(code string) (Region, bool) {
	for _, r := range p.Regions {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}
