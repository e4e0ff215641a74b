package region

import (
	"github.com/vanditkanudia/gridgap/core/logger"
	"github.com/vanditkanudia/gridgap/core/model"
)

// Aggregator folds the member regions of one transmission group into a
// single copper-plate plan record. Inputs are treated as immutable; the
// aggregate is computed fresh on every call.
type Aggregator struct {
	log logger.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(log logger.Logger) *Aggregator {
	return &Aggregator{log: log}
}

// Aggregate returns the element-wise sums of the group's member regions:
// capacity and storage energy per technology, planned generation per
// technology and timeslice, and summed peak demand. The group id must exist
// in the plan, every member must be present in the region table, and no
// region may be claimed by more than one group.
func (a *Aggregator) Aggregate(plan model.Plan, groupID string) (model.GroupPlan, error) {
	group, ok := plan.GroupByID(groupID)
	if !ok {
		return model.GroupPlan{}, &model.ConfigurationError{
			Table: "groups",
			Key:   groupID,
			Msg:   "unknown transmission group",
		}
	}
	if err := checkExclusiveMembership(plan); err != nil {
		return model.GroupPlan{}, err
	}

	agg := model.GroupPlan{
		Group:         groupID,
		CapacityMW:    make(map[model.Technology]float64),
		StorageMWh:    make(map[model.Technology]float64),
		GenerationMWh: make(map[model.Technology]map[string]float64),
	}
	for _, code := range group.Regions {
		r, ok := plan.RegionByCode(code)
		if !ok {
			return model.GroupPlan{}, &model.ConfigurationError{
				Table: "groups",
				Key:   code,
				Msg:   "member region not present in the region table",
			}
		}
		if err := addRegion(&agg, r); err != nil {
			return model.GroupPlan{}, err
		}
	}

	a.log.Debugw("aggregated group", map[string]any{
		"group":        groupID,
		"regions":      len(agg.Members),
		"peak_mw":      agg.PeakDemandMW,
		"technologies": len(agg.CapacityMW),
	})
	return agg, nil
}

// addRegion accumulates one member into the aggregate. Unknown technology
// codes in the member's tables abort the aggregation.
func addRegion(agg *model.GroupPlan, r model.Region) error {
	agg.Members = append(agg.Members, r)
	agg.PeakDemandMW += r.PeakDemandMW
	for tech, cap := range r.CapacityMW {
		if !tech.Known() {
			return &model.ConfigurationError{Table: "capacity", Key: string(tech), Msg: "not in the technology catalog"}
		}
		agg.CapacityMW[tech] += cap
	}
	for tech, energy := range r.StorageMWh {
		if !tech.Known() {
			return &model.ConfigurationError{Table: "capacity", Key: string(tech), Msg: "not in the technology catalog"}
		}
		agg.StorageMWh[tech] += energy
	}
	for tech, slices := range r.GenerationMWh {
		if !tech.Known() {
			return &model.ConfigurationError{Table: "generation", Key: string(tech), Msg: "not in the technology catalog"}
		}
		if agg.GenerationMWh[tech] == nil {
			agg.GenerationMWh[tech] = make(map[string]float64)
		}
		for slice, e := range slices {
			agg.GenerationMWh[tech][slice] += e
		}
	}
	return nil
}

// checkExclusiveMembership guards against double counting: every region may
// be claimed by at most one group across the whole plan.
func checkExclusiveMembership(plan model.Plan) error {
	owner := make(map[string]string, len(plan.Regions))
	for _, g := range plan.Groups {
		for _, code := range g.Regions {
			if prev, ok := owner[code]; ok && prev != g.ID {
				return &model.AggregationError{
					Group: g.ID,
					Code:  code,
					Msg:   "already claimed by group " + prev,
				}
			}
			owner[code] = g.ID
		}
	}
	return nil
}
