// Package kpibackfill rebuilds per-timeslice reliability KPIs from
// persisted run results, for stores that were added or wiped after the
// simulations ran.
package kpibackfill

import (
	"github.com/vanditkanudia/gridgap/core/metrics/kpi"
	"github.com/vanditkanudia/gridgap/core/model"
	"github.com/vanditkanudia/gridgap/core/region"
	"github.com/vanditkanudia/gridgap/core/results"
	"github.com/vanditkanudia/gridgap/core/temporal"
	"github.com/vanditkanudia/gridgap/infra/logger"
)

// Backfill replays stored result records into the KPI store. Only
// realistic-policy records carrying a full trace contribute; everything
// else is skipped. It returns the number of records folded.
func Backfill(store kpi.Store, plan model.Plan, history []results.Record) (int, error) {
	agg := region.NewAggregator(logger.NopLogger{})
	caps := map[string]float64{}
	slices := map[[2]int]map[string][]int{}
	done := 0
	for _, rec := range history {
		if rec.Policy != model.PolicyRealistic.String() || len(rec.Trace) == 0 {
			continue
		}
		dispCap, ok := caps[rec.Group]
		if !ok {
			gp, err := agg.Aggregate(plan, rec.Group)
			if err != nil {
				return done, err
			}
			dispCap = gp.DispatchableCapacityMW()
			caps[rec.Group] = dispCap
		}
		key := [2]int{rec.Year, len(rec.Trace)}
		sliceHours, ok := slices[key]
		if !ok {
			cal := temporal.NewHorizon(rec.Year, len(rec.Trace))
			var err error
			sliceHours, err = temporal.SliceHours(cal, plan.Timeslices)
			if err != nil {
				return done, err
			}
			slices[key] = sliceHours
		}
		tr := model.DispatchTrace{Group: rec.Group, Policy: model.PolicyRealistic, Year: rec.Year, Hours: rec.Trace}
		for _, r := range kpi.Fold(tr, sliceHours, dispCap) {
			if err := store.Add(r); err != nil {
				return done, err
			}
		}
		done++
	}
	return done, nil
}
