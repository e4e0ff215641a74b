package temporal

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vanditkanudia/gridgap/core/logger"
	"github.com/vanditkanudia/gridgap/core/model"
)

// Tolerance is the relative tolerance of the timeslice energy-conservation
// check.
const Tolerance = 1e-6

// ProfileGetter yields validated hourly profiles by key. Implemented by the
// run-scoped profile cache.
type ProfileGetter interface {
	Get(ctx context.Context, key model.ProfileKey) (model.HourlyProfile, error)
}

// Expansion is one group's plan restated hour by hour under one policy.
// RenewableMW and BaseloadMW are the class sums of the per-technology
// series in ByTechnology; DemandMW is the group demand.
type Expansion struct {
	Group  string
	Policy model.Policy
	Year   int

	DemandMW     []float64
	RenewableMW  []float64
	BaseloadMW   []float64
	ByTechnology map[model.Technology][]float64
}

// Hours returns the series length.
func (x *Expansion) Hours() int {
	return len(x.DemandMW)
}

// Expander maps one timeslice table onto a weather-year calendar and
// produces hourly series under either policy. The timeslice resolution is
// done once, at construction.
type Expander struct {
	cal   Calendar
	hours map[string][]int
	log   logger.Logger
}

// NewExpander resolves the timeslice table against the calendar. The table
// must partition the modeled horizon exactly.
func NewExpander(cal Calendar, slices []model.Timeslice, log logger.Logger) (*Expander, error) {
	byID, err := SliceHours(cal, slices)
	if err != nil {
		return nil, err
	}
	return &Expander{cal: cal, hours: byID, log: log}, nil
}

// Calendar returns the calendar the expander was built on.
func (e *Expander) Calendar() Calendar {
	return e.cal
}

// Weight returns the represented-hour count of a timeslice.
func (e *Expander) Weight(sliceID string) int {
	return len(e.hours[sliceID])
}

// SliceHours returns the resolved hour sets by timeslice id. The map is
// shared with the expander; callers must treat it as read-only.
func (e *Expander) SliceHours() map[string][]int {
	return e.hours
}

// Expand produces the hourly restatement of the group plan under the given
// policy. As-planned replays every timeslice at its planned average;
// realistic follows the weather-driven profiles rescaled to the plan's
// annual energy, with baseload held at its flat annual mean. Demand is
// expanded from the demand profile, flattened to timeslice means under the
// as-planned policy.
func (e *Expander) Expand(ctx context.Context, plan model.GroupPlan, policy model.Policy, profiles ProfileGetter) (*Expansion, error) {
	n := e.cal.Hours()
	x := &Expansion{
		Group:        plan.Group,
		Policy:       policy,
		Year:         e.cal.Year,
		RenewableMW:  make([]float64, n),
		BaseloadMW:   make([]float64, n),
		ByTechnology: make(map[model.Technology][]float64),
	}

	demand, err := e.demandSeries(ctx, plan, profiles)
	if err != nil {
		return nil, err
	}
	if policy == model.PolicyAsPlanned {
		if demand, err = e.flatten(plan.Group, demand); err != nil {
			return nil, err
		}
	}
	x.DemandMW = demand

	for _, tech := range plan.Technologies(model.ClassVariable) {
		var series []float64
		if policy == model.PolicyAsPlanned {
			series, err = e.replaySeries(plan, tech)
		} else {
			series, err = e.profileSeries(ctx, plan, tech, profiles)
		}
		if err != nil {
			return nil, err
		}
		x.ByTechnology[tech] = series
		floats.Add(x.RenewableMW, series)
	}

	for _, tech := range plan.Technologies(model.ClassBaseload) {
		var series []float64
		if policy == model.PolicyAsPlanned {
			if series, err = e.replaySeries(plan, tech); err != nil {
				return nil, err
			}
		} else {
			series = e.flatSeries(plan.AnnualGenerationMWh(tech))
		}
		x.ByTechnology[tech] = series
		floats.Add(x.BaseloadMW, series)
	}

	return x, nil
}

// replaySeries builds the as-planned series for one technology: every hour
// of a timeslice carries the slice's planned average. The conservation
// check runs for every slice, not only the populated ones.
func (e *Expander) replaySeries(plan model.GroupPlan, tech model.Technology) ([]float64, error) {
	out := make([]float64, e.cal.Hours())
	for sliceID, energy := range plan.GenerationMWh[tech] {
		hrs, ok := e.hours[sliceID]
		if !ok {
			return nil, &model.ConfigurationError{Table: "generation", Key: sliceID, Msg: "unknown timeslice"}
		}
		if len(hrs) == 0 {
			if energy != 0 {
				return nil, &model.ConfigurationError{
					Table: "generation",
					Key:   sliceID,
					Msg:   "timeslice represents no hours of the horizon but carries planned energy",
				}
			}
			continue
		}
		avg := energy / float64(len(hrs))
		for _, h := range hrs {
			out[h] = avg
		}
	}
	for sliceID, hrs := range e.hours {
		want := plan.GenerationMWh[tech][sliceID]
		var got float64
		for _, h := range hrs {
			got += out[h]
		}
		if dev := relDev(got, want); dev > Tolerance {
			return nil, &model.EnergyBalanceError{
				Group:     plan.Group,
				Timeslice: sliceID,
				Hour:      -1,
				Deviation: dev,
				Msg:       fmt.Sprintf("as-planned %s series does not integrate to planned energy %g MWh", tech, want),
			}
		}
	}
	return out, nil
}

// profileSeries builds the realistic series for one weather-driven
// technology: member capacity times the zone's hourly capacity factor,
// rescaled so annual energy matches the plan. Rescaling may push single
// hours above rated capacity; output is not clamped, the exceedance is
// logged.
func (e *Expander) profileSeries(ctx context.Context, plan model.GroupPlan, tech model.Technology, profiles ProfileGetter) ([]float64, error) {
	n := e.cal.Hours()
	planned := plan.AnnualGenerationMWh(tech)
	out := make([]float64, n)
	var capTotal float64
	for _, r := range plan.Members {
		cap := r.CapacityMW[tech]
		if cap == 0 {
			continue
		}
		capTotal += cap
		p, err := profiles.Get(ctx, model.ProfileKey{Zone: r.Zone, Tech: tech, Year: e.cal.Year})
		if err != nil {
			return nil, err
		}
		for h := 0; h < n; h++ {
			out[h] += cap * p.Values[h]
		}
	}
	if planned == 0 {
		return make([]float64, n), nil
	}
	if capTotal == 0 {
		return nil, &model.ConfigurationError{
			Table: "capacity",
			Key:   fmt.Sprintf("%s/%s", plan.Group, tech),
			Msg:   "planned generation with no installed capacity",
		}
	}
	raw := floats.Sum(out)
	if raw == 0 {
		return nil, &model.EnergyBalanceError{
			Group: plan.Group,
			Hour:  -1,
			Msg:   fmt.Sprintf("%s profile energy is zero, cannot rescale to %g MWh", tech, planned),
		}
	}
	floats.Scale(planned/raw, out)
	if peak := floats.Max(out); peak > capTotal {
		e.log.Warnf("group %s: %s rescaled output peaks at %.1f MW, %.2fx the installed %.1f MW",
			plan.Group, tech, peak, peak/capTotal, capTotal)
	}
	return out, nil
}

// flatSeries holds a technology at its flat annual mean.
func (e *Expander) flatSeries(annualMWh float64) []float64 {
	out := make([]float64, e.cal.Hours())
	if annualMWh == 0 {
		return out
	}
	level := annualMWh / float64(e.cal.Hours())
	for i := range out {
		out[i] = level
	}
	return out
}

// demandSeries sums the member zones' demand profiles. Zones shared by
// several members count once.
func (e *Expander) demandSeries(ctx context.Context, plan model.GroupPlan, profiles ProfileGetter) ([]float64, error) {
	out := make([]float64, e.cal.Hours())
	seen := make(map[string]bool, len(plan.Members))
	for _, r := range plan.Members {
		if seen[r.Zone] {
			continue
		}
		seen[r.Zone] = true
		p, err := profiles.Get(ctx, model.ProfileKey{Zone: r.Zone, Tech: model.TechDemand, Year: e.cal.Year})
		if err != nil {
			return nil, err
		}
		floats.Add(out, p.Values)
	}
	return out, nil
}

// flatten replaces each timeslice's hours with their mean, producing the
// plan's flattened view of the series. Conservation against the source
// series is checked per slice.
func (e *Expander) flatten(group string, series []float64) ([]float64, error) {
	out := make([]float64, len(series))
	for sliceID, hrs := range e.hours {
		if len(hrs) == 0 {
			continue
		}
		var sum float64
		for _, h := range hrs {
			sum += series[h]
		}
		mean := sum / float64(len(hrs))
		for _, h := range hrs {
			out[h] = mean
		}
		if dev := relDev(mean*float64(len(hrs)), sum); dev > Tolerance {
			return nil, &model.EnergyBalanceError{
				Group:     group,
				Timeslice: sliceID,
				Hour:      -1,
				Deviation: dev,
				Msg:       "flattened series does not conserve energy",
			}
		}
	}
	return out, nil
}

func relDev(got, want float64) float64 {
	return math.Abs(got-want) / math.Max(1, math.Abs(want))
}
