package scenarios

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/vanditkanudia/gridgap/core/dispatch"
	"github.com/vanditkanudia/gridgap/core/gap"
	"github.com/vanditkanudia/gridgap/core/model"
	"github.com/vanditkanudia/gridgap/core/profile"
	"github.com/vanditkanudia/gridgap/core/region"
	"github.com/vanditkanudia/gridgap/core/temporal"
	"github.com/vanditkanudia/gridgap/infra/logger"
)

const rampEps = 1e-6

// mapSource serves the scenario's profile table; anything else is missing.
type mapSource struct {
	profiles map[model.ProfileKey]model.HourlyProfile
}

func (s mapSource) Fetch(_ context.Context, key model.ProfileKey) (model.HourlyProfile, error) {
	p, ok := s.profiles[key]
	if !ok {
		return model.HourlyProfile{}, &model.MissingDataError{Kind: "profile", Key: key.String()}
	}
	return p, nil
}

func (s *Scenario) source(year int) profile.Source {
	src := mapSource{profiles: make(map[model.ProfileKey]model.HourlyProfile)}
	for _, d := range s.Profiles {
		key := model.ProfileKey{
			Zone: strings.ToUpper(strings.TrimSpace(d.Zone)),
			Tech: model.Technology(strings.ToUpper(strings.TrimSpace(d.Tech))),
			Year: year,
		}
		src.profiles[key] = model.HourlyProfile{Key: key, Values: d.Values}
	}
	return src
}

func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	p, err := sc.Plan()
	if err != nil {
		t.Fatalf("scenario plan: %v", err)
	}

	agg := region.NewAggregator(logger.NopLogger{})
	gp, err := agg.Aggregate(p, strings.ToUpper(sc.Group))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	checkAggregation(t, sc, agg, gp)

	if len(sc.Profiles) == 0 {
		return
	}
	asPlanned, realistic := simulate(t, sc, gp, p)
	checkDispatch(t, sc, gp, asPlanned, realistic)
}

// checkAggregation verifies the copper-plate sums and, when the scenario
// removes a member, the exact reduction.
func checkAggregation(t *testing.T, sc *Scenario, agg *region.Aggregator, gp model.GroupPlan) {
	for code, want := range sc.Expected.CapacityMW {
		got := gp.CapacityMW[model.Technology(strings.ToUpper(code))]
		if math.Abs(got-want) > rampEps {
			t.Errorf("capacity %s: want %g MW, got %g", code, want, got)
		}
	}
	if sc.RemoveRegion == "" {
		return
	}

	p, err := sc.Plan()
	if err != nil {
		t.Fatalf("scenario plan: %v", err)
	}
	removed := strings.ToUpper(sc.RemoveRegion)
	for i, g := range p.Groups {
		var kept []string
		for _, code := range g.Regions {
			if code != removed {
				kept = append(kept, code)
			}
		}
		p.Groups[i].Regions = kept
	}
	reduced, err := agg.Aggregate(p, strings.ToUpper(sc.Group))
	if err != nil {
		t.Fatalf("aggregate without %s: %v", removed, err)
	}
	if len(reduced.CapacityMW) != len(sc.Expected.CapacityAfterRemoval) {
		t.Errorf("after removing %s: want %d technologies, got %d",
			removed, len(sc.Expected.CapacityAfterRemoval), len(reduced.CapacityMW))
	}
	for code, want := range sc.Expected.CapacityAfterRemoval {
		got := reduced.CapacityMW[model.Technology(strings.ToUpper(code))]
		if math.Abs(got-want) > rampEps {
			t.Errorf("capacity %s after removing %s: want %g MW, got %g", code, removed, want, got)
		}
	}
}

// simulate runs both policies over the scenario horizon. A scenario that
// expects missing data asserts the realistic policy fails hard and returns
// early.
func simulate(t *testing.T, sc *Scenario, gp model.GroupPlan, p model.Plan) (model.DispatchTrace, model.DispatchTrace) {
	cal := temporal.NewHorizon(sc.Year, sc.HorizonHours)
	x, err := temporal.NewExpander(cal, p.Timeslices, logger.NopLogger{})
	if err != nil {
		t.Fatalf("expander: %v", err)
	}
	cache := profile.NewCache(sc.source(sc.Year), cal.Hours())

	cfg := dispatch.Config{}
	cfg.SetDefaults()
	engine, err := dispatch.New(cfg, logger.NopLogger{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	ctx := context.Background()
	asExp, err := x.Expand(ctx, gp, model.PolicyAsPlanned, cache)
	if err != nil {
		t.Fatalf("as-planned expand: %v", err)
	}
	asPlanned, err := engine.Run(asExp, gp)
	if err != nil {
		t.Fatalf("as-planned run: %v", err)
	}

	realExp, err := x.Expand(ctx, gp, model.PolicyRealistic, cache)
	if sc.Expected.MissingData {
		if err == nil {
			t.Fatal("expected missing profile to abort the realistic policy")
		}
		if !model.IsMissingData(err) {
			t.Fatalf("expected MissingDataError, got %v", err)
		}
		return asPlanned, model.DispatchTrace{}
	}
	if err != nil {
		t.Fatalf("realistic expand: %v", err)
	}
	realistic, err := engine.Run(realExp, gp)
	if err != nil {
		t.Fatalf("realistic run: %v", err)
	}
	return asPlanned, realistic
}

// checkDispatch verifies the ramp expectations against the gap analysis.
func checkDispatch(t *testing.T, sc *Scenario, gp model.GroupPlan, asPlanned, realistic model.DispatchTrace) {
	if sc.Expected.MissingData {
		return
	}
	m, err := gap.Analyze(asPlanned, realistic, gp)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if want := sc.Expected.MaxRampAsPlannedMW; want > 0 {
		if math.Abs(m.MaxRampAsPlannedMW-want) > 1e-6*want {
			t.Errorf("as-planned max ramp: want %g MW, got %g", want, m.MaxRampAsPlannedMW)
		}
	}
	if sc.Expected.RealisticRampSmaller && m.MaxRampRealisticMW >= m.MaxRampAsPlannedMW {
		t.Errorf("realistic max ramp %g MW not below as-planned %g",
			m.MaxRampRealisticMW, m.MaxRampAsPlannedMW)
	}
	if want := sc.Expected.MinRampHoursRealistic; want > 0 {
		var moving int
		for _, h := range realistic.Hours {
			if math.Abs(h.RampMW) > rampEps {
				moving++
			}
		}
		if moving < want {
			t.Errorf("realistic ramp hours: want at least %d, got %d", want, moving)
		}
	}
}
