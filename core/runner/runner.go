// Package runner orchestrates an analysis run end to end: group
// aggregation, the as-planned and realistic simulations, gap analysis,
// result persistence and publication. Groups run independently; one group's
// failure never aborts its siblings.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vanditkanudia/gridgap/core/dispatch"
	"github.com/vanditkanudia/gridgap/core/events"
	"github.com/vanditkanudia/gridgap/core/gap"
	"github.com/vanditkanudia/gridgap/core/logger"
	"github.com/vanditkanudia/gridgap/core/metrics"
	"github.com/vanditkanudia/gridgap/core/metrics/kpi"
	"github.com/vanditkanudia/gridgap/core/model"
	"github.com/vanditkanudia/gridgap/core/monitoring"
	"github.com/vanditkanudia/gridgap/core/mqtt"
	"github.com/vanditkanudia/gridgap/core/profile"
	"github.com/vanditkanudia/gridgap/core/region"
	"github.com/vanditkanudia/gridgap/core/results"
	"github.com/vanditkanudia/gridgap/core/temporal"
	"github.com/vanditkanudia/gridgap/internal/eventbus"
)

// Deps bundles the runner's collaborators. Source, Engine, Store and Log
// are required; Bus, Pub and KPIs default to no-ops when nil.
type Deps struct {
	Source profile.Source
	Engine *dispatch.Engine
	Store  results.Store
	Bus    eventbus.EventBus
	Pub    mqtt.Publisher
	KPIs   metrics.TimesliceKPIRecorder
	Log    logger.Logger
}

// GroupResult is the outcome of one group's analysis.
type GroupResult struct {
	Group    string
	Gap      model.GapMetrics
	Err      error
	Duration time.Duration
}

// Summary is the outcome of a whole run, one entry per group in run order.
type Summary struct {
	RunID    string
	Year     int
	Results  []GroupResult
	Duration time.Duration
}

// Failed returns the ids of the groups that did not complete.
func (s Summary) Failed() []string {
	var out []string
	for _, r := range s.Results {
		if r.Err != nil {
			out = append(out, r.Group)
		}
	}
	return out
}

// Runner executes analysis runs over one loaded plan.
type Runner struct {
	cfg  Config
	plan model.Plan
	deps Deps
	agg  *region.Aggregator
}

// New validates the configuration and wires the runner.
func New(cfg Config, plan model.Plan, deps Deps) (*Runner, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &model.ConfigurationError{Table: "run", Msg: err.Error()}
	}
	switch {
	case deps.Source == nil:
		return nil, errors.New("runner: profile source is required")
	case deps.Engine == nil:
		return nil, errors.New("runner: dispatch engine is required")
	case deps.Store == nil:
		return nil, errors.New("runner: result store is required")
	case deps.Log == nil:
		return nil, errors.New("runner: logger is required")
	}
	if deps.Bus == nil {
		deps.Bus = eventbus.New()
	}
	if deps.Pub == nil {
		deps.Pub = mqtt.NopPublisher{}
	}
	if deps.KPIs == nil {
		deps.KPIs = metrics.NopSink{}
	}
	return &Runner{cfg: cfg, plan: plan, deps: deps, agg: region.NewAggregator(deps.Log)}, nil
}

// Run executes one analysis run and returns its summary. The error is
// non-nil when setup failed or any group failed; completed groups keep
// their results in the summary and the store either way.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	runID := uuid.NewString()

	groups, err := r.resolveGroups()
	if err != nil {
		return Summary{}, err
	}
	cal := temporal.NewCalendar(r.cfg.Year)
	if r.cfg.HorizonHours > 0 {
		cal = temporal.NewHorizon(r.cfg.Year, r.cfg.HorizonHours)
	}
	expander, err := temporal.NewExpander(cal, r.plan.Timeslices, r.deps.Log)
	if err != nil {
		return Summary{}, err
	}
	cache := profile.NewCache(r.deps.Source, cal.Hours())

	r.deps.Log.Infof("run %s: year %d, %d hours, %d groups", runID, cal.Year, cal.Hours(), len(groups))
	r.deps.Bus.Publish(events.RunStarted{RunID: runID, Year: cal.Year, Groups: groups, Time: time.Now()})

	type job struct {
		idx int
		id  string
	}
	out := make([]GroupResult, len(groups))
	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < min(r.cfg.Workers, len(groups)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out[j.idx] = r.runGroup(ctx, runID, j.id, expander, cache)
			}
		}()
	}
feed:
	for i, id := range groups {
		select {
		case <-ctx.Done():
			for k := i; k < len(groups); k++ {
				out[k] = GroupResult{Group: groups[k], Err: ctx.Err()}
			}
			break feed
		case jobs <- job{idx: i, id: id}:
		}
	}
	close(jobs)
	wg.Wait()

	sum := Summary{RunID: runID, Year: cal.Year, Results: out, Duration: time.Since(start)}
	if failed := sum.Failed(); len(failed) > 0 {
		r.deps.Log.Errorf("run %s: %d of %d groups failed: %s",
			runID, len(failed), len(groups), strings.Join(failed, ", "))
		return sum, fmt.Errorf("%d of %d groups failed", len(failed), len(groups))
	}
	r.deps.Log.Infof("run %s: complete in %s", runID, sum.Duration.Round(time.Millisecond))
	return sum, nil
}

// resolveGroups expands the configured group filter against the plan: plan
// order for a full run, request order for a filtered one.
func (r *Runner) resolveGroups() ([]string, error) {
	if len(r.cfg.Groups) == 0 {
		if len(r.plan.Groups) == 0 {
			return nil, &model.ConfigurationError{Table: "groups", Msg: "plan defines no transmission groups"}
		}
		ids := make([]string, len(r.plan.Groups))
		for i, g := range r.plan.Groups {
			ids[i] = g.ID
		}
		return ids, nil
	}
	ids := make([]string, 0, len(r.cfg.Groups))
	seen := make(map[string]bool, len(r.cfg.Groups))
	for _, raw := range r.cfg.Groups {
		id := strings.ToUpper(strings.TrimSpace(raw))
		if _, ok := r.plan.GroupByID(id); !ok {
			return nil, &model.ConfigurationError{Table: "run", Key: raw, Msg: "unknown transmission group"}
		}
		if seen[id] {
			return nil, &model.ConfigurationError{Table: "run", Key: raw, Msg: "group requested twice"}
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// runGroup takes one group through the whole pipeline. Telemetry failures
// are logged and do not fail the group; persistence failures abort it.
func (r *Runner) runGroup(ctx context.Context, runID, groupID string, x *temporal.Expander, cache *profile.Cache) GroupResult {
	start := time.Now()
	res := GroupResult{Group: groupID}

	gp, err := r.agg.Aggregate(r.plan, groupID)
	if err != nil {
		return r.fail(res, runID, start, err)
	}
	r.deps.Bus.Publish(events.GroupStarted{RunID: runID, Group: groupID, Members: len(gp.Members), Time: time.Now()})
	r.deps.Log.Debugf("group %s: %d members, %.0f MW peak demand", groupID, len(gp.Members), gp.PeakDemandMW)

	traces, err := r.simulate(ctx, runID, gp, x, cache)
	if err != nil {
		return r.fail(res, runID, start, err)
	}
	g, err := gap.Analyze(traces[model.PolicyAsPlanned], traces[model.PolicyRealistic], gp)
	if err != nil {
		return r.fail(res, runID, start, err)
	}
	if err := r.persist(ctx, runID, traces, g); err != nil {
		return r.fail(res, runID, start, err)
	}

	recs := kpi.Fold(traces[model.PolicyRealistic], x.SliceHours(), gp.DispatchableCapacityMW())
	if err := r.deps.KPIs.RecordTimesliceKPIs(recs); err != nil {
		r.deps.Log.Warnf("group %s: recording timeslice KPIs: %v", groupID, err)
	}
	if err := r.deps.Pub.PublishGap(runID, g); err != nil {
		r.deps.Log.Warnf("group %s: publishing gap result: %v", groupID, err)
	}

	res.Gap = g
	res.Duration = time.Since(start)
	r.deps.Bus.Publish(events.GroupCompleted{
		RunID:    runID,
		Group:    groupID,
		Year:     g.Year,
		Gap:      g,
		Duration: res.Duration,
		Time:     time.Now(),
	})
	r.deps.Log.Infof("group %s: shortfall %.1f MW, unmet %.1f MWh over %d hours",
		groupID, g.DispatchableShortfallMW, g.UnmetMWh, g.UnmetHours)
	return res
}

// fail records the error, publishes the failure event and returns the
// result.
func (r *Runner) fail(res GroupResult, runID string, start time.Time, err error) GroupResult {
	res.Err = err
	res.Duration = time.Since(start)
	kind := model.ErrorKind(err)
	r.deps.Log.Errorf("group %s failed (%s): %v", res.Group, kind, err)
	monitoring.CaptureException(err, map[string]string{
		"run_id": runID,
		"group":  res.Group,
		"kind":   kind,
	})
	r.deps.Bus.Publish(events.GroupFailed{RunID: runID, Group: res.Group, Kind: kind, Err: err, Time: time.Now()})
	return res
}

// simulate runs both policies concurrently. They share the run's profile
// cache, so every profile is fetched once.
func (r *Runner) simulate(ctx context.Context, runID string, gp model.GroupPlan, x *temporal.Expander, cache *profile.Cache) (map[model.Policy]model.DispatchTrace, error) {
	traces := make(map[model.Policy]model.DispatchTrace, 2)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, pol := range model.Policies() {
		wg.Add(1)
		go func(pol model.Policy) {
			defer wg.Done()
			started := time.Now()
			exp, err := x.Expand(ctx, gp, pol, cache)
			var tr model.DispatchTrace
			if err == nil {
				tr, err = r.deps.Engine.Run(exp, gp)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("policy %s: %w", pol, err)
				}
				return
			}
			traces[pol] = tr
			r.deps.Bus.Publish(events.PolicyCompleted{
				RunID:        runID,
				Group:        gp.Group,
				Policy:       pol,
				Hours:        len(tr.Hours),
				UnmetMWh:     tr.UnmetMWh(),
				CurtailedMWh: tr.CurtailedMWh(),
				Duration:     time.Since(started),
				Time:         time.Now(),
			})
		}(pol)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return traces, nil
}

// persist appends one record per policy, both carrying the group's gap.
func (r *Runner) persist(ctx context.Context, runID string, traces map[model.Policy]model.DispatchTrace, g model.GapMetrics) error {
	now := time.Now().UTC()
	for _, pol := range model.Policies() {
		tr := traces[pol]
		rec := results.Record{
			Timestamp: now,
			RunID:     runID,
			Group:     tr.Group,
			Policy:    pol.String(),
			Year:      tr.Year,
			Summary:   results.Summarize(tr),
			Gap:       g,
		}
		if r.cfg.IncludeTrace {
			rec.Trace = tr.Hours
		}
		if err := r.deps.Store.Append(ctx, rec); err != nil {
			return fmt.Errorf("storing %s record: %w", pol, err)
		}
	}
	return nil
}
