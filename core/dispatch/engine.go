// Package dispatch simulates one group's operating year hour by hour: a
// sequential recurrence over storage state, with the energy-balance
// identity asserted every hour. Storage action comes from a pluggable
// strategy; the greedy heuristic is the default and the fallback.
package dispatch

import (
	"fmt"
	"math"

	"github.com/vanditkanudia/gridgap/core/logger"
	"github.com/vanditkanudia/gridgap/core/model"
	"github.com/vanditkanudia/gridgap/core/temporal"
)

// BalanceTol is the relative tolerance of the hourly balance assertion.
const BalanceTol = 1e-6

// socTol absorbs solver and accumulation noise on the SOC bounds; any
// larger excursion means the clamp would bind, which is an invariant
// violation, not a recoverable state.
const socTol = 1e-6

// Engine runs the hourly dispatch recurrence for one expansion. Safe for
// sequential use; create one engine per concurrent run or share it, the
// engine itself is stateless between runs.
type Engine struct {
	cfg      Config
	log      logger.Logger
	strategy StorageStrategy
	fallback StorageStrategy
}

// New builds an engine from a validated config.
func New(cfg Config, log logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &model.ConfigurationError{Table: "dispatch", Msg: err.Error()}
	}
	e := &Engine{cfg: cfg, log: log, fallback: GreedyStorage{}}
	switch cfg.Strategy {
	case "lp":
		e.strategy = WindowLP{}
	default:
		e.strategy = GreedyStorage{}
	}
	return e, nil
}

// Run simulates the expansion against the group plan and returns the
// complete trace. The recurrence is strictly sequential: SOC at hour h
// depends on h-1. A run either completes or fails with the hour it stopped
// at; nothing is retried.
func (e *Engine) Run(x *temporal.Expansion, plan model.GroupPlan) (model.DispatchTrace, error) {
	n := x.Hours()
	spec := plan.Storage()
	dispCap := plan.DispatchableCapacityMW()
	soc := e.cfg.InitialSOCFraction * spec.EnergyMWh

	trace := model.DispatchTrace{
		Group:      x.Group,
		Policy:     x.Policy,
		Year:       x.Year,
		Hours:      make([]model.DispatchHour, 0, n),
		Generation: x.ByTechnology,
	}

	residual := make([]float64, n)
	for h := 0; h < n; h++ {
		residual[h] = x.DemandMW[h] - x.RenewableMW[h] - x.BaseloadMW[h]
	}

	window := n
	if e.strategy.Name() == "lp" && e.cfg.LPWindowHours < n {
		window = e.cfg.LPWindowHours
	}

	var prevNet float64
	for start := 0; start < n; start += window {
		end := start + window
		if end > n {
			end = n
		}
		charge, discharge, err := e.planWindow(x, residual[start:end], soc, spec, dispCap)
		if err != nil {
			return model.DispatchTrace{}, err
		}
		for i := 0; i < end-start; i++ {
			h := start + i
			row, newSOC, err := e.step(x, h, charge[i], discharge[i], soc, spec, dispCap, prevNet)
			if err != nil {
				balanceFailures.WithLabelValues(x.Group, x.Policy.String()).Inc()
				return model.DispatchTrace{}, err
			}
			soc = newSOC
			prevNet = row.NetLoadMW
			trace.Hours = append(trace.Hours, row)
		}
	}

	hoursSimulated.WithLabelValues(x.Group, x.Policy.String()).Add(float64(n))
	curtailedEnergy.WithLabelValues(x.Group, x.Policy.String()).Add(trace.CurtailedMWh())
	for _, row := range trace.Hours {
		if row.UnmetMWh > 0 {
			unmetHours.WithLabelValues(x.Group, x.Policy.String()).Inc()
		}
	}
	e.log.Debugw("dispatch run complete", map[string]any{
		"group":         x.Group,
		"policy":        x.Policy.String(),
		"hours":         n,
		"unmet_mwh":     trace.UnmetMWh(),
		"curtailed_mwh": trace.CurtailedMWh(),
	})
	return trace, nil
}

// planWindow asks the configured strategy for the window's storage plan and
// validates it against the caps. An invalid or failed plan from the lp
// strategy falls back to greedy for that window; an invalid greedy plan is
// an internal invariant violation.
func (e *Engine) planWindow(x *temporal.Expansion, residual []float64, soc float64, spec model.StorageSpec, dispCap float64) ([]float64, []float64, error) {
	charge, discharge, err := e.strategy.Plan(residual, soc, spec, e.cfg.RoundTripEfficiency, dispCap)
	if err == nil {
		err = validateStoragePlan(charge, discharge, soc, spec, e.cfg.RoundTripEfficiency)
	}
	if err == nil {
		return charge, discharge, nil
	}
	if e.strategy.Name() == e.fallback.Name() {
		return nil, nil, &model.EnergyBalanceError{
			Group: x.Group,
			Hour:  -1,
			Msg:   fmt.Sprintf("greedy storage plan violated its own caps: %v", err),
		}
	}
	e.log.Warnf("group %s: %s storage plan rejected (%v), falling back to greedy", x.Group, e.strategy.Name(), err)
	lpFallbacks.WithLabelValues(x.Group, x.Policy.String()).Inc()

	charge, discharge, err = e.fallback.Plan(residual, soc, spec, e.cfg.RoundTripEfficiency, dispCap)
	if err == nil {
		err = validateStoragePlan(charge, discharge, soc, spec, e.cfg.RoundTripEfficiency)
	}
	if err != nil {
		return nil, nil, &model.EnergyBalanceError{
			Group: x.Group,
			Hour:  -1,
			Msg:   fmt.Sprintf("fallback storage plan violated its caps: %v", err),
		}
	}
	return charge, discharge, nil
}

// step settles one hour: dispatchable output up to installed capacity,
// unmet demand or curtailment for the remainder, the SOC update, net load
// and ramp, and the balance assertion.
func (e *Engine) step(x *temporal.Expansion, h int, charge, discharge, soc float64, spec model.StorageSpec, dispCap, prevNet float64) (model.DispatchHour, float64, error) {
	demand := x.DemandMW[h]
	renewable := x.RenewableMW[h]
	baseload := x.BaseloadMW[h]

	need := demand + charge - renewable - baseload - discharge
	var dispatchable, unmet, curtailed float64
	if need >= 0 {
		dispatchable = math.Min(need, dispCap)
		unmet = need - dispatchable
	} else {
		curtailed = -need
	}

	newSOC := soc + e.cfg.RoundTripEfficiency*charge - discharge
	if newSOC < -socTol || newSOC > spec.EnergyMWh+socTol {
		return model.DispatchHour{}, 0, &model.EnergyBalanceError{
			Group:     x.Group,
			Hour:      h,
			Deviation: math.Max(-newSOC, newSOC-spec.EnergyMWh),
			Msg:       fmt.Sprintf("soc %g MWh escaped [0, %g]", newSOC, spec.EnergyMWh),
		}
	}
	newSOC = math.Min(math.Max(newSOC, 0), spec.EnergyMWh)

	netLoad := demand - renewable - baseload - discharge + charge
	ramp := 0.0
	if h > 0 {
		ramp = netLoad - prevNet
	}

	lhs := demand
	rhs := renewable + baseload + dispatchable + discharge - charge - curtailed + unmet
	if dev := math.Abs(lhs - rhs); dev > BalanceTol*math.Max(1, math.Abs(lhs)) {
		return model.DispatchHour{}, 0, &model.EnergyBalanceError{
			Group:     x.Group,
			Hour:      h,
			Deviation: dev,
			Msg:       "hourly balance identity violated",
		}
	}

	return model.DispatchHour{
		Hour:           h,
		DemandMW:       demand,
		RenewableMW:    renewable,
		BaseloadMW:     baseload,
		DispatchableMW: dispatchable,
		ChargeMW:       charge,
		DischargeMW:    discharge,
		SOCMWh:         newSOC,
		CurtailedMWh:   curtailed,
		UnmetMWh:       unmet,
		NetLoadMW:      netLoad,
		RampMW:         ramp,
	}, newSOC, nil
}
