package dispatch

import (
	"fmt"
	"math"

	"github.com/vanditkanudia/gridgap/core/model"
)

// StorageStrategy plans storage action over a window of residual load given
// the entering state of charge. Residual is demand minus renewable and
// baseload output; positive means deficit. Returned series are grid-side MW
// per hour and must respect the rate and SOC caps the engine replays them
// against.
type StorageStrategy interface {
	Name() string
	Plan(residual []float64, socMWh float64, spec model.StorageSpec, efficiency, dispatchableMW float64) (charge, discharge []float64, err error)
}

// GreedyStorage charges on any surplus and discharges on any deficit, with
// no lookahead. It models operation without foresight and is not an
// optimizer.
type GreedyStorage struct{}

// Name identifies the strategy in config and logs.
func (GreedyStorage) Name() string { return "greedy" }

// Plan walks the window hour by hour. Discharge is bounded by rated power
// and available energy, charge by rated power and remaining headroom; the
// efficiency loss is taken on the charging leg.
func (GreedyStorage) Plan(residual []float64, soc float64, spec model.StorageSpec, eff, _ float64) ([]float64, []float64, error) {
	charge := make([]float64, len(residual))
	discharge := make([]float64, len(residual))
	if !spec.Enabled() {
		return charge, discharge, nil
	}
	for h, r := range residual {
		switch {
		case r > 0:
			d := math.Min(r, math.Min(spec.PowerMW, soc))
			discharge[h] = d
			soc -= d
		case r < 0:
			c := math.Min(-r, math.Min(spec.PowerMW, spec.EnergyMWh-soc))
			charge[h] = c
			soc += eff * c
		}
	}
	return charge, discharge, nil
}

// validateStoragePlan replays a planned window against the storage caps:
// nonnegative action, no simultaneous charge and discharge, discharge
// within rated power and available energy, charge within rated power and
// headroom. A violation means the plan cannot be committed.
func validateStoragePlan(charge, discharge []float64, soc float64, spec model.StorageSpec, eff float64) error {
	const capTol = 1e-6
	for h := range charge {
		c, d := charge[h], discharge[h]
		if c < 0 || d < 0 {
			return fmt.Errorf("hour %d: negative storage action (charge %g, discharge %g)", h, c, d)
		}
		if c > capTol && d > capTol {
			return fmt.Errorf("hour %d: simultaneous charge %g and discharge %g", h, c, d)
		}
		if d > math.Min(spec.PowerMW, soc)+capTol {
			return fmt.Errorf("hour %d: discharge %g exceeds min(power %g, soc %g)", h, d, spec.PowerMW, soc)
		}
		if c > math.Min(spec.PowerMW, spec.EnergyMWh-soc)+capTol {
			return fmt.Errorf("hour %d: charge %g exceeds min(power %g, headroom %g)", h, c, spec.PowerMW, spec.EnergyMWh-soc)
		}
		soc += eff*c - d
	}
	return nil
}
