package dispatch

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/vanditkanudia/gridgap/core/model"
)

// WindowLP plans storage with a bounded-lookahead linear program per
// window: hourly charge, discharge and unmet demand are chosen to minimize
// total unmet demand, with a small churn penalty on storage action. The
// engine's external contract is unchanged; the balance identity still holds
// every replayed hour.
type WindowLP struct{}

// Name identifies the strategy in config and logs.
func (WindowLP) Name() string { return "lp" }

// Plan solves the window LP. Solver failures surface as errors so the
// engine can fall back to the greedy plan for the window.
func (WindowLP) Plan(residual []float64, soc float64, spec model.StorageSpec, eff, dispatchableMW float64) ([]float64, []float64, error) {
	if !spec.Enabled() {
		return make([]float64, len(residual)), make([]float64, len(residual)), nil
	}
	return lpSolve(residual, soc, spec, eff, dispatchableMW)
}

// lpSolve points to the function used to solve the window LP. Overridden in
// tests to simulate solver failures.
var lpSolve = solveStorageLP

// ErrInfeasible indicates the window LP had no usable solution.
var ErrInfeasible = errors.New("storage lp infeasible")

// churnPenalty keeps the solver from idling energy through the battery when
// unmet demand is unaffected.
const churnPenalty = 1e-6

// solveStorageLP builds and solves the window LP with the simplex method.
//
// Variables per hour: charge c, discharge d, unmet u and end-of-hour SOC s.
// The SOC recurrence is an equality row; rate limits, SOC bounds, the
// headroom and available-energy caps, the supply row linking unmet to
// dispatchable capacity, and nonnegativity are inequality rows.
func solveStorageLP(residual []float64, soc0 float64, spec model.StorageSpec, eff, dispCap float64) ([]float64, []float64, error) {
	w := len(residual)
	nVar := 4 * w
	cIdx := func(h int) int { return h }
	dIdx := func(h int) int { return w + h }
	uIdx := func(h int) int { return 2*w + h }
	sIdx := func(h int) int { return 3*w + h }

	obj := make([]float64, nVar)
	for h := 0; h < w; h++ {
		obj[uIdx(h)] = 1
		obj[cIdx(h)] = churnPenalty
		obj[dIdx(h)] = churnPenalty
	}

	// SOC recurrence: s_h - s_{h-1} - eff*c_h + d_h = soc0 for h=0, 0 after.
	a := mat.NewDense(w, nVar, nil)
	b := make([]float64, w)
	for h := 0; h < w; h++ {
		a.Set(h, sIdx(h), 1)
		a.Set(h, cIdx(h), -eff)
		a.Set(h, dIdx(h), 1)
		if h == 0 {
			b[h] = soc0
		} else {
			a.Set(h, sIdx(h-1), -1)
		}
	}

	rows := 10 * w
	g := mat.NewDense(rows, nVar, nil)
	hvec := make([]float64, rows)
	row := 0
	set := func(coeffs map[int]float64, bound float64) {
		for idx, v := range coeffs {
			g.Set(row, idx, v)
		}
		hvec[row] = bound
		row++
	}
	for h := 0; h < w; h++ {
		set(map[int]float64{cIdx(h): 1}, spec.PowerMW)
		set(map[int]float64{dIdx(h): 1}, spec.PowerMW)
		set(map[int]float64{sIdx(h): 1}, spec.EnergyMWh)
		if h == 0 {
			set(map[int]float64{cIdx(h): 1}, spec.EnergyMWh-soc0)
			set(map[int]float64{dIdx(h): 1}, soc0)
		} else {
			set(map[int]float64{cIdx(h): 1, sIdx(h - 1): 1}, spec.EnergyMWh)
			set(map[int]float64{dIdx(h): 1, sIdx(h - 1): -1}, 0)
		}
		set(map[int]float64{cIdx(h): 1, dIdx(h): -1, uIdx(h): -1}, dispCap-residual[h])
		set(map[int]float64{cIdx(h): -1}, 0)
		set(map[int]float64{dIdx(h): -1}, 0)
		set(map[int]float64{uIdx(h): -1}, 0)
		set(map[int]float64{sIdx(h): -1}, 0)
	}

	cStd, aStd, bStd := lp.Convert(obj, g, hvec, a, b)
	_, sol, err := lp.Simplex(cStd, aStd, bStd, 1e-7, nil)
	if err != nil {
		return nil, nil, err
	}
	if len(sol) < 2*nVar {
		return nil, nil, ErrInfeasible
	}

	// Standard form splits each free variable into a positive and a
	// negative part; recover the original values.
	value := func(i int) float64 {
		v := sol[i] - sol[nVar+i]
		if v < 1e-9 {
			return 0
		}
		return v
	}
	charge := make([]float64, w)
	discharge := make([]float64, w)
	for h := 0; h < w; h++ {
		charge[h] = value(cIdx(h))
		discharge[h] = value(dIdx(h))
	}
	return charge, discharge, nil
}
