// Package gap reduces the simulated traces into the capacity-gap metrics
// record: what chronological operation required beyond the plan's sizing.
package gap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vanditkanudia/gridgap/core/model"
)

// stressThreshold flags hours where dispatchable output runs close to
// installed capacity.
const stressThreshold = 0.98

// Stressed reports whether the hour sheds load or runs the dispatchable
// fleet at or beyond the stress threshold.
func Stressed(h model.DispatchHour, dispatchableMW float64) bool {
	return h.UnmetMWh > 0 || (dispatchableMW > 0 && h.DispatchableMW >= stressThreshold*dispatchableMW)
}

// Analyze computes the gap metrics from the two policy traces and the
// plan's installed capacities. Requirement figures are read from the
// realistic trace; the as-planned ramp is carried for the comparison. Pure
// function of its inputs.
func Analyze(asPlanned, realistic model.DispatchTrace, plan model.GroupPlan) (model.GapMetrics, error) {
	if asPlanned.Group != realistic.Group {
		return model.GapMetrics{}, fmt.Errorf("traces belong to different groups: %s and %s", asPlanned.Group, realistic.Group)
	}
	if asPlanned.Policy != model.PolicyAsPlanned || realistic.Policy != model.PolicyRealistic {
		return model.GapMetrics{}, fmt.Errorf("traces passed in the wrong policy order")
	}
	if len(asPlanned.Hours) != len(realistic.Hours) {
		return model.GapMetrics{}, fmt.Errorf("trace lengths differ: %d and %d", len(asPlanned.Hours), len(realistic.Hours))
	}
	n := len(realistic.Hours)
	if n == 0 {
		return model.GapMetrics{}, fmt.Errorf("empty traces")
	}

	planned := plan.DispatchableCapacityMW()
	m := model.GapMetrics{
		Group:                 realistic.Group,
		Year:                  realistic.Year,
		PlannedDispatchableMW: planned,
	}

	need := make([]float64, n)
	storagePower := make([]float64, n)
	var episode float64
	for i, row := range realistic.Hours {
		need[i] = row.DispatchableMW + row.UnmetMWh
		storagePower[i] = row.DischargeMW + row.UnmetMWh

		if row.UnmetMWh > 0 {
			episode += row.UnmetMWh
			if episode > m.RequiredStorageEnergyMWh {
				m.RequiredStorageEnergyMWh = episode
			}
			m.UnmetHours++
			m.UnmetMWh += row.UnmetMWh
		} else {
			episode = 0
		}

		if row.CurtailedMWh > 0 {
			m.SurplusHours++
			m.CurtailedMWh += row.CurtailedMWh
		}

		if Stressed(row, planned) && len(m.StressHours) < model.MaxStressHours {
			m.StressHours = append(m.StressHours, row.Hour)
		}
	}

	m.PeakDispatchableNeedMW = floats.Max(need)
	m.RequiredStoragePowerMW = floats.Max(storagePower)
	m.DispatchableShortfallMW = math.Max(0, m.PeakDispatchableNeedMW-planned)
	if planned > 0 {
		m.DispatchableShortfallPct = 100 * m.DispatchableShortfallMW / planned
	}
	m.SurplusFraction = float64(m.SurplusHours) / float64(n)
	m.MaxRampAsPlannedMW = maxAbsRamp(asPlanned)
	m.MaxRampRealisticMW = maxAbsRamp(realistic)
	return m, nil
}

func maxAbsRamp(trace model.DispatchTrace) float64 {
	var max float64
	for _, row := range trace.Hours {
		if r := math.Abs(row.RampMW); r > max {
			max = r
		}
	}
	return max
}
