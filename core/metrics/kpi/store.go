package kpi

import (
	"sort"

	"github.com/vanditkanudia/gridgap/core/gap"
	"github.com/vanditkanudia/gridgap/core/model"
)

// Store persists per-timeslice KPI records.
type Store interface {
	Add(Record) error
	Query(group string) ([]Record, error)
}

// Fold aggregates a simulated trace into one Record per timeslice.
// sliceHours maps timeslice IDs to the hour indexes they own;
// dispatchableMW is the group's installed dispatchable capacity used for
// the stress test. Records come back sorted by timeslice ID.
func Fold(tr model.DispatchTrace, sliceHours map[string][]int, dispatchableMW float64) []Record {
	recs := make([]Record, 0, len(sliceHours))
	ids := make([]string, 0, len(sliceHours))
	for id := range sliceHours {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		rec := Record{Group: tr.Group, Timeslice: id}
		for _, h := range sliceHours[id] {
			if h < 0 || h >= len(tr.Hours) {
				continue
			}
			row := tr.Hours[h]
			rec.Hours++
			rec.UnmetMWh += row.UnmetMWh
			rec.CurtailedMWh += row.CurtailedMWh
			if gap.Stressed(row, dispatchableMW) {
				rec.StressHours++
			}
		}
		recs = append(recs, rec)
	}
	return recs
}
