package kpi

// Record aggregates reliability KPIs for one group and timeslice.
type Record struct {
	Group        string
	Timeslice    string
	Hours        int
	UnmetMWh     float64
	CurtailedMWh float64
	StressHours  int
}

// AvgUnmetMW returns the mean unmet power across the slice's hours.
func (r Record) AvgUnmetMW() float64 {
	if r.Hours == 0 {
		return 0
	}
	return r.UnmetMWh / float64(r.Hours)
}

// StressShare returns the fraction of the slice's hours under stress.
func (r Record) StressShare() float64 {
	if r.Hours == 0 {
		return 0
	}
	return float64(r.StressHours) / float64(r.Hours)
}
