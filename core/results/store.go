package results

import (
	"context"
	"math"
	"time"

	"github.com/vanditkanudia/gridgap/core/model"
)

// Record captures one simulated policy run for one group.
type Record struct {
	Timestamp time.Time            `json:"timestamp"`
	RunID     string               `json:"run_id"`
	Group     string               `json:"group"`
	Policy    string               `json:"policy"`
	Year      int                  `json:"year"`
	Summary   Summary              `json:"summary"`
	Gap       model.GapMetrics     `json:"gap"`
	Trace     []model.DispatchHour `json:"trace,omitempty"`
}

// Summary condenses a full trace to the figures kept for every run.
type Summary struct {
	Hours         int     `json:"hours"`
	UnmetHours    int     `json:"unmet_hours"`
	UnmetMWh      float64 `json:"unmet_mwh"`
	CurtailedMWh  float64 `json:"curtailed_mwh"`
	PeakNetLoadMW float64 `json:"peak_net_load_mw"`
	MaxRampMW     float64 `json:"max_ramp_mw"`
}

// Summarize reduces a trace to its stored summary.
func Summarize(tr model.DispatchTrace) Summary {
	s := Summary{Hours: len(tr.Hours)}
	for _, h := range tr.Hours {
		if h.UnmetMWh > 0 {
			s.UnmetHours++
		}
		s.UnmetMWh += h.UnmetMWh
		s.CurtailedMWh += h.CurtailedMWh
		if h.NetLoadMW > s.PeakNetLoadMW {
			s.PeakNetLoadMW = h.NetLoadMW
		}
		if r := math.Abs(h.RampMW); r > s.MaxRampMW {
			s.MaxRampMW = r
		}
	}
	return s
}

// Query defines filters for retrieving records.
type Query struct {
	Start  time.Time
	End    time.Time
	RunID  string
	Group  string
	Policy string
}

func (q Query) matches(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if q.Group != "" && r.Group != q.Group {
		return false
	}
	if q.Policy != "" && r.Policy != q.Policy {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
