package events

import (
	"time"

	"github.com/vanditkanudia/gridgap/core/model"
)

// PolicyCompleted is published after one policy's year has been simulated.
type PolicyCompleted struct {
	RunID        string
	Group        string
	Policy       model.Policy
	Hours        int
	UnmetMWh     float64
	CurtailedMWh float64
	Duration     time.Duration
	Time         time.Time
}
