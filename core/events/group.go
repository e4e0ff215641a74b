package events

import (
	"time"

	"github.com/vanditkanudia/gridgap/core/model"
)

// GroupStarted is published when a group's simulation begins.
type GroupStarted struct {
	RunID   string
	Group   string
	Members int
	Time    time.Time
}

// GroupCompleted carries the gap metrics of a finished group.
type GroupCompleted struct {
	RunID    string
	Group    string
	Year     int
	Gap      model.GapMetrics
	Duration time.Duration
	Time     time.Time
}

// GroupFailed reports a group aborted by a hard error. Kind is the
// model.ErrorKind of the underlying error.
type GroupFailed struct {
	RunID string
	Group string
	Kind  string
	Err   error
	Time  time.Time
}
