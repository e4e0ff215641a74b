package events

import "time"

// RunStarted is published once when a plan run begins.
type RunStarted struct {
	RunID  string
	Year   int
	Groups []string
	Time   time.Time
}
