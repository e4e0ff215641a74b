// Package runstatus tracks the progress of every group within an analysis
// run and streams status changes to watchers.
package runstatus

import (
	"sort"
	"sync"
	"time"

	"github.com/vanditkanudia/gridgap/internal/eventbus"
)

// Group run states.
const (
	StatePending   = "pending"
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Status captures the current known state of one group within a run.
type Status struct {
	RunID       string    `json:"run_id"`
	Group       string    `json:"group"`
	State       string    `json:"state"`
	Members     int       `json:"members,omitempty"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	FinishedAt  time.Time `json:"finished_at,omitempty"`
	ShortfallMW float64   `json:"shortfall_mw,omitempty"`
	UnmetMWh    float64   `json:"unmet_mwh,omitempty"`
	Error       string    `json:"error,omitempty"`
	ErrorKind   string    `json:"error_kind,omitempty"`
}

// Filter narrows List results.
type Filter struct {
	RunID string
	State string
}

// Store holds the latest status per group.
type Store interface {
	Set(Status)
	Get(group string) (Status, bool)
	List(Filter) []Status
}

// MemoryStore is the in-memory Store. Every Set is also published to the
// watch bus.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Status
	bus  *eventbus.TypedBus[Status]
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: map[string]Status{},
		bus:  eventbus.NewTyped[Status](),
	}
}

// Set stores the status and notifies watchers.
func (s *MemoryStore) Set(st Status) {
	s.mu.Lock()
	s.data[st.Group] = st
	s.mu.Unlock()
	s.bus.Publish(st)
}

// Get returns the latest status for a group.
func (s *MemoryStore) Get(group string) (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.data[group]
	return st, ok
}

// List returns the statuses matching the filter, sorted by group.
func (s *MemoryStore) List(f Filter) []Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Status, 0, len(s.data))
	for _, st := range s.data {
		if f.RunID != "" && st.RunID != f.RunID {
			continue
		}
		if f.State != "" && st.State != f.State {
			continue
		}
		res = append(res, st)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Group < res[j].Group })
	return res
}

// Watch returns a channel receiving every status change. Delivery is
// non-blocking; slow watchers miss updates.
func (s *MemoryStore) Watch() <-chan Status {
	return s.bus.Subscribe()
}

// Unwatch removes a watcher.
func (s *MemoryStore) Unwatch(ch <-chan Status) {
	s.bus.Unsubscribe(ch)
}

// Close closes the watch bus.
func (s *MemoryStore) Close() {
	s.bus.Close()
}
