package kpi

import (
	"sort"
	"sync"
)

// MemoryStore stores records in memory for testing or lightweight usage.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]*Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[string]*Record{}}
}

// Add inserts or merges the record aggregated by group and timeslice.
func (s *MemoryStore) Add(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[r.Group] == nil {
		s.data[r.Group] = map[string]*Record{}
	}
	rec := s.data[r.Group][r.Timeslice]
	if rec == nil {
		rec = &Record{Group: r.Group, Timeslice: r.Timeslice}
		s.data[r.Group][r.Timeslice] = rec
	}
	rec.Hours += r.Hours
	rec.UnmetMWh += r.UnmetMWh
	rec.CurtailedMWh += r.CurtailedMWh
	rec.StressHours += r.StressHours
	return nil
}

// Query returns the group's records sorted by timeslice ID.
func (s *MemoryStore) Query(group string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []Record
	for _, r := range s.data[group] {
		res = append(res, *r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Timeslice < res[j].Timeslice })
	return res, nil
}
