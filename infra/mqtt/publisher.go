package mqtt

import (
	"fmt"
	"sync"

	coremqtt "github.com/vanditkanudia/gridgap/core/mqtt"
	"github.com/vanditkanudia/gridgap/core/model"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// MockPublisher records published gaps. Used in tests.
type MockPublisher struct {
	mu     sync.Mutex
	Gaps   map[string]model.GapMetrics
	RunIDs map[string]string
	Fail   map[string]bool
	Closed bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Gaps:   make(map[string]model.GapMetrics),
		RunIDs: make(map[string]string),
		Fail:   make(map[string]bool),
	}
}

// PublishGap records the gap or returns an error if configured to fail.
func (m *MockPublisher) PublishGap(runID string, gap model.GapMetrics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail[gap.Group] {
		return fmt.Errorf("publish failed")
	}
	m.Gaps[gap.Group] = gap
	m.RunIDs[gap.Group] = runID
	return nil
}

// Close marks the publisher closed.
func (m *MockPublisher) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}
