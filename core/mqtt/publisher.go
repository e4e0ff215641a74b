// Package mqtt defines the broker-facing contract for publishing run
// results.
package mqtt

import "github.com/vanditkanudia/gridgap/core/model"

// Publisher pushes computed gap results to downstream consumers. Results are
// published retained so late subscribers always see the latest summary per
// group.
type Publisher interface {
	// PublishGap publishes the gap summary for one group of a run.
	PublishGap(runID string, gap model.GapMetrics) error

	// Close flushes and disconnects the underlying client.
	Close()
}

// NopPublisher discards everything. Wired when publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishGap(string, model.GapMetrics) error { return nil }
func (NopPublisher) Close()                                    {}
