// Package metrics defines interfaces and implementations for recording
// simulation outcomes. Sinks like PromSink and InfluxSink record gap
// metrics, per-policy summaries, and per-timeslice KPIs and can be
// combined with NewMultiSink. The factory helpers return a MultiSink
// automatically when multiple sinks are configured.
package metrics
