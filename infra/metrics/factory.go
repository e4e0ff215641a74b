package metrics

import (
	"github.com/vanditkanudia/gridgap/core/factory"
	coremetrics "github.com/vanditkanudia/gridgap/core/metrics"
	"github.com/vanditkanudia/gridgap/core/metrics/kpi"
	infrakpi "github.com/vanditkanudia/gridgap/infra/kpi"
	"github.com/prometheus/client_golang/prometheus"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		return NewPromSinkWithRegistry(coremetrics.Config{}, prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})

	_ = coremetrics.RegisterMetricsSink("kpi", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		var store kpi.Store = kpi.NewMemoryStore()
		if c.Path != "" {
			s, err := infrakpi.NewSQLiteStore(c.Path)
			if err != nil {
				return nil, err
			}
			store = s
		}
		return NewKPISink(store, prometheus.DefaultRegisterer), nil
	})
}
