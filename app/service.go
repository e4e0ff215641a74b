// Package app wires the configured infrastructure into a runnable analysis
// service: plan loader, profile source, stores, sinks, publisher and the
// runner itself.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vanditkanudia/gridgap/app/plugins"
	"github.com/vanditkanudia/gridgap/config"
	"github.com/vanditkanudia/gridgap/core/dispatch"
	coremetrics "github.com/vanditkanudia/gridgap/core/metrics"
	"github.com/vanditkanudia/gridgap/core/model"
	coremon "github.com/vanditkanudia/gridgap/core/monitoring"
	coremqtt "github.com/vanditkanudia/gridgap/core/mqtt"
	coreprofile "github.com/vanditkanudia/gridgap/core/profile"
	"github.com/vanditkanudia/gridgap/core/region"
	"github.com/vanditkanudia/gridgap/core/results"
	"github.com/vanditkanudia/gridgap/core/runner"
	"github.com/vanditkanudia/gridgap/core/runstatus"
	"github.com/vanditkanudia/gridgap/infra/logger"
	"github.com/vanditkanudia/gridgap/infra/metrics"
	"github.com/vanditkanudia/gridgap/infra/monitoring"
	"github.com/vanditkanudia/gridgap/infra/mqtt"
	"github.com/vanditkanudia/gridgap/infra/plan"
	_ "github.com/vanditkanudia/gridgap/infra/profile"
	"github.com/vanditkanudia/gridgap/internal/eventbus"
)

// Service holds the assembled components of one analysis deployment.
type Service struct {
	Runner *runner.Runner
	Plan   model.Plan
	Codes  *region.CodeMap
	Status *runstatus.MemoryStore

	bus      *eventbus.Bus
	sink     coremetrics.MetricsSink
	store    results.Store
	pub      coremqtt.Publisher
	log      logger.Logger
	promPort string
}

// New creates a Service from the configuration. The plan is loaded and
// validated here; a bad plan never produces a service.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	if cfg.Sentry.DSN != "" {
		mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
		if err != nil {
			return nil, fmt.Errorf("sentry: %w", err)
		}
		coremon.Init(mon)
	}

	p, codes, err := plan.NewLoader(cfg.Plan.Resolve()).Load()
	if err != nil {
		return nil, err
	}

	source, err := coreprofile.NewSource(cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("profile source: %w", err)
	}

	store, err := plugins.NewStore(cfg.Results)
	if err != nil {
		return nil, fmt.Errorf("result store: %w", err)
	}

	engine, err := dispatch.New(cfg.Dispatch, logger.New("dispatch"))
	if err != nil {
		return nil, err
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}

	var pub coremqtt.Publisher = coremqtt.NopPublisher{}
	if cfg.MQTT.Enabled {
		gp, err := mqtt.NewGapPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		pub = gp
	}

	bus := eventbus.New()
	status := runstatus.NewMemoryStore()
	kpis, _ := sink.(coremetrics.TimesliceKPIRecorder)

	r, err := runner.New(cfg.Run, p, runner.Deps{
		Source: source,
		Engine: engine,
		Store:  store,
		Bus:    bus,
		Pub:    pub,
		KPIs:   kpis,
		Log:    logg,
	})
	if err != nil {
		return nil, err
	}

	return &Service{
		Runner:   r,
		Plan:     p,
		Codes:    codes,
		Status:   status,
		bus:      bus,
		sink:     sink,
		store:    store,
		pub:      pub,
		log:      logg,
		promPort: cfg.Metrics.PrometheusPort,
	}, nil
}

// Run starts the collectors and executes one analysis run. Collectors keep
// consuming buffered events until Close.
func (s *Service) Run(ctx context.Context) (runner.Summary, error) {
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	runstatus.StartTracker(ctx, s.bus, s.Status)
	if s.promPort != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return s.Runner.Run(ctx)
}

// Close drains the event bus and releases held resources.
func (s *Service) Close() error {
	s.bus.Close()
	s.Status.Close()
	s.pub.Close()
	err := s.store.Close()
	coremon.Flush(2 * time.Second)
	return err
}
