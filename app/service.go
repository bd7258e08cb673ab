package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/lfpfade/api"
	"github.com/kilianp07/lfpfade/config"
	"github.com/kilianp07/lfpfade/core/events"
	coremetrics "github.com/kilianp07/lfpfade/core/metrics"
	"github.com/kilianp07/lfpfade/core/monitoring"
	"github.com/kilianp07/lfpfade/core/simulation"
	"github.com/kilianp07/lfpfade/infra/logger"
	"github.com/kilianp07/lfpfade/infra/metrics"
	"github.com/kilianp07/lfpfade/internal/eventbus"
)

// Service hosts the calculator API together with its observability sinks.
type Service struct {
	Simulator *simulation.Simulator

	cfg     *config.Config
	bus     *eventbus.TypedBus[events.SimulationEvent]
	sink    coremetrics.MetricsSink
	presets atomic.Pointer[[]config.Preset]
	handler http.Handler
	log     logger.Logger

	closeOnce sync.Once
}

// SettingsFromConfig extracts the simulator settings from cfg.
func SettingsFromConfig(cfg *config.Config) simulation.Settings {
	return simulation.Settings{
		Params:   cfg.Model,
		Defaults: cfg.Calculator.Defaults,
		Bounds:   cfg.Calculator.Bounds,
	}
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	presets, err := config.LoadPresets(cfg.Presets.Dir, cfg.Calculator.Bounds)
	if err != nil {
		return nil, fmt.Errorf("presets: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}
	bus := eventbus.NewTyped[events.SimulationEvent]()
	sim, err := simulation.NewSimulator(SettingsFromConfig(cfg), bus, logger.New("simulator"))
	if err != nil {
		bus.Close()
		_ = coremetrics.Close(sink)
		return nil, err
	}

	gin.SetMode(cfg.Server.Mode)
	s := &Service{Simulator: sim, cfg: cfg, bus: bus, sink: sink, log: logg}
	s.presets.Store(&presets)
	s.handler = api.NewRouter(api.Options{
		Simulator:   sim,
		Presets:     s.Presets,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger.New("http"),
	})
	logg.Infow("service configured", map[string]any{
		"address": cfg.Server.Address,
		"sinks":   len(cfg.Metrics.Sinks),
		"presets": len(presets),
	})
	return s, nil
}

// Handler returns the HTTP handler of the API.
func (s *Service) Handler() http.Handler { return s.handler }

// Presets returns the presets currently loaded.
func (s *Service) Presets() []config.Preset { return *s.presets.Load() }

// Reload applies a new configuration to the running service. Model and
// calculator settings and presets are swapped atomically; server and sink
// settings require a restart.
func (s *Service) Reload(cfg *config.Config) error {
	presets, err := config.LoadPresets(cfg.Presets.Dir, cfg.Calculator.Bounds)
	if err != nil {
		return fmt.Errorf("presets: %w", err)
	}
	if err := s.Simulator.Update(SettingsFromConfig(cfg)); err != nil {
		return err
	}
	s.presets.Store(&presets)
	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		s.log.Warnf("logging: %v", err)
	}
	s.log.Infof("configuration reloaded")
	return nil
}

// Watch reloads the configuration whenever the file at path changes.
func (s *Service) Watch(ctx context.Context, path string) error {
	return config.Watch(ctx, path, func(cfg *config.Config) {
		if err := s.Reload(cfg); err != nil {
			s.log.Errorf("reload: %v", err)
			monitoring.Capture(err, "config")
		}
	}, func(err error) {
		s.log.Errorf("%v", err)
	})
}

// Run listens on the configured address and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs the API on ln together with the event collector and, when a
// prometheus sink is configured, the metrics endpoint. It shuts the servers
// down gracefully once ctx is cancelled.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	collector := metrics.StartEventCollector(ctx, s.bus, s.sink, logger.New("collector"))
	if s.cfg.Metrics.HasSink("prometheus") && s.cfg.Metrics.PrometheusPort != "" {
		monitoring.Go(func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
				monitoring.Capture(err, "metrics")
			}
		})
	}

	srv := &http.Server{Handler: s.handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Infof("listening on %s", ln.Addr())

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("http shutdown: %v", err)
	}
	if serveErr == nil {
		serveErr = <-errCh
	}
	// The collector stops with ctx, or with the bus on Close.
	if ctx.Err() != nil {
		collector.Wait()
	}
	if errors.Is(serveErr, http.ErrServerClosed) {
		return nil
	}
	return serveErr
}

// Close releases the event bus and the metrics sinks.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.bus.Close()
		err = coremetrics.Close(s.sink)
	})
	return err
}
