package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/lfpfade/core/metrics"
)

// PromSink records simulation runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	cycles   prometheus.Histogram
	eol      prometheus.Gauge
}

// NewPromSink registers simulation metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simulation_runs_total",
		Help: "Total number of simulation requests by outcome",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simulation_duration_seconds",
		Help:    "Time spent computing a degradation curve",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})
	cycles := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simulation_cycles",
		Help:    "Requested cycle counts of successful simulations",
		Buckets: prometheus.LinearBuckets(1000, 1000, 10),
	})
	eol := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_end_of_life_capacity_kwh",
		Help: "End-of-life usable capacity of the last successful simulation",
	})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if cycles, err = register(reg, cycles); err != nil {
		return nil, err
	}
	if eol, err = register(reg, eol); err != nil {
		return nil, err
	}
	return &PromSink{runs: runs, duration: duration, cycles: cycles, eol: eol}, nil
}

// register adds c to reg, reusing an identical collector that is already
// registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordSimulation updates the counters for one run. Cycle and capacity
// metrics only track successful runs.
func (s *PromSink) RecordSimulation(rec coremetrics.SimulationRecord) error {
	outcome := rec.Outcome
	if outcome == "" {
		outcome = coremetrics.OutcomeOK
	}
	s.runs.WithLabelValues(string(outcome)).Inc()
	if outcome != coremetrics.OutcomeOK {
		return nil
	}
	s.duration.Observe(rec.Duration.Seconds())
	s.cycles.Observe(float64(rec.Config.TotalCycles))
	s.eol.Set(rec.Summary.EndOfLifeCapacityKWh)
	return nil
}
