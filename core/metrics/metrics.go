package metrics

import (
	"time"

	"github.com/kilianp07/lfpfade/core/degradation"
)

// Outcome classifies a simulation run.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeInvalid Outcome = "invalid"
	OutcomeError   Outcome = "error"
)

// SimulationRecord is one simulation run as seen by observability sinks.
// Config and Summary are zero for rejected runs.
type SimulationRecord struct {
	ID       string
	Source   string
	Config   degradation.SimulationConfig
	Summary  degradation.Summary
	Outcome  Outcome
	Warnings []string
	Duration time.Duration
	Time     time.Time
}

// MetricsSink records simulation runs for observability purposes.
type MetricsSink interface {
	RecordSimulation(rec SimulationRecord) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSimulation(SimulationRecord) error { return nil }
