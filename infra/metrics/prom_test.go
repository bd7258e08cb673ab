package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/lfpfade/core/degradation"
	coremetrics "github.com/kilianp07/lfpfade/core/metrics"
)

func TestPromSink_RecordSimulation(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordSimulation(coremetrics.SimulationRecord{
		Config:   degradation.SimulationConfig{CapacityKWh: 5, DoD: 0.8, EoL: 0.8, TotalCycles: 6000},
		Summary:  degradation.Summary{EndOfLifeCapacityKWh: 3.2},
		Outcome:  coremetrics.OutcomeOK,
		Duration: time.Millisecond,
	}))
	require.NoError(t, sink.RecordSimulation(coremetrics.SimulationRecord{Outcome: coremetrics.OutcomeInvalid}))
	require.NoError(t, sink.RecordSimulation(coremetrics.SimulationRecord{Outcome: coremetrics.OutcomeInvalid}))

	expected := `
# HELP simulation_runs_total Total number of simulation requests by outcome
# TYPE simulation_runs_total counter
simulation_runs_total{outcome="invalid"} 2
simulation_runs_total{outcome="ok"} 1
`
	if err := testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	assert.InDelta(t, 3.2, testutil.ToFloat64(sink.eol), 1e-12)
	assert.Equal(t, 1, testutil.CollectAndCount(sink.cycles))

	count, err := testutil.GatherAndCount(reg, "simulation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, second.RecordSimulation(coremetrics.SimulationRecord{Outcome: coremetrics.OutcomeError}))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.runs.WithLabelValues("error")))
}
