package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/lfpfade/core/degradation"
	"github.com/kilianp07/lfpfade/core/events"
	"github.com/kilianp07/lfpfade/internal/eventbus"
)

func newTestSimulator(t *testing.T, set Settings) (*Simulator, <-chan events.SimulationEvent) {
	t.Helper()
	bus := eventbus.NewTyped[events.SimulationEvent]()
	t.Cleanup(bus.Close)
	sub := bus.Subscribe()
	sim, err := NewSimulator(set, bus, nil)
	require.NoError(t, err)
	return sim, sub
}

func TestRunDefaults(t *testing.T) {
	sim, sub := newTestSimulator(t, DefaultSettings())

	res, err := sim.Run(context.Background(), "test", degradation.DefaultInputs())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 6001, res.Curve.Len())
	assert.InDelta(t, 4.2, res.Summary.StartCapacityKWh, 1e-12)
	assert.InDelta(t, 3.2, res.Summary.EndOfLifeCapacityKWh, 1e-12)
	assert.Empty(t, res.Warnings)

	ev := <-sub
	assert.Equal(t, res.ID, ev.ID)
	assert.Equal(t, "test", ev.Source)
	assert.NoError(t, ev.Err)
	assert.Equal(t, res.Summary, ev.Summary)
	assert.Equal(t, 6000, ev.Config.TotalCycles)
}

func TestRunRejectsOutOfBounds(t *testing.T) {
	sim, sub := newTestSimulator(t, DefaultSettings())

	in := degradation.DefaultInputs()
	in.Cycles = 1234
	_, err := sim.Run(context.Background(), "api", in)
	require.ErrorIs(t, err, degradation.ErrInvalidConfiguration)
	assert.True(t, IsInvalid(err))

	ev := <-sub
	require.Error(t, ev.Err)
	assert.Zero(t, ev.Summary)
}

func TestRunCancelledContext(t *testing.T) {
	sim, sub := newTestSimulator(t, DefaultSettings())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, "cli", degradation.DefaultInputs())
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsInvalid(err))
	ev := <-sub
	assert.True(t, errors.Is(ev.Err, context.Canceled))
}

func TestRunNonDegradingWarns(t *testing.T) {
	set := DefaultSettings()
	set.Params.InitialSOH = 1.0
	set.Params.AllowNonDegrading = true
	set.Defaults.EoLPercent = 100
	sim, _ := newTestSimulator(t, set)

	in := set.Defaults
	res, err := sim.Run(context.Background(), "test", in)
	require.NoError(t, err)
	assert.False(t, res.Summary.Degrading)
	assert.Equal(t, []string{WarnNonDegrading}, res.Warnings)
}

func TestUpdate(t *testing.T) {
	sim, _ := newTestSimulator(t, DefaultSettings())

	bad := DefaultSettings()
	bad.Params.FadeExponent = -1
	require.Error(t, sim.Update(bad))
	assert.Equal(t, degradation.DefaultFadeExponent, sim.Settings().Params.FadeExponent)

	next := DefaultSettings()
	next.Bounds.Cycles = degradation.IntRange{Min: 100, Max: 20000, Step: 100}
	require.NoError(t, sim.Update(next))

	in := degradation.DefaultInputs()
	in.Cycles = 12300
	_, err := sim.Run(context.Background(), "test", in)
	require.NoError(t, err)
}

func TestRunWithoutBus(t *testing.T) {
	sim, err := NewSimulator(DefaultSettings(), nil, nil)
	require.NoError(t, err)
	sim.now = func() time.Time { return time.Unix(0, 0) }
	_, err = sim.Run(context.Background(), "test", degradation.DefaultInputs())
	require.NoError(t, err)
}
