package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/lfpfade/core/degradation"
	"github.com/kilianp07/lfpfade/core/events"
	"github.com/kilianp07/lfpfade/core/logger"
	"github.com/kilianp07/lfpfade/internal/eventbus"
)

// WarnNonDegrading is attached to results whose curve does not fade.
const WarnNonDegrading = "end-of-life threshold is not below the initial state of health; capacity does not degrade"

// Settings is the runtime configuration of a Simulator.
type Settings struct {
	Params   degradation.ModelParams
	Defaults degradation.Inputs
	Bounds   degradation.Bounds
}

// DefaultSettings returns the calculator's built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Params:   degradation.DefaultParams(),
		Defaults: degradation.DefaultInputs(),
		Bounds:   degradation.DefaultBounds(),
	}
}

// Result is the outcome of one accepted simulation.
type Result struct {
	ID       string                       `json:"id"`
	Inputs   degradation.Inputs           `json:"inputs"`
	Config   degradation.SimulationConfig `json:"config"`
	Curve    degradation.Curve            `json:"curve"`
	Summary  degradation.Summary          `json:"summary"`
	Warnings []string                     `json:"warnings"`
}

// Simulator runs simulations and publishes a SimulationEvent for each.
type Simulator struct {
	settings atomic.Pointer[Settings]
	bus      *eventbus.TypedBus[events.SimulationEvent]
	log      logger.Logger
	now      func() time.Time
}

// NewSimulator validates s and returns a Simulator. bus and log may be nil.
func NewSimulator(s Settings, bus *eventbus.TypedBus[events.SimulationEvent], log logger.Logger) (*Simulator, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	sim := &Simulator{bus: bus, log: log, now: time.Now}
	if err := sim.Update(s); err != nil {
		return nil, err
	}
	return sim, nil
}

// Update replaces the settings used by subsequent runs. Invalid settings are
// rejected and the current ones stay in effect.
func (s *Simulator) Update(set Settings) error {
	if err := set.Params.Validate(); err != nil {
		return fmt.Errorf("model params: %w", err)
	}
	if err := set.Defaults.Validate(set.Bounds); err != nil {
		return fmt.Errorf("calculator defaults: %w", err)
	}
	s.settings.Store(&set)
	return nil
}

// Settings returns the current settings.
func (s *Simulator) Settings() Settings { return *s.settings.Load() }

// Run validates in, computes the curve and summarizes it. source names the
// front end that issued the request and is carried on the event.
func (s *Simulator) Run(ctx context.Context, source string, in degradation.Inputs) (Result, error) {
	start := s.now()
	set := s.settings.Load()
	res := Result{ID: uuid.NewString(), Inputs: in}

	err := s.run(ctx, set, &res)
	ev := events.SimulationEvent{
		ID:       res.ID,
		Source:   source,
		Inputs:   in,
		Warnings: res.Warnings,
		Err:      err,
		Duration: s.now().Sub(start),
		Time:     start,
	}
	if err == nil {
		ev.Config, ev.Summary = res.Config, res.Summary
		s.log.Debugw("simulation complete", map[string]any{
			"id":             res.ID,
			"source":         source,
			"cycles":         res.Config.TotalCycles,
			"eol_capacity":   res.Summary.EndOfLifeCapacityKWh,
			"duration_ms":    float64(ev.Duration.Microseconds()) / 1000,
			"warnings_count": len(res.Warnings),
		})
	} else {
		s.log.Debugw("simulation rejected", map[string]any{"id": res.ID, "source": source, "error": err.Error()})
	}
	if s.bus != nil {
		s.bus.Publish(ev)
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *Simulator) run(ctx context.Context, set *Settings, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := res.Inputs.Validate(set.Bounds); err != nil {
		return err
	}
	res.Config = res.Inputs.Config()
	curve, err := degradation.ComputeCurveWithParams(res.Config, set.Params)
	if err != nil {
		return err
	}
	sum, err := degradation.Summarize(curve)
	if err != nil {
		return err
	}
	res.Curve, res.Summary = curve, sum
	if !sum.Degrading {
		res.Warnings = append(res.Warnings, WarnNonDegrading)
	}
	return nil
}

// IsInvalid reports whether err stems from rejected inputs rather than an
// internal failure.
func IsInvalid(err error) bool {
	return errors.Is(err, degradation.ErrInvalidConfiguration)
}
