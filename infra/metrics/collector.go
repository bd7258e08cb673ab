package metrics

import (
	"context"
	"errors"
	"sync"

	"github.com/kilianp07/lfpfade/core/degradation"
	"github.com/kilianp07/lfpfade/core/events"
	coremetrics "github.com/kilianp07/lfpfade/core/metrics"
	"github.com/kilianp07/lfpfade/infra/logger"
	"github.com/kilianp07/lfpfade/internal/eventbus"
)

// RecordFromEvent converts a simulation event into a sink record.
func RecordFromEvent(ev events.SimulationEvent) coremetrics.SimulationRecord {
	rec := coremetrics.SimulationRecord{
		ID:       ev.ID,
		Source:   ev.Source,
		Config:   ev.Config,
		Summary:  ev.Summary,
		Outcome:  coremetrics.OutcomeOK,
		Warnings: ev.Warnings,
		Duration: ev.Duration,
		Time:     ev.Time,
	}
	switch {
	case ev.Err == nil:
	case errors.Is(ev.Err, degradation.ErrInvalidConfiguration):
		rec.Outcome = coremetrics.OutcomeInvalid
	default:
		rec.Outcome = coremetrics.OutcomeError
	}
	return rec
}

// StartEventCollector subscribes to the event bus and records every
// simulation event in sink. It stops when the context is canceled or the bus
// is closed; the returned WaitGroup is done once the goroutine has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[events.SimulationEvent], sink coremetrics.MetricsSink, log logger.Logger) *sync.WaitGroup {
	var wg sync.WaitGroup
	if bus == nil || sink == nil {
		return &wg
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := sink.RecordSimulation(RecordFromEvent(ev)); err != nil {
					log.Errorf("record simulation %s: %v", ev.ID, err)
				}
			}
		}
	}()
	return &wg
}
