package events

import (
	"time"

	"github.com/kilianp07/lfpfade/core/degradation"
)

// SimulationEvent is published after every simulation request. Err is set
// when the request was rejected or failed; Config and Summary are then zero.
type SimulationEvent struct {
	ID       string
	Source   string
	Inputs   degradation.Inputs
	Config   degradation.SimulationConfig
	Summary  degradation.Summary
	Warnings []string
	Err      error
	Duration time.Duration
	Time     time.Time
}
