// Package events defines the events emitted on the simulation event bus.
//
// Available event types:
//   - SimulationEvent: one completed or rejected simulation run
package events
