// Package simulation runs the degradation model on behalf of the front ends.
//
// A Simulator validates user inputs against the configured bounds, computes
// the curve and its summary, and announces every run, accepted or rejected,
// on a typed event bus so observability sinks can record it. Settings can be
// swapped at runtime; each run reads one consistent snapshot.
package simulation
