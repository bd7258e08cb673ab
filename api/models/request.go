package models

import "github.com/kilianp07/lfpfade/core/degradation"

// SimulateRequest is the body of POST /api/v1/simulate. Omitted inputs fall
// back to the named preset, then to the configured defaults. Explicit values,
// zero included, are always validated as sent.
type SimulateRequest struct {
	CapacityKWh  *float64 `json:"capacity_kwh,omitempty"`
	DoDPercent   *int     `json:"dod_percent,omitempty"`
	EoLPercent   *int     `json:"eol_percent,omitempty"`
	Cycles       *int     `json:"cycles,omitempty"`
	Preset       string   `json:"preset,omitempty"`
	IncludeCurve bool     `json:"include_curve,omitempty"`
}

// Apply overlays the fields present in r onto base.
func (r SimulateRequest) Apply(base degradation.Inputs) degradation.Inputs {
	if r.CapacityKWh != nil {
		base.CapacityKWh = *r.CapacityKWh
	}
	if r.DoDPercent != nil {
		base.DoDPercent = *r.DoDPercent
	}
	if r.EoLPercent != nil {
		base.EoLPercent = *r.EoLPercent
	}
	if r.Cycles != nil {
		base.Cycles = *r.Cycles
	}
	return base
}
