package config

import "github.com/kilianp07/lfpfade/core/degradation"

// CalculatorConfig holds the initial input values and accepted ranges
// presented by the interactive front ends.
type CalculatorConfig struct {
	Defaults degradation.Inputs `json:"defaults"`
	Bounds   degradation.Bounds `json:"bounds"`
}

// SetDefaults replaces zero values field by field.
func (c *CalculatorConfig) SetDefaults() {
	di, db := degradation.DefaultInputs(), degradation.DefaultBounds()
	if c.Defaults.CapacityKWh == 0 {
		c.Defaults.CapacityKWh = di.CapacityKWh
	}
	if c.Defaults.DoDPercent == 0 {
		c.Defaults.DoDPercent = di.DoDPercent
	}
	if c.Defaults.EoLPercent == 0 {
		c.Defaults.EoLPercent = di.EoLPercent
	}
	if c.Defaults.Cycles == 0 {
		c.Defaults.Cycles = di.Cycles
	}
	if c.Bounds.MinCapacityKWh == 0 {
		c.Bounds.MinCapacityKWh = db.MinCapacityKWh
	}
	if c.Bounds.CapacityStepKWh == 0 {
		c.Bounds.CapacityStepKWh = db.CapacityStepKWh
	}
	if c.Bounds.DoDPercent == (degradation.IntRange{}) {
		c.Bounds.DoDPercent = db.DoDPercent
	}
	if c.Bounds.EoLPercent == (degradation.IntRange{}) {
		c.Bounds.EoLPercent = db.EoLPercent
	}
	if c.Bounds.Cycles == (degradation.IntRange{}) {
		c.Bounds.Cycles = db.Cycles
	}
}

// Validate checks that the defaults fall inside the bounds.
func (c CalculatorConfig) Validate() error {
	return c.Defaults.Validate(c.Bounds)
}
