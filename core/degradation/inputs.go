package degradation

import (
	"fmt"
	"math"
)

// Inputs are the percentage based values collected by a user interface.
// They are converted to a SimulationConfig exactly once, by Config.
type Inputs struct {
	CapacityKWh float64 `json:"capacity_kwh" yaml:"capacity_kwh"`
	DoDPercent  int     `json:"dod_percent" yaml:"dod_percent"`
	EoLPercent  int     `json:"eol_percent" yaml:"eol_percent"`
	Cycles      int     `json:"cycles" yaml:"cycles"`
}

// IntRange is an inclusive integer range with an optional step from Min.
type IntRange struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// Contains reports whether v lies in the range and on its step grid.
func (r IntRange) Contains(v int) bool {
	if v < r.Min || v > r.Max {
		return false
	}
	return r.Step <= 1 || (v-r.Min)%r.Step == 0
}

// Clamp limits v to the range, snapping it onto the step grid.
func (r IntRange) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	if r.Step > 1 {
		v = r.Min + (v-r.Min)/r.Step*r.Step
	}
	return v
}

// Bounds are the ranges a user interface accepts.
type Bounds struct {
	MinCapacityKWh  float64  `json:"min_capacity_kwh"`
	CapacityStepKWh float64  `json:"capacity_step_kwh"`
	DoDPercent      IntRange `json:"dod_percent"`
	EoLPercent      IntRange `json:"eol_percent"`
	Cycles          IntRange `json:"cycles"`
}

// DefaultBounds returns the calculator's input ranges.
func DefaultBounds() Bounds {
	return Bounds{
		MinCapacityKWh:  0.1,
		CapacityStepKWh: 0.1,
		DoDPercent:      IntRange{Min: 10, Max: 100, Step: 1},
		EoLPercent:      IntRange{Min: 60, Max: 100, Step: 1},
		Cycles:          IntRange{Min: 1000, Max: 10000, Step: 500},
	}
}

// DefaultInputs returns the calculator's initial values.
func DefaultInputs() Inputs {
	return Inputs{CapacityKWh: 5.0, DoDPercent: 80, EoLPercent: 80, Cycles: 6000}
}

// Validate checks the inputs against b.
func (in Inputs) Validate(b Bounds) error {
	if math.IsNaN(in.CapacityKWh) || math.IsInf(in.CapacityKWh, 0) || in.CapacityKWh < b.MinCapacityKWh || in.CapacityKWh <= 0 {
		return invalid("capacity_kwh must be >= %v, got %v", b.MinCapacityKWh, in.CapacityKWh)
	}
	if err := checkRange("dod_percent", in.DoDPercent, b.DoDPercent); err != nil {
		return err
	}
	if err := checkRange("eol_percent", in.EoLPercent, b.EoLPercent); err != nil {
		return err
	}
	return checkRange("cycles", in.Cycles, b.Cycles)
}

func checkRange(name string, v int, r IntRange) error {
	if r.Contains(v) {
		return nil
	}
	if r.Step > 1 {
		return invalid("%s must be in [%d,%d] with step %d, got %d", name, r.Min, r.Max, r.Step, v)
	}
	return invalid("%s must be in [%d,%d], got %d", name, r.Min, r.Max, v)
}

// Config converts the percentages to fractions.
func (in Inputs) Config() SimulationConfig {
	return SimulationConfig{
		CapacityKWh: in.CapacityKWh,
		DoD:         float64(in.DoDPercent) / 100,
		EoL:         float64(in.EoLPercent) / 100,
		TotalCycles: in.Cycles,
	}
}

// String renders the inputs the way the calculator labels them.
func (in Inputs) String() string {
	return fmt.Sprintf("%.1f kWh, DoD %d%%, EoL %d%%, %d cycles", in.CapacityKWh, in.DoDPercent, in.EoLPercent, in.Cycles)
}
