package degradation

import "math"

const (
	// DefaultInitialSOH is the beginning-of-life state of health. LFP packs
	// typically ship with about 5% capacity above nameplate.
	DefaultInitialSOH = 1.05
	// DefaultFadeExponent shapes the fade curve. Values above 1 degrade
	// slowly at first and accelerate towards end of life. It is a shape
	// choice, not a fitted constant.
	DefaultFadeExponent = 1.3
)

// SimulationConfig is the canonical model input. Fractions, not percentages.
type SimulationConfig struct {
	CapacityKWh float64 `json:"capacity_kwh"`
	DoD         float64 `json:"dod_fraction"`
	EoL         float64 `json:"eol_fraction"`
	TotalCycles int     `json:"total_cycles"`
}

// ModelParams holds the tunable shape of the curve.
type ModelParams struct {
	InitialSOH   float64 `json:"initial_soh"`
	FadeExponent float64 `json:"fade_exponent"`
	// AllowNonDegrading accepts an end-of-life fraction at or above
	// InitialSOH. The resulting curve is flat or rising and its summary is
	// flagged as non-degrading.
	AllowNonDegrading bool `json:"allow_non_degrading"`
}

// DefaultParams returns the reference curve shape.
func DefaultParams() ModelParams {
	return ModelParams{InitialSOH: DefaultInitialSOH, FadeExponent: DefaultFadeExponent}
}

// Validate checks the curve shape parameters.
func (p ModelParams) Validate() error {
	if !(p.InitialSOH > 0) || math.IsInf(p.InitialSOH, 0) {
		return invalid("initial_soh must be > 0, got %v", p.InitialSOH)
	}
	if !(p.FadeExponent > 0) || math.IsInf(p.FadeExponent, 0) {
		return invalid("fade_exponent must be > 0, got %v", p.FadeExponent)
	}
	return nil
}

// Curve is the per-cycle output of the model. The three slices are aligned
// and have TotalCycles+1 elements.
type Curve struct {
	Cycles         []int     `json:"cycles"`
	SOH            []float64 `json:"soh"`
	UsableCapacity []float64 `json:"usable_capacity_kwh"`
}

// Len returns the number of samples in the curve.
func (c Curve) Len() int { return len(c.Cycles) }

// Validate checks cfg against the default model parameters.
func (c SimulationConfig) Validate() error {
	return c.validate(DefaultParams())
}

func (c SimulationConfig) validate(p ModelParams) error {
	if c.TotalCycles <= 0 {
		return invalid("total_cycles must be >= 1, got %d", c.TotalCycles)
	}
	if !(c.CapacityKWh > 0) || math.IsInf(c.CapacityKWh, 0) {
		return invalid("capacity_kwh must be > 0, got %v", c.CapacityKWh)
	}
	if !(c.DoD > 0) || c.DoD > 1 {
		return invalid("dod_fraction must be in (0,1], got %v", c.DoD)
	}
	maxEoL := 1.0
	if p.AllowNonDegrading && p.InitialSOH > maxEoL {
		maxEoL = p.InitialSOH
	}
	if !(c.EoL > 0) || c.EoL > maxEoL {
		return invalid("eol_fraction must be in (0,%v], got %v", maxEoL, c.EoL)
	}
	if c.EoL >= p.InitialSOH && !p.AllowNonDegrading {
		return fmtNonDegrading(c.EoL, p.InitialSOH)
	}
	return nil
}

// ComputeCurve evaluates the model with the default parameters.
func ComputeCurve(cfg SimulationConfig) (Curve, error) {
	return ComputeCurveWithParams(cfg, DefaultParams())
}

// ComputeCurveWithParams evaluates the model for cycles 0..cfg.TotalCycles.
// soh[0] is p.InitialSOH and soh[N] is cfg.EoL exactly.
func ComputeCurveWithParams(cfg SimulationConfig, p ModelParams) (Curve, error) {
	if err := p.Validate(); err != nil {
		return Curve{}, err
	}
	if err := cfg.validate(p); err != nil {
		return Curve{}, err
	}

	n := cfg.TotalCycles
	span := p.InitialSOH - cfg.EoL
	out := Curve{
		Cycles:         make([]int, n+1),
		SOH:            make([]float64, n+1),
		UsableCapacity: make([]float64, n+1),
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		soh := p.InitialSOH - span*math.Pow(t, p.FadeExponent)
		if i == n {
			soh = cfg.EoL
		}
		out.Cycles[i] = i
		out.SOH[i] = soh
		out.UsableCapacity[i] = soh * cfg.CapacityKWh * cfg.DoD
	}
	return out, nil
}
