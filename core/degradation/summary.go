package degradation

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is a read-only projection of a Curve.
type Summary struct {
	StartCapacityKWh     float64 `json:"start_capacity_kwh"`
	EndOfLifeCapacityKWh float64 `json:"end_of_life_capacity_kwh"`
	StartSOH             float64 `json:"start_soh"`
	EndSOH               float64 `json:"end_soh"`
	FadeKWh              float64 `json:"fade_kwh"`
	// LifetimeThroughputKWh is the energy delivered over cycles 1..N when
	// every cycle discharges the usable capacity of that cycle.
	LifetimeThroughputKWh float64 `json:"lifetime_throughput_kwh"`
	MeanSOH               float64 `json:"mean_soh"`
	// Degrading is false for flat or rising curves.
	Degrading bool `json:"degrading"`
}

// Summarize projects the boundary values and aggregate figures of c.
func Summarize(c Curve) (Summary, error) {
	n := len(c.UsableCapacity)
	if n == 0 || len(c.SOH) != n || len(c.Cycles) != n {
		return Summary{}, ErrEmptyCurve
	}
	first, last := c.UsableCapacity[0], c.UsableCapacity[n-1]
	return Summary{
		StartCapacityKWh:      first,
		EndOfLifeCapacityKWh:  last,
		StartSOH:              c.SOH[0],
		EndSOH:                c.SOH[n-1],
		FadeKWh:               first - last,
		LifetimeThroughputKWh: floats.Sum(c.UsableCapacity[1:]),
		MeanSOH:               stat.Mean(c.SOH, nil),
		Degrading:             c.SOH[n-1] < c.SOH[0],
	}, nil
}

// CyclesToSOH returns the first cycle at which the state of health is at
// or below level.
func CyclesToSOH(c Curve, level float64) (int, error) {
	if c.Len() == 0 || len(c.SOH) != c.Len() {
		return 0, ErrEmptyCurve
	}
	for i, soh := range c.SOH {
		if soh <= level {
			return c.Cycles[i], nil
		}
	}
	return 0, ErrNotReached
}
