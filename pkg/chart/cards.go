package chart

import (
	"fmt"
	"math"

	"github.com/kilianp07/lfpfade/core/degradation"
)

// Card is one headline figure of a simulation.
type Card struct {
	Icon     string
	Title    string
	Value    string
	Subtitle string
}

// SummaryCards returns the start and end-of-life capacity cards.
func SummaryCards(cfg degradation.SimulationConfig, sum degradation.Summary) []Card {
	return []Card{
		{
			Icon:     "🔋",
			Title:    "Usable Capacity at Start",
			Value:    fmt.Sprintf("%.2f kWh", sum.StartCapacityKWh),
			Subtitle: fmt.Sprintf("Based on %s%% SOH", percent(sum.StartSOH)),
		},
		{
			Icon:     "⚠️",
			Title:    "End of Life Capacity",
			Value:    fmt.Sprintf("%.2f kWh", sum.EndOfLifeCapacityKWh),
			Subtitle: fmt.Sprintf("Threshold: %s%% EOL", percent(cfg.EoL)),
		},
	}
}

// percent renders a fraction as a percentage without spurious decimals,
// 1.05 as "105" and 0.825 as "82.5".
func percent(f float64) string {
	return fmt.Sprintf("%g", math.Round(f*1e6)/1e4)
}
