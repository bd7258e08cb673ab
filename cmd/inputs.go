package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/lfpfade/config"
	"github.com/kilianp07/lfpfade/core/degradation"
	"github.com/kilianp07/lfpfade/core/simulation"
)

// inputFlags are the calculator inputs shared by simulate and chart.
type inputFlags struct {
	capacity float64
	dod      int
	eol      int
	cycles   int
	preset   string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	d := degradation.DefaultInputs()
	cmd.Flags().Float64Var(&f.capacity, "capacity", d.CapacityKWh, "battery pack capacity in kWh")
	cmd.Flags().IntVar(&f.dod, "dod", d.DoDPercent, "depth of discharge in percent")
	cmd.Flags().IntVar(&f.eol, "eol", d.EoLPercent, "end of life threshold in percent")
	cmd.Flags().IntVar(&f.cycles, "cycles", d.Cycles, "maximum cycle count")
	cmd.Flags().StringVar(&f.preset, "preset", "", "start from a preset; explicit flags override its values")
}

// resolve merges configured defaults, an optional preset and the flags the
// user actually set.
func (f *inputFlags) resolve(cmd *cobra.Command, cfg *config.Config) (degradation.Inputs, error) {
	in := cfg.Calculator.Defaults
	if f.preset != "" {
		presets, err := config.LoadPresets(cfg.Presets.Dir, cfg.Calculator.Bounds)
		if err != nil {
			return in, err
		}
		p, ok := config.FindPreset(presets, f.preset)
		if !ok {
			return in, fmt.Errorf("preset %q not found in %q", f.preset, cfg.Presets.Dir)
		}
		in = p.Inputs
	}
	fl := cmd.Flags()
	if fl.Changed("capacity") {
		in.CapacityKWh = f.capacity
	}
	if fl.Changed("dod") {
		in.DoDPercent = f.dod
	}
	if fl.Changed("eol") {
		in.EoLPercent = f.eol
	}
	if fl.Changed("cycles") {
		in.Cycles = f.cycles
	}
	return in, nil
}

// newSimulator builds a Simulator without event sinks.
func newSimulator(cfg *config.Config) (*simulation.Simulator, error) {
	return simulation.NewSimulator(simulation.Settings{
		Params:   cfg.Model,
		Defaults: cfg.Calculator.Defaults,
		Bounds:   cfg.Calculator.Bounds,
	}, nil, nil)
}
