package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/lfpfade/pkg/chart"
)

var (
	chartFlags     inputFlags
	chartOut       string
	chartMaxPoints int
)

var chartCmd = &cobra.Command{
	Use:     "chart",
	Short:   "Render the degradation chart as an HTML page",
	Example: "  lfpfade chart --eol 70 --out chart.html",
	RunE:    runChart,
}

func init() {
	chartFlags.register(chartCmd)
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "chart.html", "output file, - for stdout")
	chartCmd.Flags().IntVar(&chartMaxPoints, "max-points", chart.DefaultMaxPoints, "samples drawn per series")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	if chartMaxPoints < chart.MinMaxPoints {
		return fmt.Errorf("--max-points must be >= %d, got %d", chart.MinMaxPoints, chartMaxPoints)
	}
	ctx, cancel := newContext(cmd)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	in, err := chartFlags.resolve(cmd, cfg)
	if err != nil {
		return err
	}
	sim, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	res, err := sim.Run(ctx, cliSource, in)
	if err != nil {
		return err
	}
	path := chartOut
	if path == "-" {
		path = ""
	}
	w, closeOut, err := output(cmd, path)
	if err != nil {
		return err
	}
	defer closeOut()
	return chart.Render(w, res.Inputs, chart.Simulation{Config: res.Config, Curve: res.Curve, Summary: res.Summary},
		chart.Options{MaxPoints: chartMaxPoints})
}
