package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kilianp07/lfpfade/core/degradation"
	"github.com/kilianp07/lfpfade/core/simulation"
	"github.com/kilianp07/lfpfade/pkg/chart"
	"github.com/kilianp07/lfpfade/pkg/export"
)

const cliSource = "cli"

var (
	simFlags  inputFlags
	simFormat string
	simOut    string
	simRows   int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Compute a degradation curve",
	Example: "  lfpfade simulate --capacity 5 --dod 80 --eol 80 --cycles 6000\n" +
		"  lfpfade simulate --format csv --out curve.csv",
	RunE: runSimulate,
}

func init() {
	simFlags.register(simulateCmd)
	simulateCmd.Flags().StringVarP(&simFormat, "format", "f", "table", "output format: table, csv or json")
	simulateCmd.Flags().StringVarP(&simOut, "out", "o", "", "write to file instead of stdout")
	simulateCmd.Flags().IntVar(&simRows, "rows", 21, "curve samples shown in table format")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, cancel := newContext(cmd)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	in, err := simFlags.resolve(cmd, cfg)
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

	w, closeOut, err := output(cmd, simOut)
	if err != nil {
		return err
	}
	defer closeOut()

	if simFormat == "table" {
		return writeTable(w, res, simRows)
	}
	format, err := export.ParseFormat(simFormat)
	if err != nil {
		return err
	}
	return export.Write(w, res.Curve, format)
}

// output returns stdout or the created file at path.
func output(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "close %s: %v\n", path, err)
		}
	}, nil
}

func writeTable(w io.Writer, res simulation.Result, rows int) error {
	fmt.Fprintf(w, "%s\n\n", res.Inputs)

	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"Metric", "Value", "Note"})
	summary.SetAutoWrapText(false)
	for _, c := range chart.SummaryCards(res.Config, res.Summary) {
		summary.Append([]string{c.Title, c.Value, c.Subtitle})
	}
	summary.Append([]string{"Capacity Fade", fmt.Sprintf("%.2f kWh", res.Summary.FadeKWh), ""})
	summary.Append([]string{"Lifetime Throughput", fmt.Sprintf("%.0f kWh", res.Summary.LifetimeThroughputKWh), "sum over cycles 1..N"})
	summary.Append([]string{"Mean SOH", fmt.Sprintf("%.2f%%", res.Summary.MeanSOH*100), ""})
	if n, err := degradation.CyclesToSOH(res.Curve, 1.0); err == nil {
		summary.Append([]string{"Cycles to 100% SOH", strconv.Itoa(n), ""})
	}
	summary.Render()
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	fmt.Fprintln(w)

	curve := tablewriter.NewWriter(w)
	curve.SetHeader([]string{"Cycle", "SOH (%)", "Usable Capacity (kWh)"})
	curve.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, i := range chart.Downsample(res.Curve.Len(), rows) {
		curve.Append([]string{
			strconv.Itoa(res.Curve.Cycles[i]),
			fmt.Sprintf("%.2f", res.Curve.SOH[i]*100),
			fmt.Sprintf("%.3f", res.Curve.UsableCapacity[i]),
		})
	}
	curve.Render()
	return nil
}
