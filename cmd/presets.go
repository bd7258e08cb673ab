package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kilianp07/lfpfade/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Battery preset commands",
}

var presetsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the presets found in presets.dir",
	RunE:  runPresetsLs,
}

func init() {
	presetsCmd.AddCommand(presetsLsCmd)
	rootCmd.AddCommand(presetsCmd)
}

func runPresetsLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	presets, err := config.LoadPresets(cfg.Presets.Dir, cfg.Calculator.Bounds)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(presets) == 0 {
		_, err := fmt.Fprintf(out, "no presets in %q\n", cfg.Presets.Dir)
		return err
	}
	t := tablewriter.NewWriter(out)
	t.SetHeader([]string{"ID", "Name", "Capacity (kWh)", "DoD (%)", "EoL (%)", "Cycles"})
	for _, p := range presets {
		t.Append([]string{
			p.ID,
			p.Name,
			strconv.FormatFloat(p.Inputs.CapacityKWh, 'f', -1, 64),
			strconv.Itoa(p.Inputs.DoDPercent),
			strconv.Itoa(p.Inputs.EoLPercent),
			strconv.Itoa(p.Inputs.Cycles),
		})
	}
	t.Render()
	return nil
}
