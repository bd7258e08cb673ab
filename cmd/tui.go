package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/lfpfade/ui/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal calculator",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sim, err := newSimulator(cfg)
		if err != nil {
			return err
		}
		return tui.Run(sim)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
