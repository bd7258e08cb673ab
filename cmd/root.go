package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/lfpfade/app"
	"github.com/kilianp07/lfpfade/config"
	"github.com/kilianp07/lfpfade/core/monitoring"
	"github.com/kilianp07/lfpfade/infra/logger"
	inframon "github.com/kilianp07/lfpfade/infra/monitoring"
)

var (
	cfgPath string
	watch   bool
)

var rootCmd = &cobra.Command{
	Use:   "lfpfade",
	Short: "LFP battery degradation calculator",
	Long: "lfpfade estimates how the usable capacity of an LFP battery pack fades\n" +
		"over its cycle life. Without a subcommand it serves the HTTP API.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload the configuration file when it changes")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configuration and applies the logging settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mon, err := inframon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	monitoring.Init(mon)
	defer monitoring.Flush(2 * time.Second)

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	if watch {
		if err := svc.Watch(ctx, cfgPath); err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
	}
	return svc.Run(ctx)
}

// newContext is the context of one-shot subcommands.
func newContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}
