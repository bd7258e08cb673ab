package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/lfpfade/core/degradation"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `server:
  address: ":9090"
  mode: "debug"
  cors_origins: ["http://localhost:5173"]
calculator:
  defaults:
    capacity_kwh: 10
    dod_percent: 90
    eol_percent: 70
    cycles: 4000
model:
  fade_exponent: 1.5
metrics:
  prometheus_port: ":2112"
  sinks:
    - type: "nop"
logging:
  level: "DEBUG"
presets:
  dir: "presets"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.address", cfg.Server.Address, ":9090"},
		{"server.mode", cfg.Server.Mode, "debug"},
		{"server.cors_origins", len(cfg.Server.CORSOrigins), 1},
		{"calculator.defaults", cfg.Calculator.Defaults, degradation.Inputs{CapacityKWh: 10, DoDPercent: 90, EoLPercent: 70, Cycles: 4000}},
		{"calculator.bounds", cfg.Calculator.Bounds, degradation.DefaultBounds()},
		{"model.initial_soh", cfg.Model.InitialSOH, degradation.DefaultInitialSOH},
		{"model.fade_exponent", cfg.Model.FadeExponent, 1.5},
		{"metrics.prometheus_port", cfg.Metrics.PrometheusPort, ":2112"},
		{"metrics.sinks", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.format", cfg.Logging.Format, "json"},
		{"presets.dir", cfg.Presets.Dir, "presets"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, degradation.DefaultInputs(), cfg.Calculator.Defaults)
	assert.Equal(t, degradation.DefaultParams(), cfg.Model)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("K_SERVER__ADDRESS", ":7070")
	t.Setenv("K_CALCULATOR__DEFAULTS__CYCLES", "3000")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, 3000, cfg.Calculator.Defaults.Cycles)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"logging":{"level":"warn","format":"console"}}`), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"bad level":           "logging:\n  level: verbose\n",
		"bad mode":            "server:\n  mode: fast\n",
		"defaults off bounds": "calculator:\n  defaults:\n    cycles: 6100\n",
		"bad exponent":        "model:\n  fade_exponent: -1\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
	_, err := Load("config.toml")
	require.Error(t, err)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Config, 16)
	require.NoError(t, Watch(ctx, path, func(c *Config) {
		select {
		case got <- c:
		default:
		}
	}, nil))

	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644))
	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-got:
			// A truncating write can surface an intermediate empty file.
			if c.Logging.Level == "debug" {
				return
			}
		case <-deadline:
			t.Fatal("no reload")
		}
	}
}
