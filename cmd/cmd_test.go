package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/lfpfade/config"
	"github.com/kilianp07/lfpfade/core/degradation"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	presets := filepath.Join(dir, "presets")
	require.NoError(t, os.Mkdir(presets, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(presets, "wall.yaml"), []byte(`battery:
  name: "Wall pack"
  capacity_kwh: 13.5
  dod_percent: 90
  eol_percent: 70
  cycles: 8000
`), 0o644))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: error\npresets:\n  dir: "+presets+"\n"), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSimulateCSV(t *testing.T) {
	cfg := writeConfig(t)
	out := filepath.Join(t.TempDir(), "curve.csv")

	_, err := execute(t, "simulate", "-c", cfg, "--cycles", "2000", "--format", "csv", "--out", out)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2002)
	assert.Equal(t, []string{"cycle", "soh", "usable_capacity_kwh"}, records[0])
	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "2000", records[2001][0])
}

func TestPresetsLs(t *testing.T) {
	cfg := writeConfig(t)
	out, err := execute(t, "presets", "ls", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "wall")
	assert.Contains(t, out, "Wall pack")
	assert.Contains(t, out, "8000")
}

func TestResolveInputs(t *testing.T) {
	cfg, err := config.Load(writeConfig(t))
	require.NoError(t, err)

	newCmd := func(args ...string) (*cobra.Command, *inputFlags) {
		var f inputFlags
		c := &cobra.Command{Use: "x"}
		f.register(c)
		require.NoError(t, c.Flags().Parse(args))
		return c, &f
	}

	t.Run("defaults", func(t *testing.T) {
		c, f := newCmd()
		in, err := f.resolve(c, cfg)
		require.NoError(t, err)
		assert.Equal(t, cfg.Calculator.Defaults, in)
	})

	t.Run("preset with override", func(t *testing.T) {
		c, f := newCmd("--preset", "wall", "--eol", "75")
		in, err := f.resolve(c, cfg)
		require.NoError(t, err)
		assert.Equal(t, degradation.Inputs{CapacityKWh: 13.5, DoDPercent: 90, EoLPercent: 75, Cycles: 8000}, in)
	})

	t.Run("unknown preset", func(t *testing.T) {
		c, f := newCmd("--preset", "nope")
		_, err := f.resolve(c, cfg)
		assert.ErrorContains(t, err, "nope")
	})
}

func TestWriteTable(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	sim, err := newSimulator(cfg)
	require.NoError(t, err)
	res, err := sim.Run(context.Background(), cliSource, degradation.DefaultInputs())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, res, 5))
	out := buf.String()
	assert.Contains(t, out, "Usable Capacity at Start")
	assert.Contains(t, out, "4.20 kWh")
	assert.Contains(t, out, "3.20 kWh")
	assert.Contains(t, out, "Threshold: 80% EOL")
	assert.Contains(t, out, "6000")
	assert.False(t, strings.Contains(out, "warning:"))
}

func TestChartRejectsMaxPointsBelowTwo(t *testing.T) {
	cfg := writeConfig(t)
	out := filepath.Join(t.TempDir(), "chart.html")

	_, err := execute(t, "chart", "-c", cfg, "--max-points", "1", "--out", out)
	require.ErrorContains(t, err, "--max-points")
	assert.NoFileExists(t, out)
}
