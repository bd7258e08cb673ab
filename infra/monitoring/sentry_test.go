package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/lfpfade/config"
	coremon "github.com/kilianp07/lfpfade/core/monitoring"
)

func TestNewSentryMonitorDisabled(t *testing.T) {
	mon, err := NewSentryMonitor(config.SentryConfig{})
	require.NoError(t, err)
	assert.IsType(t, coremon.NopMonitor{}, mon)
}

func TestNewSentryMonitorInvalidDSN(t *testing.T) {
	_, err := NewSentryMonitor(config.SentryConfig{DSN: "://not-a-dsn"})
	require.Error(t, err)
}

func TestSentryMonitorCaptures(t *testing.T) {
	// Project 1 on a closed local port; events are dropped by the transport.
	mon, err := NewSentryMonitor(config.SentryConfig{DSN: "http://public@127.0.0.1:1/1", Environment: "test"})
	require.NoError(t, err)
	mon.CaptureException(errors.New("boom"), map[string]string{"module": "api"})
	mon.CaptureException(nil, nil)
	mon.CapturePanic("kaboom")
	mon.Flush(10 * time.Millisecond)
}
