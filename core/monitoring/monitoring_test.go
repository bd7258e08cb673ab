package monitoring

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordMonitor struct {
	mu     sync.Mutex
	errs   []error
	tags   map[string]string
	panics []any
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
	r.tags = tags
}

func (r *recordMonitor) CapturePanic(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, v)
}

func (r *recordMonitor) Flush(time.Duration) {}

func (r *recordMonitor) panicCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.panics)
}

func TestCapture(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	t.Cleanup(func() { Init(nil) })

	Capture(errors.New("sink down"), "metrics")
	CaptureException(nil, nil)
	assert.Len(t, mon.errs, 1)
	assert.Equal(t, "metrics", mon.tags["module"])

	Init(nil)
	assert.IsType(t, NopMonitor{}, current)
}

func TestGoReportsPanics(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	t.Cleanup(func() { Init(nil) })

	Go(func() { panic("boom") })
	require.Eventually(t, func() bool { return mon.panicCount() == 1 }, time.Second, 5*time.Millisecond)

	CapturePanic(nil)
	assert.Equal(t, 1, mon.panicCount())
}

func TestPanicError(t *testing.T) {
	inner := errors.New("nil map")
	assert.ErrorIs(t, PanicError(inner), inner)
	assert.EqualError(t, PanicError("boom"), "panic: boom")
}
