package monitoring

import (
	"fmt"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// CapturePanic records a value obtained from recover().
	CapturePanic(v any)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) CapturePanic(any)                          {}
func (NopMonitor) Flush(time.Duration)                       {}

var current Monitor = NopMonitor{}

// Init sets the global monitor implementation. A nil monitor restores the
// no-op default.
func Init(m Monitor) {
	if m == nil {
		m = NopMonitor{}
	}
	current = m
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	current.CaptureException(err, tags)
}

// Capture records err tagged with the module that observed it.
func Capture(err error, module string) {
	CaptureException(err, map[string]string{"module": module})
}

// CapturePanic records a recovered panic value. Nil values are ignored.
func CapturePanic(v any) {
	if v == nil {
		return
	}
	current.CapturePanic(v)
}

// Go runs fn in a goroutine, reporting and swallowing any panic.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				CapturePanic(r)
			}
		}()
		fn()
	}()
}

// PanicError converts a recovered value into an error.
func PanicError(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", v)
}

// Flush flushes buffered events.
func Flush(d time.Duration) { current.Flush(d) }
