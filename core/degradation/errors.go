package degradation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration indicates an input scalar outside its domain.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrNonDegrading indicates an end-of-life fraction at or above the
	// initial state of health, which yields a flat or rising curve. It is
	// always reported together with ErrInvalidConfiguration.
	ErrNonDegrading = errors.New("end of life at or above initial state of health")
	// ErrEmptyCurve is returned when summarizing a curve without samples.
	ErrEmptyCurve = errors.New("empty curve")
	// ErrNotReached is returned by CyclesToSOH when the curve never falls to
	// the requested level.
	ErrNotReached = errors.New("state of health level not reached")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func fmtNonDegrading(eol, initialSOH float64) error {
	return fmt.Errorf("%w: %w: eol_fraction %v, initial_soh %v", ErrInvalidConfiguration, ErrNonDegrading, eol, initialSOH)
}
