package tui

import (
	"strings"

	"github.com/kilianp07/lfpfade/pkg/chart"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders values as a row of at most width block characters
// scaled between their minimum and maximum.
func sparkline(values []float64, width int) string {
	idx := chart.Downsample(len(values), width)
	if len(idx) == 0 {
		return ""
	}
	lo, hi := values[idx[0]], values[idx[0]]
	for _, i := range idx {
		lo, hi = min(lo, values[i]), max(hi, values[i])
	}
	var b strings.Builder
	top := len(sparkBlocks) - 1
	for _, i := range idx {
		level := top / 2
		if hi > lo {
			level = int((values[i] - lo) / (hi - lo) * float64(top))
		}
		b.WriteRune(sparkBlocks[level])
	}
	return b.String()
}
