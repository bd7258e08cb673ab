package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/lfpfade/core/degradation"
)

// Format selects a curve serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case. An empty string means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// FileName returns a download name describing the simulated configuration.
func FileName(in degradation.Inputs, f Format) string {
	return fmt.Sprintf("lfp_fade_%gkwh_dod%d_eol%d_%dcycles.%s", in.CapacityKWh, in.DoDPercent, in.EoLPercent, in.Cycles, f)
}

// Row is one exported curve sample.
type Row struct {
	Cycle             int     `json:"cycle"`
	SOH               float64 `json:"soh"`
	UsableCapacityKWh float64 `json:"usable_capacity_kwh"`
}

// Rows flattens the curve into samples.
func Rows(c degradation.Curve) ([]Row, error) {
	if c.Len() == 0 || len(c.SOH) != c.Len() || len(c.UsableCapacity) != c.Len() {
		return nil, degradation.ErrEmptyCurve
	}
	rows := make([]Row, c.Len())
	for i := range rows {
		rows[i] = Row{Cycle: c.Cycles[i], SOH: c.SOH[i], UsableCapacityKWh: c.UsableCapacity[i]}
	}
	return rows, nil
}

// Write serializes the curve in format f.
func Write(w io.Writer, c degradation.Curve, f Format) error {
	if f == FormatJSON {
		return WriteJSON(w, c)
	}
	return WriteCSV(w, c)
}

// WriteJSON writes the curve samples to w as a JSON array.
func WriteJSON(w io.Writer, c degradation.Curve) error {
	rows, err := Rows(c)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(rows)
}

// WriteCSV writes the curve to w with a cycle,soh,usable_capacity_kwh header.
// Floats use the shortest representation that round-trips.
func WriteCSV(w io.Writer, c degradation.Curve) error {
	rows, err := Rows(c)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"cycle", "soh", "usable_capacity_kwh"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Cycle),
			strconv.FormatFloat(r.SOH, 'f', -1, 64),
			strconv.FormatFloat(r.UsableCapacityKWh, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
