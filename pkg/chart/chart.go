package chart

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/lfpfade/core/degradation"
)

const (
	capacityColor = "#2ca02c"
	sohColor      = "#ff7f0e"
	// DefaultMaxPoints bounds the samples drawn per series.
	DefaultMaxPoints = 1000
	// MinMaxPoints is the smallest useful bound: the first and last sample.
	MinMaxPoints = 2
)

// Options tune the rendered page.
type Options struct {
	Title     string
	MaxPoints int
	Width     string
	Height    string
}

func (o *Options) setDefaults() {
	if o.Title == "" {
		o.Title = "Capacity Degradation Graph"
	}
	if o.MaxPoints == 0 {
		o.MaxPoints = DefaultMaxPoints
	}
	if o.Width == "" {
		o.Width = "900px"
	}
	if o.Height == "" {
		o.Height = "450px"
	}
}

// NewLine builds the dual-axis degradation chart: usable capacity on the
// left axis, state of health in percent on the right axis. Only the drawn
// samples are thinned; curve is not modified.
func NewLine(curve degradation.Curve, o Options) *charts.Line {
	o.setDefaults()
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Lithium Battery Degradation Simulator",
			Width:     o.Width,
			Height:    o.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "8%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Cycle Count"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Usable Capacity (kWh)",
			AxisLabel: &opts.AxisLabel{Formatter: "{value}"},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Type: "dashed"}},
		}),
		charts.WithAnimation(false),
	)
	line.ExtendYAxis(opts.YAxis{
		Name:      "State of Health (%)",
		Position:  "right",
		AxisLabel: &opts.AxisLabel{Formatter: "{value}%"},
	})

	idx := Downsample(curve.Len(), o.MaxPoints)
	xs := make([]string, len(idx))
	usable := make([]opts.LineData, len(idx))
	soh := make([]opts.LineData, len(idx))
	for j, i := range idx {
		xs[j] = strconv.Itoa(curve.Cycles[i])
		usable[j] = opts.LineData{Value: round(curve.UsableCapacity[i], 4)}
		soh[j] = opts.LineData{Value: round(curve.SOH[i]*100, 3)}
	}

	line.SetXAxis(xs).
		AddSeries("Usable Capacity", usable,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: capacityColor, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: capacityColor}),
		).
		AddSeries("State of Health", soh,
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1, ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: sohColor, Width: 2, Type: "dashed"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: sohColor}),
		)
	return line
}

// RenderChart writes the standalone chart page to w.
func RenderChart(w io.Writer, curve degradation.Curve, o Options) error {
	return NewLine(curve, o).Render(w)
}

type pageData struct {
	Title   string
	Inputs  string
	Cards   []Card
	Element template.HTML
	Script  template.HTML
	Caption string
}

// Render writes an HTML page with the summary cards followed by the chart.
func Render(w io.Writer, in degradation.Inputs, res Simulation, o Options) error {
	if res.Curve.Len() == 0 {
		return degradation.ErrEmptyCurve
	}
	snippet := NewLine(res.Curve, o).RenderSnippet()
	return pageTmpl.Execute(w, pageData{
		Title:   "Lithium Battery Degradation Simulator",
		Inputs:  in.String(),
		Cards:   SummaryCards(res.Config, res.Summary),
		Element: template.HTML(snippet.Element),
		Script:  template.HTML(snippet.Script),
		Caption: fmt.Sprintf("This simulation assumes a typical LFP cell degradation curve with slight overcapacity at start-of-life (%s%% SOH).", percent(res.Summary.StartSOH)),
	})
}

// Simulation is the model output drawn on a page.
type Simulation struct {
	Config  degradation.SimulationConfig
	Curve   degradation.Curve
	Summary degradation.Summary
}

func round(f float64, places int) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', places, 64), 64)
	return v
}
