package simulation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/lfpfade/api/models"
	"github.com/kilianp07/lfpfade/config"
	"github.com/kilianp07/lfpfade/core/degradation"
	coresim "github.com/kilianp07/lfpfade/core/simulation"
	"github.com/kilianp07/lfpfade/pkg/chart"
	"github.com/kilianp07/lfpfade/pkg/export"
)

// Source tags simulation events issued through the HTTP API.
const Source = "api"

// PresetSource returns the currently loaded presets.
type PresetSource func() []config.Preset

// Handler serves the calculator endpoints.
type Handler struct {
	sim     *coresim.Simulator
	presets PresetSource
}

// NewHandler creates a Handler. presets may be nil.
func NewHandler(sim *coresim.Simulator, presets PresetSource) *Handler {
	if presets == nil {
		presets = func() []config.Preset { return nil }
	}
	return &Handler{sim: sim, presets: presets}
}

// Defaults handles GET /api/v1/defaults.
func (h *Handler) Defaults(c *gin.Context) {
	set := h.sim.Settings()
	c.JSON(http.StatusOK, models.DefaultsResponse{Defaults: set.Defaults, Bounds: set.Bounds, Model: set.Params})
}

// Presets handles GET /api/v1/presets.
func (h *Handler) Presets(c *gin.Context) {
	ps := h.presets()
	if ps == nil {
		ps = []config.Preset{}
	}
	c.JSON(http.StatusOK, models.PresetsResponse{Presets: ps, Count: len(ps)})
}

// Simulate handles POST /api/v1/simulate.
func (h *Handler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}
	base := h.sim.Settings().Defaults
	if req.Preset != "" {
		p, ok := config.FindPreset(h.presets(), req.Preset)
		if !ok {
			c.JSON(http.StatusNotFound, models.NewError(models.CodePresetNotFound, fmt.Sprintf("preset %q not found", req.Preset)))
			return
		}
		base = p.Inputs
	}
	res, ok := h.run(c, req.Apply(base))
	if !ok {
		return
	}
	resp := models.SimulateResponse{
		ID:       res.ID,
		Inputs:   res.Inputs,
		Config:   res.Config,
		Summary:  res.Summary,
		Warnings: res.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if req.IncludeCurve {
		resp.Curve = &res.Curve
	}
	c.JSON(http.StatusOK, resp)
}

// Export handles GET /api/v1/simulate/export.
func (h *Handler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}
	in, ok := h.queryInputs(c)
	if !ok {
		return
	}
	res, ok := h.run(c, in)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, res.Curve, format); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.NewError(models.CodeInternal, err.Error()))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(res.Inputs, format)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Chart handles GET /chart.
func (h *Handler) Chart(c *gin.Context) {
	in, ok := h.queryInputs(c)
	if !ok {
		return
	}
	res, ok := h.run(c, in)
	if !ok {
		return
	}
	var buf bytes.Buffer
	sim := chart.Simulation{Config: res.Config, Curve: res.Curve, Summary: res.Summary}
	if err := chart.Render(&buf, res.Inputs, sim, chart.Options{}); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.NewError(models.CodeInternal, err.Error()))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) run(c *gin.Context, in degradation.Inputs) (coresim.Result, bool) {
	res, err := h.sim.Run(c.Request.Context(), Source, in)
	if err == nil {
		return res, true
	}
	switch {
	case coresim.IsInvalid(err):
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidConfiguration, err.Error()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, models.NewError(models.CodeCancelled, err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.NewError(models.CodeInternal, err.Error()))
	}
	return coresim.Result{}, false
}

// queryInputs reads capacity_kwh, dod_percent, eol_percent and cycles from
// the query string. Missing values fall back to the calculator defaults.
func (h *Handler) queryInputs(c *gin.Context) (degradation.Inputs, bool) {
	in := h.sim.Settings().Defaults
	if v, ok := c.GetQuery("capacity_kwh"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			badQuery(c, "capacity_kwh", v)
			return in, false
		}
		in.CapacityKWh = f
	}
	for _, q := range []struct {
		name string
		dst  *int
	}{
		{"dod_percent", &in.DoDPercent},
		{"eol_percent", &in.EoLPercent},
		{"cycles", &in.Cycles},
	} {
		v, ok := c.GetQuery(q.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			badQuery(c, q.name, v)
			return in, false
		}
		*q.dst = n
	}
	return in, true
}

func badQuery(c *gin.Context, name, v string) {
	c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, fmt.Sprintf("%s: invalid value %q", name, v)))
}
