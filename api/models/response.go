package models

import (
	"github.com/kilianp07/lfpfade/config"
	"github.com/kilianp07/lfpfade/core/degradation"
)

// Error codes returned in ErrorDetail.Code.
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodePresetNotFound       = "PRESET_NOT_FOUND"
	CodeCancelled            = "REQUEST_CANCELLED"
	CodeInternal             = "INTERNAL_ERROR"
)

// ErrorResponse wraps every API error.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes an API error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError builds an ErrorResponse.
func NewError(code, msg string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: msg}}
}

// SimulateResponse is returned by POST /api/v1/simulate.
type SimulateResponse struct {
	ID       string                       `json:"id"`
	Inputs   degradation.Inputs           `json:"inputs"`
	Config   degradation.SimulationConfig `json:"config"`
	Summary  degradation.Summary          `json:"summary"`
	Warnings []string                     `json:"warnings"`
	Curve    *degradation.Curve           `json:"curve,omitempty"`
}

// DefaultsResponse is returned by GET /api/v1/defaults.
type DefaultsResponse struct {
	Defaults degradation.Inputs      `json:"defaults"`
	Bounds   degradation.Bounds      `json:"bounds"`
	Model    degradation.ModelParams `json:"model"`
}

// PresetsResponse is returned by GET /api/v1/presets.
type PresetsResponse struct {
	Presets []config.Preset `json:"presets"`
	Count   int             `json:"count"`
}
