package config

import (
	"fmt"
	"time"
)

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Address string `json:"address"`
	// Mode is the gin mode: "release", "debug" or "test".
	Mode        string   `json:"mode"`
	CORSOrigins []string `json:"cors_origins"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		c.ShutdownTimeoutSeconds = 5
	}
}

func (c ServerConfig) Validate() error {
	switch c.Mode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("unknown mode %s", c.Mode)
	}
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
