package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/lfpfade/core/degradation"
	"github.com/kilianp07/lfpfade/core/metrics"
)

// EnvPrefix marks environment overrides. Nested keys use "__", e.g.
// K_SERVER__ADDRESS=:9090.
const EnvPrefix = "K_"

type Config struct {
	Server     ServerConfig            `json:"server"`
	Calculator CalculatorConfig        `json:"calculator"`
	Model      degradation.ModelParams `json:"model"`
	Metrics    metrics.Config          `json:"metrics"`
	Logging    LoggingConfig           `json:"logging"`
	Sentry     SentryConfig            `json:"sentry"`
	Presets    PresetsConfig           `json:"presets"`
}

// Load reads the configuration file at path, applies environment overrides
// and defaults, and validates the result. An empty path loads defaults and
// environment overrides only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// SetDefaults fills every unset section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Calculator.SetDefaults()
	if c.Model.InitialSOH == 0 {
		c.Model.InitialSOH = degradation.DefaultInitialSOH
	}
	if c.Model.FadeExponent == 0 {
		c.Model.FadeExponent = degradation.DefaultFadeExponent
	}
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Calculator.Validate(); err != nil {
		return fmt.Errorf("calculator: %w", err)
	}
	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
