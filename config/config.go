// Package config loads and validates the application configuration from a
// YAML or JSON file, with environment overrides under the GRIDGAP_ prefix.
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

	"github.com/vanditkanudia/gridgap/core/dispatch"
	"github.com/vanditkanudia/gridgap/core/factory"
	"github.com/vanditkanudia/gridgap/core/metrics"
	"github.com/vanditkanudia/gridgap/core/runner"
	"github.com/vanditkanudia/gridgap/infra/mqtt"
)

type Config struct {
	Plan     PlanConfig           `json:"plan"`
	Profile  factory.ModuleConfig `json:"profile"`
	Run      runner.Config        `json:"run"`
	Dispatch dispatch.Config      `json:"dispatch"`
	Results  ResultsConfig        `json:"results"`
	Metrics  metrics.Config       `json:"metrics"`
	MQTT     mqtt.Config          `json:"mqtt"`
	Sentry   SentryConfig         `json:"sentry"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("GRIDGAP_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "gridgap_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Dispatch.SetDefaults()
	cfg.Results.SetDefaults()
	if cfg.Profile.Type == "" {
		cfg.Profile.Type = "synthetic"
	}
	if err := cfg.Plan.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Results.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
