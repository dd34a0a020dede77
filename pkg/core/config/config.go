// Package config loads config/app.yaml. Secrets never live here; API keys
// come from the environment (see cmd/api).
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"fiscal_impact/pkg/core/agent"
)

// Config is the full application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Agent    agent.Config `yaml:"agent"`
	Analysis struct {
		FallbackPercent float64 `yaml:"fallback_percent"`
		LenientParser   bool    `yaml:"lenient_parser"`
	} `yaml:"analysis"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Agent.ActiveProvider = "gemini"
	cfg.Analysis.FallbackPercent = 5.0
	return cfg
}

// Load reads a YAML config file on top of the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Analysis.FallbackPercent <= 0 {
		cfg.Analysis.FallbackPercent = 5.0
	}
	return cfg, nil
}
