// Package config loads layered configuration: defaults, then
// moodgraph.toml, then MOODGRAPH_* environment variables, then flags.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all settings for the moodgraph server.
type Config struct {
	Port        int    `koanf:"port"`
	OpenBrowser bool   `koanf:"open"`
	Watch       bool   `koanf:"watch"`
	Layouts     string `koanf:"layouts"`
	Mood        string `koanf:"mood"`
	Verbosity   string `koanf:"verbosity"`
	VerboseCnt  int    `koanf:"verbose"`
	JSONLogs    bool   `koanf:"json-logs"`
}

// Load resolves configuration with priority: flags > env > config file >
// defaults.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"port":      8080,
		"open":      true,
		"watch":     false,
		"layouts":   "",
		"mood":      "",
		"verbosity": "",
		"verbose":   0,
		"json-logs": false,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// moodgraph.toml is optional; absence is not an error.
	_ = k.Load(file.Provider("moodgraph.toml"), toml.Parser())

	// MOODGRAPH_PORT=9090 -> port, MOODGRAPH_JSON_LOGS=true -> json-logs.
	if err := k.Load(env.Provider("MOODGRAPH_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "MOODGRAPH_"))
		return strings.ReplaceAll(key, "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Watch && cfg.Layouts == "" {
		return nil, fmt.Errorf("--watch requires --layouts")
	}

	return &cfg, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
