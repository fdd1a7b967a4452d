package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and are replaced by Defaults in WithDefaults.
// Durations are Go duration strings ("90s", "1m30s").
type Config struct {
	Addr           string   `json:"addr" yaml:"addr" toml:"addr"`
	IdleThreshold  string   `json:"idle_threshold" yaml:"idle_threshold" toml:"idle_threshold"`
	InitialIdle    bool     `json:"initial_idle" yaml:"initial_idle" toml:"initial_idle"`
	Sources        []string `json:"sources" yaml:"sources" toml:"sources"`
	LogLevel       string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	ReportInterval string   `json:"report_interval" yaml:"report_interval" toml:"report_interval"`
	CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	// Breakpoints maps names to minimum viewport widths.
	Breakpoints map[string]int `json:"breakpoints" yaml:"breakpoints" toml:"breakpoints"`
}

// Environment overrides applied by ApplyEnv.
const (
	EnvAddr     = "REACTD_ADDR"
	EnvLogLevel = "REACTD_LOG_LEVEL"
)

// Defaults returns the settings used for anything a file leaves unset.
func Defaults() Config {
	return Config{
		Addr:           ":8080",
		IdleThreshold:  "60s",
		LogLevel:       "info",
		ReportInterval: "1m",
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := expandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// WithDefaults fills every unset field from Defaults.
func (c Config) WithDefaults() (Config, error) {
	out := c
	if err := mergo.Merge(&out, Defaults()); err != nil {
		return c, fmt.Errorf("apply defaults: %w", err)
	}
	return out, nil
}

// ApplyEnv overrides fields from the environment. getenv is os.Getenv in
// production.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return c
}

// Threshold parses IdleThreshold. Empty means zero, which the idle detector
// treats as its default.
func (c Config) Threshold() (time.Duration, error) {
	return parseDuration("idle_threshold", c.IdleThreshold)
}

// Report parses ReportInterval. Zero disables the periodic report.
func (c Config) Report() (time.Duration, error) {
	return parseDuration("report_interval", c.ReportInterval)
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %s", field, s)
	}
	return d, nil
}
