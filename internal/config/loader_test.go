package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.yaml", "addr: :8080\n: broken\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected YAML unmarshal error")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.json", `{ "addr": ":8080", "idle_threshold": }`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected JSON unmarshal error")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.toml", "addr=:8080\nidle_threshold\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected TOML unmarshal error")
	}
}

func TestWithDefaults_FillsOnlyUnset(t *testing.T) {
	cfg, err := Config{Addr: ":1234", Sources: []string{"keydown"}}.WithDefaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if cfg.Addr != ":1234" {
		t.Fatalf("addr overwritten: %q", cfg.Addr)
	}
	if cfg.IdleThreshold != "60s" || cfg.LogLevel != "info" || cfg.ReportInterval != "1m" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0] != "keydown" {
		t.Fatalf("sources changed: %v", cfg.Sources)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvAddr: ":5555", EnvLogLevel: "debug"}
	cfg := Config{Addr: ":1", LogLevel: "warn"}.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Addr != ":5555" || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	cfg = Config{Addr: ":1"}.ApplyEnv(func(string) string { return "" })
	if cfg.Addr != ":1" {
		t.Fatalf("empty env must not override: %+v", cfg)
	}
}

func TestDurations(t *testing.T) {
	cfg := Config{IdleThreshold: "1m30s", ReportInterval: ""}
	th, err := cfg.Threshold()
	if err != nil || th != 90*time.Second {
		t.Fatalf("threshold = %v, %v", th, err)
	}
	rep, err := cfg.Report()
	if err != nil || rep != 0 {
		t.Fatalf("report = %v, %v", rep, err)
	}

	if _, err := (Config{IdleThreshold: "soon"}).Threshold(); err == nil || !strings.Contains(err.Error(), "idle_threshold") {
		t.Fatalf("expected parse error naming the field, got %v", err)
	}
	if _, err := (Config{ReportInterval: "-5s"}).Report(); err == nil {
		t.Fatalf("expected negative interval error")
	}
}
