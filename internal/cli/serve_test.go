package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestResolveConfig_Layering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reactd.yaml")
	body := "addr: \":7000\"\nidle_threshold: 5s\nlog_level: warn\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	env := map[string]string{"REACTD_ADDR": ":7100"}
	getenv := func(k string) string { return env[k] }

	fc, err := resolveConfig(&Config{ConfigPath: path, LogLevel: "info"}, getenv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if fc.Addr != ":7100" {
		t.Fatalf("env should override file addr, got %q", fc.Addr)
	}
	if fc.LogLevel != "warn" {
		t.Fatalf("file log level should win over flag default, got %q", fc.LogLevel)
	}
	if d, _ := fc.Threshold(); d != 5*time.Second {
		t.Fatalf("threshold: %s", d)
	}
	if fc.ReportInterval != "1m" {
		t.Fatalf("default report interval missing: %q", fc.ReportInterval)
	}

	fc, err = resolveConfig(&Config{ConfigPath: path, Addr: ":7200"}, getenv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if fc.Addr != ":7200" {
		t.Fatalf("flag should override env addr, got %q", fc.Addr)
	}
}

func TestResolveConfig_ExplicitLogLevelWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactd.toml")
	if err := os.WriteFile(path, []byte("log_level = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	noEnv := func(string) string { return "" }

	fc, err := resolveConfig(&Config{ConfigPath: path, LogLevel: "debug", LogLevelSet: true}, noEnv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if fc.LogLevel != "debug" {
		t.Fatalf("explicit --log-level should override file, got %q", fc.LogLevel)
	}

	fc, err = resolveConfig(&Config{LogLevel: "error", LogLevelSet: true}, func(k string) string {
		if k == "REACTD_LOG_LEVEL" {
			return "warn"
		}
		return ""
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if fc.LogLevel != "error" {
		t.Fatalf("explicit --log-level should override env, got %q", fc.LogLevel)
	}
}

func TestResolveConfig_BadFileIsUsageError(t *testing.T) {
	_, err := resolveConfig(&Config{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}, func(string) string { return "" })
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRunServer_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv, zerolog.Nop(), make(chan error)) }()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServer: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("runServer did not return")
	}
}

func TestRunServer_LoopFailureStopsServer(t *testing.T) {
	loopDone := make(chan error, 1)
	loopDone <- errors.New("loop died")
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	err := runServer(context.Background(), srv, zerolog.Nop(), loopDone)
	if err == nil || err.Error() != "event loop: loop died" {
		t.Fatalf("unexpected error: %v", err)
	}
}
