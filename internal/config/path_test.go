package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cases := map[string]string{
		"":             "",
		"~":            home,
		"~/a/b.yaml":   filepath.Join(home, "a", "b.yaml"),
		"/abs/c.yaml":  "/abs/c.yaml",
		"rel/d.yaml":   "rel/d.yaml",
		"~other/e.yml": "~other/e.yml",
	}
	for in, want := range cases {
		got, err := expandHome(in)
		if err != nil {
			t.Fatalf("expandHome(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("expandHome(%q)=%q want %q", in, got, want)
		}
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	writeTempFile(t, home, "r.yaml", "addr: \":9100\"\n")

	cfg, err := Load("~/r.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Fatalf("addr=%q", cfg.Addr)
	}
}

func TestDiscover(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	old := SearchPaths
	t.Cleanup(func() { SearchPaths = old })
	SearchPaths = []string{"~/none.yaml", "~/.config/reactd/reactd.yaml"}

	noEnv := func(string) string { return "" }
	if _, ok := Discover(noEnv); ok {
		t.Fatalf("nothing should be found yet")
	}

	dir := filepath.Join(home, ".config", "reactd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeTempFile(t, dir, "reactd.yaml", "addr: \":1\"\n")
	if got, ok := Discover(noEnv); !ok || got != want {
		t.Fatalf("Discover=%q,%v want %q", got, ok, want)
	}

	explicit := writeTempFile(t, home, "explicit.toml", "addr = \":2\"\n")
	env := func(k string) string {
		if k == EnvConfig {
			return explicit
		}
		return ""
	}
	if got, ok := Discover(env); !ok || got != explicit {
		t.Fatalf("env path should win, got %q", got)
	}
}
