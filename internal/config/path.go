package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names a config file to use when --config is not given.
const EnvConfig = "REACTD_CONFIG"

// SearchPaths are tried in order by Discover.
var SearchPaths = []string{"reactd.yaml", "reactd.toml", "reactd.json", "~/.config/reactd/reactd.yaml"}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// Discover returns the first config file that exists, checking the
// REACTD_CONFIG variable before SearchPaths. ok is false when none exist.
func Discover(getenv func(string) string) (path string, ok bool) {
	candidates := SearchPaths
	if v := getenv(EnvConfig); v != "" {
		candidates = append([]string{v}, SearchPaths...)
	}
	for _, c := range candidates {
		p, err := expandHome(c)
		if err != nil {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
