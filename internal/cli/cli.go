// Package cli implements the reactd command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds values from persistent flags and the serve/timer subcommands.
type Config struct {
	ConfigPath string
	LogLevel   string
	Addr       string

	// LogLevelSet is true when --log-level was given explicitly.
	LogLevelSet bool

	// Timer subcommands
	After time.Duration
	Every time.Duration
	Count int

	Out io.Writer
}

func defaultConfig() *Config {
	return &Config{
		LogLevel: envStr("REACTD_LOG_LEVEL", "info"),
		Count:    3,
		Out:      os.Stdout,
	}
}

// errUsage marks errors caused by bad invocation rather than a failed run.
var errUsage = errors.New("usage error")

// MainWithArgs runs the command tree and returns a process exit code:
// 0 on success, 2 for usage errors, 1 otherwise.
func MainWithArgs(args []string) int {
	cfg := defaultConfig()
	root := buildRootCmdWith(cfg)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// Main returns an exit code for use by cmd/reactd.
func Main() int { return MainWithArgs(os.Args[1:]) }
