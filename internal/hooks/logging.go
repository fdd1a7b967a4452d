package hooks

import "github.com/rs/zerolog"

// logger is the package logger; it discards by default.
var logger = zerolog.Nop()

// SetLogger installs a structured logger used by hooks for debug tracing.
func SetLogger(l zerolog.Logger) { logger = l.With().Str("component", "hooks").Logger() }
