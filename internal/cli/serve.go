package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"reactd/internal/config"
	"reactd/internal/hooks"
	"reactd/internal/httpapi"
	"reactd/internal/manager"
	"reactd/internal/report"
)

const shutdownTimeout = 5 * time.Second

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	corsHeaders = []string{"Content-Type", "X-Log-Level"}
)

// resolveConfig layers file, environment and flags, then fills defaults.
func resolveConfig(cfg *Config, getenv func(string) string) (config.Config, error) {
	var fc config.Config
	path := cfg.ConfigPath
	if path == "" {
		path, _ = config.Discover(getenv)
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("%w: %v", errUsage, err)
		}
		fc = loaded
	}
	fc = fc.ApplyEnv(getenv)
	if cfg.Addr != "" {
		fc.Addr = cfg.Addr
	}
	if cfg.LogLevelSet || fc.LogLevel == "" {
		fc.LogLevel = cfg.LogLevel
	}
	return fc.WithDefaults()
}

func serve(ctx context.Context, cfg *Config) error {
	fc, err := resolveConfig(cfg, os.Getenv)
	if err != nil {
		return err
	}
	threshold, err := fc.Threshold()
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	every, err := fc.Report()
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	log := newLogger(os.Stderr, fc.LogLevel)
	hooks.SetLogger(log)
	httpapi.SetLogger(log)

	mgr, err := manager.NewWithConfig(manager.ManagerConfig{
		IdleThreshold: threshold,
		InitialIdle:   fc.InitialIdle,
		Sources:       fc.Sources,
		Breakpoints:   fc.Breakpoints,
		Logger:        log,
	})
	if err != nil {
		return err
	}
	if len(fc.CORSOrigins) > 0 {
		httpapi.SetCORSOptions(true, fc.CORSOrigins, corsMethods, corsHeaders)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	loopDone := make(chan error, 1)
	go func() { loopDone <- mgr.Run(ctx) }()

	if every > 0 {
		rep, err := report.New(mgr, every, report.WithLogger(log))
		if err != nil {
			return err
		}
		rep.Start()
		defer func() { _ = rep.Shutdown() }()
	}

	srv := &http.Server{
		Addr:              fc.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return runServer(ctx, srv, log, loopDone)
}

// runServer serves until ctx is done or the listener fails, then drains.
func runServer(ctx context.Context, srv *http.Server, log zerolog.Logger, loopDone <-chan error) error {
	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("reactd listening")
		srvErr <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-srvErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-loopDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			runErr = fmt.Errorf("event loop: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("shutdown: %w", err)
	}
	return runErr
}
