package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reactd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Dispatch(ctx context.Context, name string, req types.EventRequest) (int, error)
	SetHidden(ctx context.Context, hidden bool) (bool, error)
	SetThreshold(ctx context.Context, d time.Duration) error
	Idle() types.IdleResponse
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	// @Summary      Dispatch an activity event
	// @Description  Dispatches a named event on the window target. The body is optional.
	// @Tags         events
	// @Accept       json
	// @Produce      json
	// @Param        name  path      string              true   "Event name"
	// @Param        body  body      types.EventRequest  false  "Event payload"
	// @Success      200   {object}  types.EventResponse
	// @Failure      400   {object}  types.ErrorResponse
	// @Failure      503   {object}  types.ErrorResponse
	// @Router       /events/{name} [post]
	r.Post("/events/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		var req types.EventRequest
		if r.ContentLength != 0 {
			if !decodeJSON(w, r, &req) {
				return
			}
		}
		start := time.Now()
		ctx, cancel := loopContext(r)
		defer cancel()
		n, err := svc.Dispatch(ctx, name, req)
		if err != nil {
			fail(w, r, "dispatch", start, err)
			return
		}
		succeed(r, "dispatch", start)
		writeJSON(w, types.EventResponse{Event: name, Listeners: n})
	})

	// @Summary      Set page visibility
	// @Tags         visibility
	// @Accept       json
	// @Produce      json
	// @Param        body  body      types.VisibilityRequest  true  "Visibility"
	// @Success      200   {object}  types.VisibilityResponse
	// @Failure      400   {object}  types.ErrorResponse
	// @Router       /visibility [put]
	r.Put("/visibility", func(w http.ResponseWriter, r *http.Request) {
		var req types.VisibilityRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Hidden == nil {
			writeJSONError(w, http.StatusBadRequest, "hidden is required")
			return
		}
		start := time.Now()
		ctx, cancel := loopContext(r)
		defer cancel()
		changed, err := svc.SetHidden(ctx, *req.Hidden)
		if err != nil {
			fail(w, r, "visibility", start, err)
			return
		}
		succeed(r, "visibility", start)
		writeJSON(w, types.VisibilityResponse{Hidden: *req.Hidden, Changed: changed})
	})

	// @Summary      Idle state
	// @Tags         idle
	// @Produce      json
	// @Success      200  {object}  types.IdleResponse
	// @Router       /idle [get]
	r.Get("/idle", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Idle())
	})

	// @Summary      Change the idle threshold
	// @Description  Re-arms the idle timer for the new threshold from now. Zero selects the default.
	// @Tags         idle
	// @Accept       json
	// @Produce      json
	// @Param        body  body      types.ThresholdRequest  true  "Threshold"
	// @Success      200   {object}  types.IdleResponse
	// @Failure      400   {object}  types.ErrorResponse
	// @Router       /idle/threshold [put]
	r.Put("/idle/threshold", func(w http.ResponseWriter, r *http.Request) {
		var req types.ThresholdRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.ThresholdMS == nil {
			writeJSONError(w, http.StatusBadRequest, "threshold_ms is required")
			return
		}
		start := time.Now()
		ctx, cancel := loopContext(r)
		defer cancel()
		if err := svc.SetThreshold(ctx, time.Duration(*req.ThresholdMS)*time.Millisecond); err != nil {
			fail(w, r, "threshold", start, err)
			return
		}
		succeed(r, "threshold", start)
		writeJSON(w, svc.Idle())
	})

	// @Summary      Daemon status
	// @Tags         status
	// @Produce      json
	// @Success      200  {object}  types.StatusResponse
	// @Router       /status [get]
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("starting"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// decodeJSON enforces the content type and body limit and decodes into v.
// It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// oversize bodies also land here; report 400 without size details
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// fail maps err to a status, counts loop unavailability and logs the outcome.
func fail(w http.ResponseWriter, r *http.Request, op string, start time.Time, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusServiceUnavailable:
		IncrementLoopUnavailable("not_running")
		observeLoopCall(op, "not_running", start)
	case http.StatusGatewayTimeout:
		IncrementLoopUnavailable("timeout")
		observeLoopCall(op, "timeout", start)
	default:
		observeLoopCall(op, "error", start)
	}
	logOutcome(r, op, status, start, err)
	writeJSONError(w, status, err.Error())
}

// succeed records a loop call that completed and logs it.
func succeed(r *http.Request, op string, start time.Time) {
	observeLoopCall(op, "ok", start)
	logOutcome(r, op, http.StatusOK, start, nil)
}
