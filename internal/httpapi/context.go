package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is a process-level context that can be canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts returns a context that is canceled when either a or b is done.
// The returned cancel func must be called to release the goroutine when handler ends.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-a.Done():
			cancel()
		case <-b.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// loopContext bounds a handler's wait on the event loop by the request, the
// server lifetime and callTimeout.
func loopContext(r *http.Request) (context.Context, context.CancelFunc) {
	joined, cancelJoined := joinContexts(serverBaseCtx, r.Context())
	if callTimeout <= 0 {
		return joined, cancelJoined
	}
	ctx, cancel := context.WithTimeout(joined, callTimeout)
	return ctx, func() {
		cancel()
		cancelJoined()
	}
}
