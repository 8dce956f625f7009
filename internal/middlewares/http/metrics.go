package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// UnknownEndpoint is the endpoint label of requests that matched no route.
const UnknownEndpoint = "unknown"

//go:generate mockgen -source=metrics.go -destination=metrics_mock.go -package=http

// RequestRecorder records one finished request.
type RequestRecorder interface {
	Record(method, endpoint string, status int, elapsed time.Duration) error
}

// MetricsMiddleware times every request and records it with its method,
// matched route pattern and final status code.
//
// The start time is local to the request. Recording happens exactly once,
// after the inner handler returns and before control goes back to net/http.
// A panic escaping the inner handler is recorded with status 500 and then
// re-raised.
func MetricsMiddleware(recorder RequestRecorder, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rec := recover()

				status := ww.Status()
				if rec != nil {
					status = http.StatusInternalServerError
				} else if status == 0 {
					status = http.StatusOK
				}

				endpoint := endpointName(r)
				if err := recorder.Record(r.Method, endpoint, status, time.Since(start)); err != nil {
					log.Warn("request metrics dropped",
						zap.String("method", r.Method),
						zap.String("endpoint", endpoint),
						zap.Error(err),
					)
				}

				if rec != nil {
					panic(rec)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// endpointName returns the pattern of the route that served r.
//
// A request that entered a mounted subrouter but matched nothing in it
// still carries the mount pattern, e.g. "/api/*". Such patterns are only
// kept when the router confirms a leaf route for the method and path.
func endpointName(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return UnknownEndpoint
	}

	pattern := rctx.RoutePattern()
	if pattern == "" {
		return UnknownEndpoint
	}
	if strings.HasSuffix(pattern, "/*") && !matchesRoute(rctx, r) {
		return UnknownEndpoint
	}
	return pattern
}

// matchesRoute reports whether the root router has a handler for r.
func matchesRoute(rctx *chi.Context, r *http.Request) bool {
	if rctx.Routes == nil {
		return false
	}
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}
	return rctx.Routes.Match(chi.NewRouteContext(), r.Method, path)
}
