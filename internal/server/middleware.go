package server

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/rickgao/zora-dashboard/internal/config"
)

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// requestInfo is filled in as a request moves through the stack.
type requestInfo struct {
	id    string
	route string
}

func requestInfoFrom(ctx context.Context) *requestInfo {
	info, _ := ctx.Value(ctxKey{}).(*requestInfo)
	return info
}

// RequestID returns the id assigned to the request, or "".
func RequestID(ctx context.Context) string {
	if info := requestInfoFrom(ctx); info != nil {
		return info.id
	}
	return ""
}

// statusRecorder captures the response status. It forwards Hijack so
// WebSocket upgrades pass through.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// requestLogger assigns a request id, logs completion and records metrics.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		info := &requestInfo{id: uuid.NewString(), route: "unmatched"}
		ctx := context.WithValue(r.Context(), ctxKey{}, info)
		w.Header().Set(RequestIDHeader, info.id)

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r.WithContext(ctx))

		duration := time.Since(start)
		s.deps.Metrics.ObserveHTTP(info.route, rw.status, duration)

		level := slog.LevelDebug
		if rw.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "request completed",
			"request_id", info.id,
			"method", r.Method,
			"path", r.URL.Path,
			"route", info.route,
			"status", rw.status,
			"remote_addr", r.RemoteAddr,
			"duration", duration,
		)
	})
}

// CORSOptions builds the CORS policy. The API is read-only.
func CORSOptions(cfg config.CORSConfig) cors.Options {
	return cors.Options{
		AllowOriginFunc: AllowedOrigin(cfg.AllowedOrigins),
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		MaxAge:           cfg.MaxAge,
		AllowCredentials: false,
	}
}

// AllowedOrigin matches an origin against the allow list, ignoring scheme.
// An empty list or a leading "*" allows everything.
func AllowedOrigin(allowedOrigins []string) func(origin string) bool {
	trimScheme := func(origin string) string {
		return strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
	}
	return func(origin string) bool {
		if len(allowedOrigins) == 0 || allowedOrigins[0] == "*" {
			return true
		}
		for _, allowedOrigin := range allowedOrigins {
			if allowedOrigin == origin || trimScheme(allowedOrigin) == trimScheme(origin) {
				return true
			}
		}
		return false
	}
}
