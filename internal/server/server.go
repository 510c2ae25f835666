package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/rickgao/zora-dashboard/internal/api"
	"github.com/rickgao/zora-dashboard/internal/config"
	"github.com/rickgao/zora-dashboard/internal/dashboard"
	"github.com/rickgao/zora-dashboard/internal/metrics"
	"github.com/rickgao/zora-dashboard/internal/model"
	"github.com/rickgao/zora-dashboard/internal/poller"
	"github.com/rickgao/zora-dashboard/internal/stream"
)

// Dashboard serves the JSON views. *dashboard.Service implements it.
type Dashboard interface {
	Overview(ctx context.Context) dashboard.Overview
	Coins(ctx context.Context, list api.ListType, count int) []model.Token
	Coin(ctx context.Context, address string) model.CoinDetail
	Traders(ctx context.Context, count int) []model.Trader
	Creators(ctx context.Context, count int) []model.Creator
	Profile(ctx context.Context, identifier string) json.RawMessage
	Clusters(ctx context.Context, list api.ListType, count int) []model.TopicSummary
	Whales(ctx context.Context, minUSD float64) []model.Trade
}

// Registry tracks whale stream subscribers. *poller.Registry implements it.
type Registry interface {
	Attach(sub poller.Subscriber) (string, error)
	Len() int
}

// BreakerStater reports the upstream circuit breaker state. *api.Client
// implements it.
type BreakerStater interface {
	BreakerState() string
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Dashboard Dashboard
	Registry  Registry
	Upstream  BreakerStater
	Metrics   *metrics.Metrics
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg      config.Config
	deps     Deps
	logger   *slog.Logger
	router   *httprouter.Router
	upgrader *stream.Upgrader
	handler  http.Handler
	server   *http.Server
}

// New creates a Server with all routes configured.
func New(cfg config.Config, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		router: httprouter.New(),
	}

	allowOrigin := AllowedOrigin(cfg.Server.CORS.AllowedOrigins)
	s.upgrader = stream.NewUpgrader(stream.Config{
		WriteTimeout: cfg.Whale.Stream.WriteTimeout,
		PingInterval: cfg.Whale.Stream.PingInterval,
	}, func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowOrigin(origin)
	}, logger)

	s.registerRoutes()

	routed := http.Handler(s.router)
	if rps := cfg.Server.RateLimit.RequestsPerSecond; rps > 0 {
		routed = s.rateLimitAPI(rps, routed)
	}
	routed = cors.New(CORSOptions(cfg.Server.CORS)).Handler(routed)
	s.handler = s.requestLogger(routed)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// registerRoutes configures all HTTP routes.
func (s *Server) registerRoutes() {
	s.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.get("/", s.handleRoot)
	s.get("/health", s.handleHealth)
	s.get(s.cfg.Metrics.Path, s.handleMetrics)

	s.get("/api/overview", s.handleOverview)
	s.get("/api/coins/:address", s.handleCoins)
	s.get("/api/traders", s.handleTraders)
	s.get("/api/creators", s.handleCreators)
	s.get("/api/profile/:identifier", s.handleProfile)
	s.get("/api/clusters", s.handleClusters)
	s.get("/api/whales", s.handleWhales)

	s.get("/ws/whales", s.handleWhaleStream)
}

// get registers a GET route and tags requests with its pattern.
func (s *Server) get(pattern string, h httprouter.Handle) {
	s.router.GET(pattern, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if info := requestInfoFrom(r.Context()); info != nil {
			info.route = pattern
		}
		h(w, r, ps)
	})
}

// rateLimitAPI applies a per-client limit to /api routes only.
func (s *Server) rateLimitAPI(rps float64, next http.Handler) http.Handler {
	lmt := tollbooth.NewLimiter(rps, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetMessageContentType("application/json; charset=utf-8")
	lmt.SetMessage(`{"error":"rate limit exceeded"}`)

	limited := tollbooth.LimitHandler(lmt, next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for HTTP requests. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Serve accepts connections on l. It returns nil after Shutdown.
func (s *Server) Serve(l net.Listener) error {
	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
