package poller

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rickgao/zora-dashboard/internal/model"
	"github.com/rickgao/zora-dashboard/internal/whale"
)

// TradeSource provides large trades for a poll cycle.
type TradeSource interface {
	LargeTrades(ctx context.Context, minUSD float64) ([]model.Trade, error)
}

// Subscriber is the push channel of one connected client.
type Subscriber interface {
	// Send delivers one trade. An error means the subscriber is gone.
	Send(ctx context.Context, trade model.Trade) error
	// Done is closed when the subscriber disconnects.
	Done() <-chan struct{}
}

// Observer receives poll loop events. *metrics.Metrics implements it.
type Observer interface {
	ObservePollCycle(err error)
	ObserveWhalesEmitted(n int)
	SetSubscribers(n int)
}

type nopObserver struct{}

func (nopObserver) ObservePollCycle(error)  {}
func (nopObserver) ObserveWhalesEmitted(int) {}
func (nopObserver) SetSubscribers(int)       {}

// State is the lifecycle state of a Session.
type State int32

const (
	StateConnected State = iota
	StatePolling
	StateIdle
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StatePolling:
		return "polling"
	case StateIdle:
		return "idle"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Config holds poll loop configuration.
type Config struct {
	Interval time.Duration // Wait between cycles (default: 30s)
	MinUSD   float64       // Whale threshold in USD; non-positive selects the default (1000)
	TopN     int           // Trades considered per cycle (default: 10)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 30 * time.Second,
		MinUSD:   1000,
		TopN:     10,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = def.Interval
	}
	if c.MinUSD <= 0 {
		c.MinUSD = def.MinUSD
	}
	if c.TopN <= 0 {
		c.TopN = def.TopN
	}
	return c
}

// Session streams whale trades to a single subscriber.
type Session struct {
	id       string
	cfg      Config
	source   TradeSource
	sub      Subscriber
	logger   *slog.Logger
	observer Observer

	state atomic.Int32
}

// NewSession creates a new Session. Zero config fields take their defaults.
func NewSession(id string, cfg Config, source TradeSource, sub Subscriber, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		id:       id,
		cfg:      cfg.withDefaults(),
		source:   source,
		sub:      sub,
		logger:   logger.With("subscriber", id),
		observer: nopObserver{},
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Run polls until ctx is cancelled, the subscriber disconnects, or a send
// fails. The dedup state lives only for the duration of Run.
func (s *Session) Run(ctx context.Context) {
	s.state.Store(int32(StateConnected))
	defer s.state.Store(int32(StateDisconnected))

	// A disconnect aborts the cycle in flight, not just the next one.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.sub.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	seen := whale.NewSeenSet()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("whale session cancelled")
			return
		case <-s.sub.Done():
			s.logger.Debug("subscriber disconnected")
			return
		case <-timer.C:
		}

		s.state.Store(int32(StatePolling))
		if err := s.poll(ctx, seen); err != nil {
			s.logger.Debug("whale send failed, closing session", "err", err)
			return
		}
		s.state.Store(int32(StateIdle))

		timer.Reset(s.cfg.Interval)
	}
}

// poll runs one cycle. Upstream failures count as an empty cycle; the
// returned error is a send failure.
func (s *Session) poll(ctx context.Context, seen *whale.SeenSet) error {
	start := time.Now()

	trades, err := s.source.LargeTrades(ctx, s.cfg.MinUSD)
	s.observer.ObservePollCycle(err)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("whale poll failed", "err", err)
		}
		return nil
	}

	if len(trades) > s.cfg.TopN {
		trades = trades[:s.cfg.TopN]
	}

	novel := seen.MarkAndFilter(trades)
	for _, tr := range novel {
		if err := s.sub.Send(ctx, tr); err != nil {
			return err
		}
	}
	s.observer.ObserveWhalesEmitted(len(novel))

	s.logger.Debug("whale poll cycle complete",
		"candidates", len(trades),
		"sent", len(novel),
		"seen", seen.Len(),
		"duration", time.Since(start),
	)
	return nil
}
