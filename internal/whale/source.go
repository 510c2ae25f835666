package whale

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/zora-dashboard/internal/api"
	"github.com/rickgao/zora-dashboard/internal/model"
)

// Upstream is the subset of the API client the source needs.
type Upstream interface {
	ExploreTokens(ctx context.Context, list api.ListType, count int) ([]model.Token, error)
	CoinSwaps(ctx context.Context, address string, count int) ([]model.Trade, error)
}

// SourceConfig holds whale source configuration.
type SourceConfig struct {
	TokenLimit    int           // Most recently traded coins to scan (default: 5)
	SwapsPerToken int           // Swaps fetched per coin (default: 20)
	Concurrency   int           // Max concurrent swap requests (default: 5)
	Timeout       time.Duration // Per-request timeout (default: 10s)
}

// DefaultSourceConfig returns sensible defaults.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		TokenLimit:    5,
		SwapsPerToken: 20,
		Concurrency:   5,
		Timeout:       10 * time.Second,
	}
}

// Source gathers recent trades for the most recently traded coins.
type Source struct {
	cfg      SourceConfig
	upstream Upstream
	logger   *slog.Logger
}

// NewSource creates a new Source. Zero config fields take their defaults.
func NewSource(cfg SourceConfig, upstream Upstream, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultSourceConfig()
	if cfg.TokenLimit <= 0 {
		cfg.TokenLimit = def.TokenLimit
	}
	if cfg.SwapsPerToken <= 0 {
		cfg.SwapsPerToken = def.SwapsPerToken
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Source{cfg: cfg, upstream: upstream, logger: logger}
}

// TradesByToken fetches the latest swaps of the most recently traded coins.
// Coins whose swaps cannot be fetched are logged and left out; only a failure
// to list the coins is returned as an error.
func (s *Source) TradesByToken(ctx context.Context) (map[model.TokenRef][]model.Trade, error) {
	tokens, err := s.upstream.ExploreTokens(ctx, api.ListLastTraded, s.cfg.TokenLimit)
	if err != nil {
		return nil, fmt.Errorf("list recently traded coins: %w", err)
	}
	if len(tokens) > s.cfg.TokenLimit {
		tokens = tokens[:s.cfg.TokenLimit]
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		out = make(map[model.TokenRef][]model.Trade, len(tokens))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for _, tok := range tokens {
		if tok.Address == "" {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			reqCtx, cancel := context.WithTimeout(gctx, s.cfg.Timeout)
			defer cancel()

			trades, err := s.upstream.CoinSwaps(reqCtx, tok.Address, s.cfg.SwapsPerToken)
			if err != nil {
				s.logger.Warn("failed to fetch coin swaps",
					"address", tok.Address,
					"err", err,
				)
				return nil
			}

			mu.Lock()
			out[tok.Ref()] = trades
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LargeTrades returns the filtered large trades across recently traded coins.
func (s *Source) LargeTrades(ctx context.Context, minUSD float64) ([]model.Trade, error) {
	byToken, err := s.TradesByToken(ctx)
	if err != nil {
		return nil, err
	}
	return FilterLargeTrades(byToken, minUSD), nil
}
