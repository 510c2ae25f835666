package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/zora-dashboard/internal/api"
	"github.com/rickgao/zora-dashboard/internal/cluster"
	"github.com/rickgao/zora-dashboard/internal/model"
)

const (
	// overviewFetch is how many entries each overview list requests.
	overviewFetch = 10
	// overviewTop is how many entries each overview list returns.
	overviewTop = 5
)

// Upstream is the subset of the API client the dashboard reads from.
type Upstream interface {
	ExploreTokens(ctx context.Context, list api.ListType, count int) ([]model.Token, error)
	TraderLeaderboard(ctx context.Context, count int) ([]model.Trader, error)
	FeaturedCreators(ctx context.Context, count int) ([]model.Creator, error)
	CoinDetail(ctx context.Context, address string) (model.CoinDetail, error)
	Profile(ctx context.Context, identifier string) (json.RawMessage, error)
}

// TradeSource provides one-shot whale snapshots.
type TradeSource interface {
	LargeTrades(ctx context.Context, minUSD float64) ([]model.Trade, error)
}

// Stats holds the overview's aggregate figures.
type Stats struct {
	TotalVolume24h float64 `json:"total_volume_24h"`
	TopCoinsMcap   float64 `json:"top_coins_mcap"`
}

// Overview is the combined dashboard landing view.
type Overview struct {
	Stats        Stats          `json:"stats"`
	TopGainers   []model.Token  `json:"top_gainers"`
	TopVolume    []model.Token  `json:"top_volume"`
	MostValuable []model.Token  `json:"most_valuable"`
	TopTraders   []model.Trader `json:"top_traders"`
}

// Service serves dashboard views.
type Service struct {
	upstream Upstream
	trades   TradeSource
	logger   *slog.Logger
}

// New creates a new Service.
func New(upstream Upstream, trades TradeSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		upstream: upstream,
		trades:   trades,
		logger:   logger,
	}
}

// Overview fetches gainers, volume, valuable and traders concurrently and
// joins them. A failed list is empty; the others are still returned.
func (s *Service) Overview(ctx context.Context) Overview {
	var (
		gainers, volume, valuable []model.Token
		traders                   []model.Trader
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		gainers = s.Coins(gctx, api.ListTopGainers, overviewFetch)
		return nil
	})
	g.Go(func() error {
		volume = s.Coins(gctx, api.ListTopVolume, overviewFetch)
		return nil
	})
	g.Go(func() error {
		valuable = s.Coins(gctx, api.ListMostValuable, overviewFetch)
		return nil
	})
	g.Go(func() error {
		traders = s.Traders(gctx, overviewFetch)
		return nil
	})
	g.Wait()

	var stats Stats
	for _, t := range volume {
		stats.TotalVolume24h += t.Volume24h.Or(0)
	}
	for _, t := range valuable {
		stats.TopCoinsMcap += t.MarketCap.Or(0)
	}

	return Overview{
		Stats:        stats,
		TopGainers:   head(gainers, overviewTop),
		TopVolume:    head(volume, overviewTop),
		MostValuable: head(valuable, overviewTop),
		TopTraders:   head(traders, overviewTop),
	}
}

// Coins returns an explore list.
func (s *Service) Coins(ctx context.Context, list api.ListType, count int) []model.Token {
	tokens, err := s.upstream.ExploreTokens(ctx, list, count)
	if err != nil {
		s.logger.Warn("failed to fetch coins", "list", list, "err", err)
		return []model.Token{}
	}
	return nonNil(tokens)
}

// Coin returns a single coin's detail, or an empty detail.
func (s *Service) Coin(ctx context.Context, address string) model.CoinDetail {
	detail, err := s.upstream.CoinDetail(ctx, address)
	if err != nil {
		s.logger.Warn("failed to fetch coin", "address", address, "err", err)
		return model.CoinDetail{}
	}
	return detail
}

// Traders returns the weekly trader leaderboard.
func (s *Service) Traders(ctx context.Context, count int) []model.Trader {
	traders, err := s.upstream.TraderLeaderboard(ctx, count)
	if err != nil {
		s.logger.Warn("failed to fetch trader leaderboard", "err", err)
		return []model.Trader{}
	}
	return nonNil(traders)
}

// Creators returns the featured creators.
func (s *Service) Creators(ctx context.Context, count int) []model.Creator {
	creators, err := s.upstream.FeaturedCreators(ctx, count)
	if err != nil {
		s.logger.Warn("failed to fetch featured creators", "err", err)
		return []model.Creator{}
	}
	return nonNil(creators)
}

// Profile returns the upstream profile payload unchanged, or {}.
func (s *Service) Profile(ctx context.Context, identifier string) json.RawMessage {
	raw, err := s.upstream.Profile(ctx, identifier)
	if err != nil || len(raw) == 0 {
		if err != nil {
			s.logger.Warn("failed to fetch profile", "identifier", identifier, "err", err)
		}
		return json.RawMessage("{}")
	}
	return raw
}

// Clusters groups an explore list into topic summaries.
func (s *Service) Clusters(ctx context.Context, list api.ListType, count int) []model.TopicSummary {
	tokens := s.Coins(ctx, list, count)
	return nonNil(cluster.Aggregate(tokens))
}

// Whales returns the current large trades across recently traded coins.
func (s *Service) Whales(ctx context.Context, minUSD float64) []model.Trade {
	trades, err := s.trades.LargeTrades(ctx, minUSD)
	if err != nil {
		s.logger.Warn("failed to fetch whale trades", "err", err)
		return []model.Trade{}
	}
	return nonNil(trades)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return nonNil(s)
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
