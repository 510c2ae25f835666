package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rickgao/zora-dashboard/internal/model"
)

// TraderLeaderboard fetches this week's top traders.
func (c *Client) TraderLeaderboard(ctx context.Context, count int) ([]model.Trader, error) {
	query := url.Values{}
	if count > 0 {
		query.Set("first", strconv.Itoa(count))
	}

	var resp LeaderboardResponse
	if err := c.get(ctx, "/traderLeaderboard", query, &resp); err != nil {
		return nil, fmt.Errorf("get trader leaderboard: %w", err)
	}

	traders := make([]model.Trader, 0, len(resp.ExploreTraderLeaderboard.Edges))
	for _, e := range resp.ExploreTraderLeaderboard.Edges {
		traders = append(traders, e.Node.ToModel())
	}
	return traders, nil
}

// FeaturedCreators fetches this week's featured creators.
func (c *Client) FeaturedCreators(ctx context.Context, count int) ([]model.Creator, error) {
	query := url.Values{}
	if count > 0 {
		query.Set("first", strconv.Itoa(count))
	}

	var resp FeaturedCreatorsResponse
	if err := c.get(ctx, "/featuredCreators", query, &resp); err != nil {
		return nil, fmt.Errorf("get featured creators: %w", err)
	}

	creators := make([]model.Creator, 0, len(resp.TraderLeaderboardFeaturedCreators.Edges))
	for _, e := range resp.TraderLeaderboardFeaturedCreators.Edges {
		creators = append(creators, e.Node.Profile.ToCreator())
	}
	return creators, nil
}
