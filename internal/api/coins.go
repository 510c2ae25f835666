package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rickgao/zora-dashboard/internal/model"
)

// CoinDetail fetches a single coin on the configured chain. A coin the API
// does not know yields an empty detail.
func (c *Client) CoinDetail(ctx context.Context, address string) (model.CoinDetail, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("chain", strconv.FormatInt(c.chainID, 10))

	var resp CoinResponse
	if err := c.get(ctx, "/coin", query, &resp); err != nil {
		return model.CoinDetail{}, fmt.Errorf("get coin %s: %w", address, err)
	}

	if resp.Data.Zora20Token == nil {
		return model.CoinDetail{}, nil
	}
	return resp.Data.Zora20Token.ToCoinDetail(), nil
}

// CoinSwaps fetches the most recent swaps of a coin, newest first. Swaps
// without a transaction hash are dropped.
func (c *Client) CoinSwaps(ctx context.Context, address string, count int) ([]model.Trade, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("chain", strconv.FormatInt(c.chainID, 10))
	if count > 0 {
		query.Set("first", strconv.Itoa(count))
	}

	var resp CoinSwapsResponse
	if err := c.get(ctx, "/coinSwaps", query, &resp); err != nil {
		return nil, fmt.Errorf("get coin swaps %s: %w", address, err)
	}

	if resp.Zora20Token == nil {
		return nil, nil
	}

	edges := resp.Zora20Token.SwapActivities.Edges
	trades := make([]model.Trade, 0, len(edges))
	for _, e := range edges {
		if tr, ok := e.Node.ToModel(); ok {
			trades = append(trades, tr)
		}
	}
	return trades, nil
}

// Profile fetches a profile by handle or address. The payload is passed
// through unmodified.
func (c *Client) Profile(ctx context.Context, identifier string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("identifier", identifier)

	var resp json.RawMessage
	if err := c.get(ctx, "/profile", query, &resp); err != nil {
		return nil, fmt.Errorf("get profile %s: %w", identifier, err)
	}
	return resp, nil
}
