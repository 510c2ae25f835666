package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rickgao/zora-dashboard/internal/model"
)

// GetExplore fetches one ranked coin list.
func (c *Client) GetExplore(ctx context.Context, list ListType, count int) (*ExploreResponse, error) {
	query := url.Values{}
	query.Set("listType", string(list))
	if count > 0 {
		query.Set("count", strconv.Itoa(count))
	}

	var resp ExploreResponse
	if err := c.get(ctx, "/explore", query, &resp); err != nil {
		return nil, fmt.Errorf("get explore %s: %w", list, err)
	}

	return &resp, nil
}

// ExploreTokens fetches a ranked coin list and normalises it.
func (c *Client) ExploreTokens(ctx context.Context, list ListType, count int) ([]model.Token, error) {
	resp, err := c.GetExplore(ctx, list, count)
	if err != nil {
		return nil, err
	}

	tokens := make([]model.Token, 0, len(resp.ExploreList.Edges))
	for _, e := range resp.ExploreList.Edges {
		tokens = append(tokens, e.Node.ToModel())
	}
	return tokens, nil
}
