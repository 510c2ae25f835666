package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/rickgao/zora-dashboard/internal/api"
)

// countRange is the accepted range and default of a count parameter.
type countRange struct {
	def, min, max int
}

var (
	coinsCount    = countRange{def: 20, min: 1, max: 100}
	tradersCount  = countRange{def: 50, min: 1, max: 100}
	creatorsCount = countRange{def: 20, min: 1, max: 50}
	clustersCount = countRange{def: 50, min: 1, max: 100}
)

// coinLists maps /api/coins/:list names to explore lists.
var coinLists = map[string]api.ListType{
	"gainers":  api.ListTopGainers,
	"volume":   api.ListTopVolume,
	"valuable": api.ListMostValuable,
	"new":      api.ListNew,
	"active":   api.ListLastTraded,
}

// parseCount reads the count query parameter.
func parseCount(r *http.Request, rng countRange) (int, error) {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		return rng.def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("count must be an integer, got %q", raw)
	}
	if n < rng.min || n > rng.max {
		return 0, fmt.Errorf("count must be between %d and %d, got %d", rng.min, rng.max, n)
	}
	return n, nil
}

// parseList reads the list query parameter.
func parseList(r *http.Request, def api.ListType) (api.ListType, error) {
	raw := r.URL.Query().Get("list")
	if raw == "" {
		return def, nil
	}
	lt, ok := api.ParseListType(raw)
	if !ok {
		return "", fmt.Errorf("list must be one of TOP_GAINERS, TOP_VOLUME_24H, MOST_VALUABLE, NEW, LAST_TRADED, got %q", raw)
	}
	return lt, nil
}

// parseMinUSD reads the min_usd query parameter.
func parseMinUSD(r *http.Request, def float64) (float64, error) {
	raw := r.URL.Query().Get("min_usd")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("min_usd must be a number, got %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("min_usd must be >= 0, got %v", v)
	}
	return v, nil
}
