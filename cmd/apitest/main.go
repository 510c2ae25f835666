// apitest exercises the Zora API client against the live API and prints
// explore lists, topic clusters and current whale trades.
// Usage: go run ./cmd/apitest [-count 10] [-min-usd 1000]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/rickgao/zora-dashboard/internal/api"
	"github.com/rickgao/zora-dashboard/internal/cluster"
	"github.com/rickgao/zora-dashboard/internal/config"
	"github.com/rickgao/zora-dashboard/internal/whale"
)

func main() {
	count := flag.Int("count", 10, "entries per list")
	minUSD := flag.Float64("min-usd", config.DefaultMinUSD, "whale threshold in USD")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	client := api.NewClient(
		config.DefaultRestURL,
		api.WithAPIKey(os.Getenv("ZORA_API_KEY")),
		api.WithTimeout(30*time.Second),
		api.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Test 1: Explore lists
	for _, list := range []api.ListType{api.ListTopGainers, api.ListTopVolume, api.ListMostValuable, api.ListNew, api.ListLastTraded} {
		fmt.Printf("=== Testing ExploreTokens (%s) ===\n", list)
		tokens, err := client.ExploreTokens(ctx, list, *count)
		if err != nil {
			log.Fatalf("ExploreTokens failed: %v", err)
		}
		for i, t := range tokens {
			fmt.Printf("  %2d. %-12s %-30.30s vol24h=%12.2f mcap=%14.2f\n",
				i+1, t.Symbol, t.Name, t.Volume24h.Or(0), t.MarketCap.Or(0))
		}
		fmt.Println()
	}

	// Test 2: Leaderboards
	fmt.Println("=== Testing TraderLeaderboard ===")
	traders, err := client.TraderLeaderboard(ctx, *count)
	if err != nil {
		log.Fatalf("TraderLeaderboard failed: %v", err)
	}
	for i, t := range traders {
		fmt.Printf("  %2d. %-20s score=%d volume=%.2f trades=%d\n", i+1, t.Handle, t.Score, t.VolumeUSD.Or(0), t.TradesCount)
	}

	fmt.Println("\n=== Testing FeaturedCreators ===")
	creators, err := client.FeaturedCreators(ctx, *count)
	if err != nil {
		log.Fatalf("FeaturedCreators failed: %v", err)
	}
	for i, c := range creators {
		fmt.Printf("  %2d. %-20s followers=%d\n", i+1, c.Handle, c.Followers)
	}

	// Test 3: Clusters
	fmt.Println("\n=== Testing Clusters (TOP_VOLUME_24H) ===")
	tokens, err := client.ExploreTokens(ctx, api.ListTopVolume, 50)
	if err != nil {
		log.Fatalf("ExploreTokens failed: %v", err)
	}
	for _, s := range cluster.Aggregate(tokens) {
		fmt.Printf("  %-14s count=%-3d vol24h=%14.2f mcap=%16.2f\n", s.Topic, s.Count, s.Volume24h, s.MarketCap)
		for _, t := range s.Top {
			fmt.Printf("      %-12s %.2f\n", t.Symbol, t.Volume24h.Or(0))
		}
	}

	// Test 4: Coin detail
	if len(tokens) > 0 {
		addr := tokens[0].Address
		fmt.Printf("\n=== Testing CoinDetail (%s) ===\n", addr)
		detail, err := client.CoinDetail(ctx, addr)
		if err != nil {
			log.Fatalf("CoinDetail failed: %v", err)
		}
		fmt.Printf("Name: %s\nSymbol: %s\nTotal supply: %s\nCoin type: %s\n",
			detail.Name, detail.Symbol, detail.TotalSupply, detail.CoinType)
	}

	// Test 5: Whales
	fmt.Printf("\n=== Testing Whale Trades (>= $%.0f) ===\n", *minUSD)
	source := whale.NewSource(whale.DefaultSourceConfig(), client, logger)
	trades, err := source.LargeTrades(ctx, *minUSD)
	if err != nil {
		log.Fatalf("LargeTrades failed: %v", err)
	}
	for _, tr := range trades {
		fmt.Printf("  %-4s $%10.2f %-12s %s %s\n", tr.Side, tr.USD, tr.Symbol, tr.Timestamp.Format(time.RFC3339), tr.TxHash)
	}

	fmt.Printf("\nUpstream breaker: %s\n", client.BreakerState())
	fmt.Println("\n=== All API tests passed! ===")
}
