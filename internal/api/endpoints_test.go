package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rickgao/zora-dashboard/internal/model"
)

func newTestServer(t *testing.T, path string, check func(r *http.Request), body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			t.Errorf("path = %q, want %q", r.URL.Path, path)
		}
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExploreTokens(t *testing.T) {
	body := `{
		"exploreList": {
			"edges": [
				{"node": {
					"address": "0xaaa",
					"name": "Doge Moon",
					"symbol": "DMOON",
					"description": "dog meme coin",
					"mediaContent": {"previewImage": {"small": "https://img/s.png", "medium": "https://img/m.png"}},
					"marketCap": "12345.67",
					"volume24h": "100",
					"tokenPrice": {"priceInUsdc": "0.0012"},
					"uniqueHolders": 42,
					"creatorProfile": {"handle": "alice", "avatar": {"previewImage": {"medium": "https://img/a.png"}}},
					"chainId": 8453
				}},
				{"node": {"address": "0xbbb", "name": "Broken", "marketCap": null, "volume24h": "NaN"}}
			]
		}
	}`

	server := newTestServer(t, "/explore", func(r *http.Request) {
		if got := r.URL.Query().Get("listType"); got != "TOP_VOLUME_24H" {
			t.Errorf("listType = %q, want %q", got, "TOP_VOLUME_24H")
		}
		if got := r.URL.Query().Get("count"); got != "10" {
			t.Errorf("count = %q, want %q", got, "10")
		}
	}, body)

	c := NewClient(server.URL)
	tokens, err := c.ExploreTokens(context.Background(), ListTopVolume, 10)
	if err != nil {
		t.Fatalf("ExploreTokens failed: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("len(tokens) = %d, want 2", len(tokens))
	}

	tok := tokens[0]
	if tok.Address != "0xaaa" || tok.Symbol != "DMOON" {
		t.Errorf("token = %+v, want 0xaaa/DMOON", tok)
	}
	if tok.Image != "https://img/s.png" {
		t.Errorf("Image = %q, want small preview", tok.Image)
	}
	if tok.MarketCap != model.Known(12345.67) {
		t.Errorf("MarketCap = %+v, want 12345.67", tok.MarketCap)
	}
	if tok.Volume24h != model.Known(100) {
		t.Errorf("Volume24h = %+v, want 100", tok.Volume24h)
	}
	if tok.UniqueHolders != 42 {
		t.Errorf("UniqueHolders = %d, want 42", tok.UniqueHolders)
	}
	if tok.CreatorHandle != "alice" || tok.CreatorAvatar != "https://img/a.png" {
		t.Errorf("creator = %q/%q, want alice with medium avatar", tok.CreatorHandle, tok.CreatorAvatar)
	}

	broken := tokens[1]
	if broken.MarketCap.Known || broken.Volume24h.Known {
		t.Errorf("broken token amounts = %+v/%+v, want unknown", broken.MarketCap, broken.Volume24h)
	}
	if broken.ChainID != DefaultChainID {
		t.Errorf("ChainID = %d, want default %d", broken.ChainID, DefaultChainID)
	}
}

func TestExploreTokens_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, WithRetries(1, time.Millisecond))
	_, err := c.ExploreTokens(context.Background(), ListNew, 5)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestTraderLeaderboard(t *testing.T) {
	body := `{"exploreTraderLeaderboard": {"edges": [
		{"node": {"traderProfile": {"id": "p1", "handle": "whale"}, "score": 900, "weekVolumeUsd": "150000.5", "weekTradesCount": 77}}
	]}}`
	server := newTestServer(t, "/traderLeaderboard", func(r *http.Request) {
		if got := r.URL.Query().Get("first"); got != "50" {
			t.Errorf("first = %q, want %q", got, "50")
		}
	}, body)

	c := NewClient(server.URL)
	traders, err := c.TraderLeaderboard(context.Background(), 50)
	if err != nil {
		t.Fatalf("TraderLeaderboard failed: %v", err)
	}
	if len(traders) != 1 {
		t.Fatalf("len(traders) = %d, want 1", len(traders))
	}
	want := model.Trader{Handle: "whale", ProfileID: "p1", Score: 900, VolumeUSD: model.Known(150000.5), TradesCount: 77}
	if traders[0] != want {
		t.Errorf("trader = %+v, want %+v", traders[0], want)
	}
}

func TestFeaturedCreators(t *testing.T) {
	body := `{"traderLeaderboardFeaturedCreators": {"edges": [
		{"node": {"profile": {"handle": "artist", "bio": "paints", "followerCount": 12, "avatar": {"previewImage": {"small": "https://img/x.png"}}}}},
		{"node": {}}
	]}}`
	server := newTestServer(t, "/featuredCreators", nil, body)

	c := NewClient(server.URL)
	creators, err := c.FeaturedCreators(context.Background(), 20)
	if err != nil {
		t.Fatalf("FeaturedCreators failed: %v", err)
	}
	if len(creators) != 2 {
		t.Fatalf("len(creators) = %d, want 2", len(creators))
	}
	want := model.Creator{Handle: "artist", Avatar: "https://img/x.png", Bio: "paints", Followers: 12}
	if creators[0] != want {
		t.Errorf("creator = %+v, want %+v", creators[0], want)
	}
	if creators[1] != (model.Creator{}) {
		t.Errorf("creator without profile = %+v, want zero value", creators[1])
	}
}

func TestCoinDetail(t *testing.T) {
	body := `{"data": {"zora20Token": {"address": "0xaaa", "name": "Doge Moon", "totalSupply": "1000000000", "tokenUri": "ipfs://x", "coinType": "CONTENT"}}}`
	server := newTestServer(t, "/coin", func(r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "0xaaa" {
			t.Errorf("address = %q, want %q", got, "0xaaa")
		}
		if got := r.URL.Query().Get("chain"); got != "8453" {
			t.Errorf("chain = %q, want %q", got, "8453")
		}
	}, body)

	c := NewClient(server.URL)
	detail, err := c.CoinDetail(context.Background(), "0xaaa")
	if err != nil {
		t.Fatalf("CoinDetail failed: %v", err)
	}
	if detail.Name != "Doge Moon" || detail.TotalSupply != "1000000000" || detail.TokenURI != "ipfs://x" || detail.CoinType != "CONTENT" {
		t.Errorf("detail = %+v", detail)
	}
}

func TestCoinDetail_Missing(t *testing.T) {
	server := newTestServer(t, "/coin", nil, `{"data": {}}`)

	c := NewClient(server.URL)
	detail, err := c.CoinDetail(context.Background(), "0xdead")
	if err != nil {
		t.Fatalf("CoinDetail failed: %v", err)
	}
	if detail.Address != "" {
		t.Errorf("detail.Address = %q, want empty", detail.Address)
	}
}

func TestCoinSwaps(t *testing.T) {
	body := `{"zora20Token": {"swapActivities": {"edges": [
		{"node": {"transactionHash": "0xabc", "activityType": "BUY", "coinAmount": "5000", "senderAddress": "0xtrader", "blockTimestamp": "2024-01-15T12:30:45Z", "currencyAmountWithPrice": {"priceUsdc": "2500.5"}}},
		{"node": {"transactionHash": "0xdef", "activityType": "SELL", "coinAmount": 10, "currencyAmountWithPrice": {"priceUsdc": null}}},
		{"node": {"activityType": "BUY"}}
	]}}}`
	server := newTestServer(t, "/coinSwaps", func(r *http.Request) {
		if got := r.URL.Query().Get("first"); got != "20" {
			t.Errorf("first = %q, want %q", got, "20")
		}
	}, body)

	c := NewClient(server.URL)
	trades, err := c.CoinSwaps(context.Background(), "0xaaa", 20)
	if err != nil {
		t.Fatalf("CoinSwaps failed: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("len(trades) = %d, want 2 (hashless swap dropped)", len(trades))
	}

	buy := trades[0]
	if buy.TxHash != "0xabc" || buy.Side != model.SideBuy || buy.USD != 2500.5 || buy.TokenAmount != 5000 || buy.Trader != "0xtrader" {
		t.Errorf("buy = %+v", buy)
	}
	if want := time.Date(2024, 1, 15, 12, 30, 45, 0, time.UTC); !buy.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", buy.Timestamp, want)
	}

	sell := trades[1]
	if sell.Side != model.SideSell || sell.USD != 0 {
		t.Errorf("sell = %+v, want side sell with zero USD", sell)
	}
}

func TestProfile(t *testing.T) {
	body := `{"profile": {"handle": "alice"}}`
	server := newTestServer(t, "/profile", func(r *http.Request) {
		if got := r.URL.Query().Get("identifier"); got != "alice" {
			t.Errorf("identifier = %q, want %q", got, "alice")
		}
	}, body)

	c := NewClient(server.URL)
	raw, err := c.Profile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if string(raw) != body {
		t.Errorf("Profile() = %s, want passthrough %s", raw, body)
	}
}
