package api

import (
	"encoding/json"
	"strings"
)

// ListType selects an /explore ranking.
type ListType string

const (
	ListTopGainers   ListType = "TOP_GAINERS"
	ListTopVolume    ListType = "TOP_VOLUME_24H"
	ListMostValuable ListType = "MOST_VALUABLE"
	ListNew          ListType = "NEW"
	ListLastTraded   ListType = "LAST_TRADED"
)

// ParseListType accepts a list name case-insensitively.
func ParseListType(s string) (ListType, bool) {
	lt := ListType(strings.ToUpper(strings.TrimSpace(s)))
	switch lt {
	case ListTopGainers, ListTopVolume, ListMostValuable, ListNew, ListLastTraded:
		return lt, true
	}
	return "", false
}

// Decimal is a numeric field the API encodes as a JSON string, number or null.
type Decimal string

// UnmarshalJSON keeps the raw numeric text; null becomes empty.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(strings.TrimSpace(s))
		return nil
	}
	*d = Decimal(b)
	return nil
}

// ExploreResponse from GET /explore
type ExploreResponse struct {
	ExploreList struct {
		Edges []CoinEdge `json:"edges"`
	} `json:"exploreList"`
}

// CoinEdge wraps a coin node in a paginated list.
type CoinEdge struct {
	Node APICoin `json:"node"`
}

// APICoin represents a coin from the Zora API.
type APICoin struct {
	Address           string        `json:"address"`
	Name              string        `json:"name"`
	Symbol            string        `json:"symbol"`
	Description       string        `json:"description"`
	MediaContent      *MediaContent `json:"mediaContent"`
	MarketCap         Decimal       `json:"marketCap"`
	MarketCapDelta24h Decimal       `json:"marketCapDelta24h"`
	Volume24h         Decimal       `json:"volume24h"`
	TotalVolume       Decimal       `json:"totalVolume"`
	TokenPrice        *TokenPrice   `json:"tokenPrice"`
	UniqueHolders     Decimal       `json:"uniqueHolders"`
	CreatedAt         string        `json:"createdAt"`
	CreatorAddress    string        `json:"creatorAddress"`
	CreatorProfile    *APIProfile   `json:"creatorProfile"`
	ChainID           int64         `json:"chainId"`

	// Only populated by GET /coin
	TotalSupply Decimal `json:"totalSupply"`
	TokenURI    string  `json:"tokenUri"`
	CoinType    string  `json:"coinType"`
}

// MediaContent holds preview images for coins and avatars.
type MediaContent struct {
	PreviewImage *PreviewImage `json:"previewImage"`
}

// PreviewImage holds resized image URLs.
type PreviewImage struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
}

// TokenPrice holds the current coin price.
type TokenPrice struct {
	PriceInUSDC Decimal `json:"priceInUsdc"`
}

// APIProfile represents a user profile embedded in other payloads.
type APIProfile struct {
	ID            string        `json:"id"`
	Handle        string        `json:"handle"`
	Bio           string        `json:"bio"`
	Avatar        *MediaContent `json:"avatar"`
	FollowerCount Decimal       `json:"followerCount"`
}

// CoinResponse from GET /coin
type CoinResponse struct {
	Data struct {
		Zora20Token *APICoin `json:"zora20Token"`
	} `json:"data"`
}

// LeaderboardResponse from GET /traderLeaderboard
type LeaderboardResponse struct {
	ExploreTraderLeaderboard struct {
		Edges []struct {
			Node APITrader `json:"node"`
		} `json:"edges"`
	} `json:"exploreTraderLeaderboard"`
}

// APITrader represents a trader leaderboard entry.
type APITrader struct {
	TraderProfile   *APIProfile `json:"traderProfile"`
	Score           Decimal     `json:"score"`
	WeekVolumeUSD   Decimal     `json:"weekVolumeUsd"`
	WeekTradesCount Decimal     `json:"weekTradesCount"`
}

// FeaturedCreatorsResponse from GET /featuredCreators
type FeaturedCreatorsResponse struct {
	TraderLeaderboardFeaturedCreators struct {
		Edges []struct {
			Node struct {
				Profile *APIProfile `json:"profile"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"traderLeaderboardFeaturedCreators"`
}

// CoinSwapsResponse from GET /coinSwaps
type CoinSwapsResponse struct {
	Zora20Token *struct {
		SwapActivities struct {
			Edges []struct {
				Node APISwap `json:"node"`
			} `json:"edges"`
		} `json:"swapActivities"`
	} `json:"zora20Token"`
}

// APISwap represents a single swap on a coin.
type APISwap struct {
	TransactionHash         string  `json:"transactionHash"`
	ActivityType            string  `json:"activityType"` // "BUY" or "SELL"
	CoinAmount              Decimal `json:"coinAmount"`
	SenderAddress           string  `json:"senderAddress"`
	BlockTimestamp          string  `json:"blockTimestamp"`
	CurrencyAmountWithPrice struct {
		PriceUSDC Decimal `json:"priceUsdc"`
	} `json:"currencyAmountWithPrice"`
	SenderProfile *APIProfile `json:"senderProfile"`
}
