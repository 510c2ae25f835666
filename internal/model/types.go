package model

import (
	"encoding/json"
	"math"
	"time"
)

// -----------------------------------------------------------------------------
// Scalar Types
// -----------------------------------------------------------------------------

// Amount is a non-negative quantity that may be unknown.
// The zero value is unknown.
type Amount struct {
	Value float64
	Known bool
}

// Known returns a known Amount. NaN and infinities collapse to unknown.
func Known(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{Value: v, Known: true}
}

// Unknown returns an unknown Amount.
func Unknown() Amount {
	return Amount{}
}

// Or returns the value when known, def otherwise.
func (a Amount) Or(def float64) float64 {
	if !a.Known {
		return def
	}
	return a.Value
}

// MarshalJSON encodes unknown amounts as null.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Known {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// Topic is a category label from the fixed clustering vocabulary.
type Topic string

// Topics in vocabulary declaration order. Order matters: it is the
// classifier's tie-break.
const (
	TopicAITech       Topic = "AI & Tech"
	TopicPolitics     Topic = "Politics"
	TopicAnimals      Topic = "Animals"
	TopicFinance      Topic = "Finance"
	TopicGaming       Topic = "Gaming"
	TopicCulture      Topic = "Culture"
	TopicFood         Topic = "Food"
	TopicSports       Topic = "Sports"
	TopicMusicArt     Topic = "Music & Art"
	TopicCryptoNative Topic = "Crypto Native"
	TopicOther        Topic = "Other"
)

// Side is a trade direction.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// -----------------------------------------------------------------------------
// Token Types
// -----------------------------------------------------------------------------

// Token is a coin as listed by the upstream explore endpoints.
type Token struct {
	Address           string `json:"address"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	Description       string `json:"description"`
	Image             string `json:"image,omitempty"`
	MarketCap         Amount `json:"market_cap"`
	MarketCapDelta24h Amount `json:"market_cap_delta_24h"`
	Volume24h         Amount `json:"volume_24h"`
	TotalVolume       Amount `json:"total_volume"`
	PriceUSDC         Amount `json:"price_usdc"`
	UniqueHolders     int64  `json:"unique_holders"`
	CreatedAt         string `json:"created_at,omitempty"`
	CreatorAddress    string `json:"creator_address,omitempty"`
	CreatorHandle     string `json:"creator_handle,omitempty"`
	CreatorAvatar     string `json:"creator_avatar,omitempty"`
	ChainID           int64  `json:"chain_id"`
}

// Ref returns the identifying fields used to annotate trades.
func (t Token) Ref() TokenRef {
	return TokenRef{
		Address: t.Address,
		Name:    t.Name,
		Symbol:  t.Symbol,
		Image:   t.Image,
	}
}

// CoinDetail is a Token with the fields only the single-coin endpoint returns.
type CoinDetail struct {
	Token
	TotalSupply string `json:"total_supply,omitempty"`
	TokenURI    string `json:"token_uri,omitempty"`
	CoinType    string `json:"coin_type,omitempty"`
}

// TokenRef identifies the token a trade belongs to.
type TokenRef struct {
	Address string `json:"token_address"`
	Name    string `json:"token_name"`
	Symbol  string `json:"token_symbol"`
	Image   string `json:"token_image,omitempty"`
}

// ClassifiedToken pairs a token with its assigned topic.
type ClassifiedToken struct {
	Token Token
	Topic Topic
}

// TopicSummary aggregates the tokens assigned to one topic.
type TopicSummary struct {
	Topic     Topic   `json:"topic"`
	Count     int     `json:"count"`
	Volume24h float64 `json:"volume_24h"`
	MarketCap float64 `json:"market_cap"`
	Top       []Token `json:"top_tokens"`
}

// -----------------------------------------------------------------------------
// Trade Types
// -----------------------------------------------------------------------------

// Trade is a single swap on a coin.
type Trade struct {
	TxHash      string    `json:"tx_hash"`
	Side        Side      `json:"side"`
	USD         float64   `json:"usd"`
	TokenAmount float64   `json:"token_amount"`
	Timestamp   time.Time `json:"timestamp"`
	Trader      string    `json:"trader"`
	TokenRef
}

// -----------------------------------------------------------------------------
// Leaderboard Types
// -----------------------------------------------------------------------------

// Trader is a weekly trader leaderboard entry.
type Trader struct {
	Handle      string `json:"handle"`
	ProfileID   string `json:"profile_id"`
	Score       int64  `json:"score"`
	VolumeUSD   Amount `json:"volume_usd"`
	TradesCount int64  `json:"trades_count"`
}

// Creator is a featured creator entry.
type Creator struct {
	Handle    string `json:"handle"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio"`
	Followers int64  `json:"followers"`
}
