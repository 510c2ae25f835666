package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/rickgao/zora-dashboard/internal/model"
)

// MaxDescriptionLen caps coin descriptions, in characters.
const MaxDescriptionLen = 200

// Amount parses the decimal. Empty, invalid, NaN and infinite values are unknown.
func (d Decimal) Amount() model.Amount {
	if d == "" {
		return model.Unknown()
	}
	f, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return model.Unknown()
	}
	return model.Known(f)
}

// Int parses the decimal as an integer, truncating fractions.
// Returns 0 for empty or invalid input.
func (d Decimal) Int() int64 {
	if d == "" {
		return 0
	}
	if n, err := strconv.ParseInt(string(d), 10, 64); err == nil {
		return n
	}
	return int64(d.Amount().Or(0))
}

// ParseTimestamp parses an ISO 8601 timestamp.
// Returns the zero time for empty or invalid input.
func ParseTimestamp(iso string) time.Time {
	if iso == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		// Try without timezone
		t, err = time.Parse("2006-01-02T15:04:05", iso)
		if err != nil {
			return time.Time{}
		}
	}

	return t.UTC()
}

// previewURL picks the small preview image, falling back to medium.
func previewURL(m *MediaContent) string {
	if m == nil || m.PreviewImage == nil {
		return ""
	}
	if m.PreviewImage.Small != "" {
		return m.PreviewImage.Small
	}
	return m.PreviewImage.Medium
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// ToModel converts an APICoin to model.Token.
func (c *APICoin) ToModel() model.Token {
	tok := model.Token{
		Address:           c.Address,
		Name:              c.Name,
		Symbol:            c.Symbol,
		Description:       truncate(c.Description, MaxDescriptionLen),
		Image:             previewURL(c.MediaContent),
		MarketCap:         c.MarketCap.Amount(),
		MarketCapDelta24h: c.MarketCapDelta24h.Amount(),
		Volume24h:         c.Volume24h.Amount(),
		TotalVolume:       c.TotalVolume.Amount(),
		UniqueHolders:     c.UniqueHolders.Int(),
		CreatedAt:         c.CreatedAt,
		CreatorAddress:    c.CreatorAddress,
		ChainID:           c.ChainID,
	}
	if c.TokenPrice != nil {
		tok.PriceUSDC = c.TokenPrice.PriceInUSDC.Amount()
	}
	if c.CreatorProfile != nil {
		tok.CreatorHandle = c.CreatorProfile.Handle
		tok.CreatorAvatar = previewURL(c.CreatorProfile.Avatar)
	}
	if tok.ChainID == 0 {
		tok.ChainID = DefaultChainID
	}
	return tok
}

// ToCoinDetail converts an APICoin to model.CoinDetail.
func (c *APICoin) ToCoinDetail() model.CoinDetail {
	return model.CoinDetail{
		Token:       c.ToModel(),
		TotalSupply: string(c.TotalSupply),
		TokenURI:    c.TokenURI,
		CoinType:    c.CoinType,
	}
}

// ToModel converts an APITrader to model.Trader.
func (t *APITrader) ToModel() model.Trader {
	tr := model.Trader{
		Score:       t.Score.Int(),
		VolumeUSD:   t.WeekVolumeUSD.Amount(),
		TradesCount: t.WeekTradesCount.Int(),
	}
	if t.TraderProfile != nil {
		tr.Handle = t.TraderProfile.Handle
		tr.ProfileID = t.TraderProfile.ID
	}
	return tr
}

// ToCreator converts an APIProfile to model.Creator.
func (p *APIProfile) ToCreator() model.Creator {
	if p == nil {
		return model.Creator{}
	}
	return model.Creator{
		Handle:    p.Handle,
		Avatar:    previewURL(p.Avatar),
		Bio:       p.Bio,
		Followers: p.FollowerCount.Int(),
	}
}

// ToModel converts an APISwap to model.Trade. The token reference is left
// for the caller to fill. Returns false for swaps without a transaction hash,
// which cannot be deduplicated.
func (s *APISwap) ToModel() (model.Trade, bool) {
	if s.TransactionHash == "" {
		return model.Trade{}, false
	}

	side := model.SideBuy
	if strings.EqualFold(s.ActivityType, "SELL") {
		side = model.SideSell
	}

	return model.Trade{
		TxHash:      s.TransactionHash,
		Side:        side,
		USD:         s.CurrencyAmountWithPrice.PriceUSDC.Amount().Or(0),
		TokenAmount: s.CoinAmount.Amount().Or(0),
		Timestamp:   ParseTimestamp(s.BlockTimestamp),
		Trader:      s.SenderAddress,
	}, true
}
