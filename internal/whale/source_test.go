package whale

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rickgao/zora-dashboard/internal/api"
	"github.com/rickgao/zora-dashboard/internal/model"
)

// fakeUpstream serves canned coins and swaps.
type fakeUpstream struct {
	tokens    []model.Token
	listErr   error
	swaps     map[string][]model.Trade
	swapErrs  map[string]error
	mu        sync.Mutex
	listType  api.ListType
	listCount int
	swapCalls []string
	onList    func()
}

func (f *fakeUpstream) ExploreTokens(ctx context.Context, list api.ListType, count int) ([]model.Token, error) {
	f.mu.Lock()
	f.listType, f.listCount = list, count
	f.mu.Unlock()
	if f.onList != nil {
		f.onList()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tokens, nil
}

func (f *fakeUpstream) CoinSwaps(ctx context.Context, address string, count int) ([]model.Trade, error) {
	f.mu.Lock()
	f.swapCalls = append(f.swapCalls, address)
	f.mu.Unlock()
	if err := f.swapErrs[address]; err != nil {
		return nil, err
	}
	return f.swaps[address], nil
}

func TestSource_LargeTrades(t *testing.T) {
	up := &fakeUpstream{
		tokens: []model.Token{
			{Address: "0xa", Name: "Alpha", Symbol: "ALP"},
			{Address: "0xb", Name: "Beta", Symbol: "BET"},
		},
		swaps: map[string][]model.Trade{
			"0xa": {trade("t1", 500), trade("t2", 1500)},
			"0xb": {trade("t3", 2500), trade("t4", 999)},
		},
	}

	src := NewSource(SourceConfig{}, up, nil)
	got, err := src.LargeTrades(context.Background(), 1000)
	if err != nil {
		t.Fatalf("LargeTrades failed: %v", err)
	}

	if len(got) != 2 || got[0].TxHash != "t3" || got[1].TxHash != "t2" {
		t.Fatalf("LargeTrades = %v, want [t3 t2]", hashes(got))
	}
	if got[0].TokenRef.Symbol != "BET" || got[1].TokenRef.Symbol != "ALP" {
		t.Errorf("token refs = %q/%q, want BET/ALP", got[0].TokenRef.Symbol, got[1].TokenRef.Symbol)
	}
	if up.listType != api.ListLastTraded {
		t.Errorf("list = %q, want %q", up.listType, api.ListLastTraded)
	}
	if up.listCount != 5 {
		t.Errorf("list count = %d, want 5", up.listCount)
	}
}

func TestSource_TokenLimit(t *testing.T) {
	up := &fakeUpstream{
		tokens: []model.Token{{Address: "0x1"}, {Address: "0x2"}, {Address: "0x3"}, {Address: "0x4"}},
	}

	src := NewSource(SourceConfig{TokenLimit: 2}, up, nil)
	if _, err := src.TradesByToken(context.Background()); err != nil {
		t.Fatalf("TradesByToken failed: %v", err)
	}
	if len(up.swapCalls) != 2 {
		t.Errorf("swap calls = %v, want 2 calls", up.swapCalls)
	}
}

func TestSource_SkipsFailedCoins(t *testing.T) {
	up := &fakeUpstream{
		tokens: []model.Token{{Address: "0xa"}, {Address: "0xb"}},
		swaps: map[string][]model.Trade{
			"0xa": {trade("ok", 2000)},
		},
		swapErrs: map[string]error{"0xb": api.ErrUpstreamUnavailable},
	}

	src := NewSource(SourceConfig{}, up, nil)
	got, err := src.LargeTrades(context.Background(), 1000)
	if err != nil {
		t.Fatalf("LargeTrades failed: %v", err)
	}
	if len(got) != 1 || got[0].TxHash != "ok" {
		t.Errorf("LargeTrades = %v, want [ok]", hashes(got))
	}
}

func TestSource_ListFailure(t *testing.T) {
	up := &fakeUpstream{listErr: api.ErrUpstreamUnavailable}

	src := NewSource(SourceConfig{}, up, nil)
	_, err := src.LargeTrades(context.Background(), 1000)
	if !errors.Is(err, api.ErrUpstreamUnavailable) {
		t.Errorf("error = %v, want ErrUpstreamUnavailable", err)
	}
	if len(up.swapCalls) != 0 {
		t.Errorf("swap calls = %v, want none", up.swapCalls)
	}
}

func TestSource_CancelledAfterListing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	up := &fakeUpstream{
		tokens: []model.Token{{Address: "0x1"}, {Address: "0x2"}, {Address: "0x3"}},
		onList: cancel,
	}

	src := NewSource(SourceConfig{}, up, nil)
	_, err := src.TradesByToken(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(up.swapCalls) != 0 {
		t.Errorf("swap calls = %v, want none", up.swapCalls)
	}
}
