package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rickgao/zora-dashboard/internal/api"
	"github.com/rickgao/zora-dashboard/internal/model"
	"github.com/rickgao/zora-dashboard/internal/whale"
)

// scriptedSource returns one scripted response per call, then empty cycles.
type scriptedSource struct {
	mu     sync.Mutex
	cycles []cycle
	calls  atomic.Int32
	minUSD float64
}

type cycle struct {
	trades []model.Trade
	err    error
}

func (s *scriptedSource) LargeTrades(ctx context.Context, minUSD float64) ([]model.Trade, error) {
	n := int(s.calls.Add(1)) - 1

	s.mu.Lock()
	defer s.mu.Unlock()
	s.minUSD = minUSD
	if n >= len(s.cycles) {
		return nil, nil
	}
	return s.cycles[n].trades, s.cycles[n].err
}

// recordingSubscriber collects sent trades and can be disconnected.
type recordingSubscriber struct {
	mu      sync.Mutex
	sent    []string
	done    chan struct{}
	once    sync.Once
	sendErr error
	closed  atomic.Bool
}

func newRecordingSubscriber() *recordingSubscriber {
	return &recordingSubscriber{done: make(chan struct{})}
}

func (r *recordingSubscriber) Send(ctx context.Context, tr model.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sendErr != nil {
		return r.sendErr
	}
	r.sent = append(r.sent, tr.TxHash)
	return nil
}

func (r *recordingSubscriber) Done() <-chan struct{} { return r.done }

func (r *recordingSubscriber) disconnect() { r.once.Do(func() { close(r.done) }) }

func (r *recordingSubscriber) Close() error {
	r.closed.Store(true)
	return nil
}

func (r *recordingSubscriber) Sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func whaleTrade(hash string, usd float64) model.Trade {
	return model.Trade{TxHash: hash, USD: usd, Side: model.SideBuy}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSession_DeduplicatesAcrossCycles(t *testing.T) {
	src := &scriptedSource{cycles: []cycle{
		{trades: []model.Trade{whaleTrade("0xabc", 5000), whaleTrade("0xdef", 3000)}},
		{trades: []model.Trade{whaleTrade("0xabc", 5000), whaleTrade("0x123", 4000)}},
	}}
	sub := newRecordingSubscriber()

	s := NewSession("test", Config{Interval: 10 * time.Millisecond}, src, sub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool { return src.calls.Load() >= 3 })
	cancel()
	<-done

	got := sub.Sent()
	want := []string{"0xabc", "0xdef", "0x123"}
	if len(got) != len(want) {
		t.Fatalf("sent = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sent[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if src.minUSD != 1000 {
		t.Errorf("minUSD = %v, want default 1000", src.minUSD)
	}
	if s.State() != StateDisconnected {
		t.Errorf("State() = %v, want %v", s.State(), StateDisconnected)
	}
}

func TestSession_FailedCycleIsEmpty(t *testing.T) {
	src := &scriptedSource{cycles: []cycle{
		{err: api.ErrUpstreamUnavailable},
		{trades: []model.Trade{whaleTrade("0xabc", 5000)}},
	}}
	sub := newRecordingSubscriber()

	s := NewSession("test", Config{Interval: 10 * time.Millisecond}, src, sub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	waitFor(t, func() bool { return len(sub.Sent()) == 1 })
	if got := sub.Sent(); got[0] != "0xabc" {
		t.Errorf("sent = %v, want [0xabc]", got)
	}
}

func TestSession_TopN(t *testing.T) {
	trades := make([]model.Trade, 15)
	for i := range trades {
		trades[i] = whaleTrade(string(rune('a'+i)), float64(10000-i))
	}
	src := &scriptedSource{cycles: []cycle{{trades: trades}}}
	sub := newRecordingSubscriber()

	s := NewSession("test", Config{Interval: time.Hour, TopN: 4}, src, sub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	waitFor(t, func() bool { return s.State() == StateIdle })
	if got := sub.Sent(); len(got) != 4 || got[0] != "a" || got[3] != "d" {
		t.Errorf("sent = %v, want [a b c d]", got)
	}
}

func TestSession_DisconnectStopsPolling(t *testing.T) {
	src := &scriptedSource{}
	sub := newRecordingSubscriber()

	s := NewSession("test", Config{Interval: 10 * time.Millisecond}, src, sub, nil)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	waitFor(t, func() bool { return src.calls.Load() >= 1 })
	sub.disconnect()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("session did not stop after disconnect")
	}

	calls := src.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if got := src.calls.Load(); got != calls {
		t.Errorf("upstream calls after disconnect = %d, want %d", got, calls)
	}
}

// disconnectingUpstream drops the subscriber while the coin list is being
// fetched and records swap calls made with a live context.
type disconnectingUpstream struct {
	sub       *recordingSubscriber
	swapCalls atomic.Int32
	liveCalls atomic.Int32
}

func (u *disconnectingUpstream) ExploreTokens(ctx context.Context, list api.ListType, count int) ([]model.Token, error) {
	u.sub.disconnect()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
	}
	return []model.Token{
		{Address: "0x1"}, {Address: "0x2"}, {Address: "0x3"}, {Address: "0x4"}, {Address: "0x5"},
	}, nil
}

func (u *disconnectingUpstream) CoinSwaps(ctx context.Context, address string, count int) ([]model.Trade, error) {
	u.swapCalls.Add(1)
	if ctx.Err() == nil {
		u.liveCalls.Add(1)
	}
	return []model.Trade{whaleTrade("0x"+address, 5000)}, nil
}

func TestSession_DisconnectAbortsCycleInFlight(t *testing.T) {
	sub := newRecordingSubscriber()
	up := &disconnectingUpstream{sub: sub}
	src := whale.NewSource(whale.SourceConfig{}, up, nil)

	s := NewSession("test", Config{Interval: time.Hour}, src, sub, nil)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after disconnect")
	}

	if got := up.liveCalls.Load(); got != 0 {
		t.Errorf("swap calls with live context = %d, want 0", got)
	}
	if got := up.swapCalls.Load(); got != 0 {
		t.Errorf("swap calls after disconnect = %d, want 0", got)
	}
	if got := sub.Sent(); len(got) != 0 {
		t.Errorf("sent = %v, want none", got)
	}
}

func TestSession_SendFailureEndsSession(t *testing.T) {
	src := &scriptedSource{cycles: []cycle{
		{trades: []model.Trade{whaleTrade("0xabc", 5000)}},
	}}
	sub := newRecordingSubscriber()
	sub.sendErr = errors.New("connection reset")

	s := NewSession("test", Config{Interval: 10 * time.Millisecond}, src, sub, nil)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("session did not stop after send failure")
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateConnected, "connected"},
		{StatePolling, "polling"},
		{StateIdle, "idle"},
		{StateDisconnected, "disconnected"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
