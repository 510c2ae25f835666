package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rickgao/zora-dashboard/internal/model"
)

// Errors
var (
	ErrClosed          = errors.New("connection closed")
	ErrStaleConnection = errors.New("connection stale (no pong)")
)

// Message types.
const (
	TypeWhaleTrade = "whale_trade"
)

// Message is a single frame on the whale stream.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// TimestampedMessage wraps a received message with its local receive time.
type TimestampedMessage struct {
	Message
	ReceivedAt time.Time
}

// NewTradeMessage encodes a trade as a whale_trade frame.
func NewTradeMessage(trade model.Trade) ([]byte, error) {
	data, err := json.Marshal(trade)
	if err != nil {
		return nil, fmt.Errorf("marshal trade: %w", err)
	}
	return json.Marshal(Message{Type: TypeWhaleTrade, Data: data})
}

// Trade decodes the payload of a whale_trade frame.
func (m Message) Trade() (model.Trade, error) {
	if m.Type != TypeWhaleTrade {
		return model.Trade{}, fmt.Errorf("unexpected message type %q", m.Type)
	}
	var tr model.Trade
	if err := json.Unmarshal(m.Data, &tr); err != nil {
		return model.Trade{}, fmt.Errorf("unmarshal trade: %w", err)
	}
	return tr, nil
}

// Config holds WebSocket connection settings.
type Config struct {
	WriteTimeout time.Duration // Per-frame write deadline (default: 10s)
	PingInterval time.Duration // Keepalive ping period (default: 30s)
	PongTimeout  time.Duration // Max silence before the peer is dropped (default: 60s)
	BufferSize   int           // Client receive buffer (default: 64)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		WriteTimeout: 10 * time.Second,
		PingInterval: 30 * time.Second,
		PongTimeout:  60 * time.Second,
		BufferSize:   64,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = def.PingInterval
	}
	if c.PongTimeout <= 0 {
		c.PongTimeout = def.PongTimeout
	}
	if c.BufferSize <= 0 {
		c.BufferSize = def.BufferSize
	}
	return c
}
