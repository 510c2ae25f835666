package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a whale stream subscriber connection.
type Client struct {
	cfg    Config
	url    string
	logger *slog.Logger

	conn *websocket.Conn

	messages chan TimestampedMessage
	errors   chan error
	done     chan struct{}

	mu         sync.RWMutex
	lastPingAt time.Time
	closed     bool
}

// Dial connects to a whale stream endpoint.
func Dial(ctx context.Context, url string, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		url:        url,
		logger:     logger,
		conn:       conn,
		messages:   make(chan TimestampedMessage, cfg.BufferSize),
		errors:     make(chan error, 1),
		done:       make(chan struct{}),
		lastPingAt: time.Now(),
	}

	// Server sends ping, we respond with pong
	conn.SetPingHandler(func(data string) error {
		c.mu.Lock()
		c.lastPingAt = time.Now()
		c.mu.Unlock()

		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(data),
			time.Now().Add(time.Second),
		)
	})

	go c.readLoop()
	go c.staleLoop()

	c.logger.Debug("websocket connected", "url", url)
	return c, nil
}

// Messages returns the channel of decoded frames.
func (c *Client) Messages() <-chan TimestampedMessage {
	return c.messages
}

// Errors returns a channel of connection errors.
func (c *Client) Errors() <-chan error {
	return c.errors
}

// Close gracefully closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)

	c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return c.conn.Close()
}

func (c *Client) fail(err error) {
	select {
	case c.errors <- err:
	default:
	}
}

// readLoop decodes frames onto the messages channel.
func (c *Client) readLoop() {
	defer close(c.messages)

	for {
		_, data, err := c.conn.ReadMessage()
		receivedAt := time.Now()

		if err != nil {
			// Ignore errors after Close() is called
			select {
			case <-c.done:
			default:
				c.fail(err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("dropping malformed frame", "err", err)
			continue
		}

		select {
		case c.messages <- TimestampedMessage{Message: msg, ReceivedAt: receivedAt}:
		case <-c.done:
			return
		default:
			c.logger.Warn("message buffer full, dropping message")
		}
	}
}

// staleLoop reports a stale connection when the server stops pinging.
func (c *Client) staleLoop() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.RLock()
			lastPing := c.lastPingAt
			c.mu.RUnlock()

			if time.Since(lastPing) > c.cfg.PongTimeout {
				c.logger.Warn("no ping received, connection stale",
					"last_ping", lastPing,
					"timeout", c.cfg.PongTimeout,
				)
				c.fail(ErrStaleConnection)
				return
			}
		}
	}
}
