package stream

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/zora-dashboard/internal/model"
)

// maxReadSize bounds frames accepted from subscribers; they only send
// control frames.
const maxReadSize = 512

// Upgrader turns HTTP requests into whale stream connections.
type Upgrader struct {
	cfg      Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewUpgrader creates an Upgrader. checkOrigin may be nil to accept any origin.
func NewUpgrader(cfg Config, checkOrigin func(r *http.Request) bool, logger *slog.Logger) *Upgrader {
	if logger == nil {
		logger = slog.Default()
	}
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Upgrader{
		cfg:    cfg.withDefaults(),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Upgrade performs the WebSocket handshake and starts the connection's read
// and keepalive loops. On failure the upgrader has already replied to the
// client.
func (u *Upgrader) Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := u.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		cfg:    u.cfg,
		logger: u.logger.With("remote", r.RemoteAddr),
		conn:   ws,
		done:   make(chan struct{}),
	}

	ws.SetReadLimit(maxReadSize)
	ws.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	})

	go c.readLoop()
	go c.heartbeatLoop()

	c.logger.Debug("websocket subscriber connected")
	return c, nil
}

// Conn is the server side of one whale stream connection.
type Conn struct {
	cfg    Config
	logger *slog.Logger
	conn   *websocket.Conn

	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

// Send writes one whale_trade frame. Any write failure closes the connection.
func (c *Conn) Send(ctx context.Context, trade model.Trade) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	data, err := NewTradeMessage(trade)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(c.cfg.WriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(deadline)
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.Close()
		return err
	}
	return nil
}

// Done is closed once the connection is closed by either side.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Close sends a close frame and releases the connection. It is idempotent.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = c.conn.Close()
		c.logger.Debug("websocket subscriber closed")
	})
	return err
}

// readLoop discards inbound frames and detects disconnects.
func (c *Conn) readLoop() {
	defer c.Close()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read failed", "err", err)
			}
			return
		}
	}
}

// heartbeatLoop pings the subscriber so dead peers hit the read deadline.
func (c *Conn) heartbeatLoop() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(c.cfg.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				c.logger.Debug("failed to send ping", "err", err)
				c.Close()
				return
			}
		}
	}
}
