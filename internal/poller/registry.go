package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ErrRegistryClosed is returned by Attach after Close.
var ErrRegistryClosed = errors.New("registry closed")

type entry struct {
	session *Session
	cancel  context.CancelFunc
}

// Registry owns the running whale sessions, keyed by subscriber id.
type Registry struct {
	cfg      Config
	source   TradeSource
	logger   *slog.Logger
	observer Observer

	mu       sync.Mutex
	sessions map[string]entry
	closed   bool
	wg       sync.WaitGroup
}

// NewRegistry creates a new Registry. observer may be nil.
func NewRegistry(cfg Config, source TradeSource, observer Observer, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Registry{
		cfg:      cfg.withDefaults(),
		source:   source,
		logger:   logger,
		observer: observer,
		sessions: make(map[string]entry),
	}
}

// Attach starts a session for sub and returns its id. The session ends when
// sub disconnects, Detach is called, or the registry closes. If sub is an
// io.Closer it is closed when the session ends.
func (r *Registry) Attach(sub Subscriber) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", ErrRegistryClosed
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())

	s := NewSession(id, r.cfg, r.source, sub, r.logger)
	s.observer = r.observer

	r.sessions[id] = entry{session: s, cancel: cancel}
	r.observer.SetSubscribers(len(r.sessions))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		s.Run(ctx)
		r.remove(id)

		if c, ok := sub.(io.Closer); ok {
			c.Close()
		}
	}()

	r.logger.Info("whale subscriber attached", "subscriber", id)
	return id, nil
}

// Detach cancels the session with the given id. Unknown ids are ignored.
func (r *Registry) Detach(id string) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()

	if ok {
		e.cancel()
	}
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	r.observer.SetSubscribers(n)
	r.logger.Info("whale subscriber detached", "subscriber", id)
}

// Len returns the number of running sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close cancels every session and waits for them to exit.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	for _, e := range r.sessions {
		e.cancel()
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("whale registry closed")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
