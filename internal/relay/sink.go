package relay

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Abdulai258/aula/internal/store"
)

// Sink is the persistence collaborator the router talks to. Save is
// fire-and-forget: routing never waits on it and never sees its
// errors. History is only read when an administrator connects.
type Sink interface {
	Save(username, text string, sender store.Sender)
	History(ctx context.Context) ([]store.Message, error)
}

type saveRequest struct {
	username string
	text     string
	sender   store.Sender
}

// AsyncSink queues appends to a MessageStore on a worker goroutine.
// Save errors are logged and dropped; a full queue drops the message
// rather than blocking routing.
type AsyncSink struct {
	messages store.MessageStore
	queue    chan saveRequest
	done     chan struct{}
	once     sync.Once

	mu     sync.RWMutex
	closed bool
}

// NewAsyncSink starts the background writer.
func NewAsyncSink(messages store.MessageStore) *AsyncSink {
	s := &AsyncSink{
		messages: messages,
		queue:    make(chan saveRequest, 256),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *AsyncSink) run() {
	defer close(s.done)
	for req := range s.queue {
		if err := s.messages.Save(context.Background(), req.username, req.text, req.sender); err != nil {
			slog.Error("message save failed", "username", req.username, "error", err)
		}
	}
}

func (s *AsyncSink) Save(username, text string, sender store.Sender) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		// Late append during shutdown, e.g. a departure notice racing
		// the server teardown.
		slog.Warn("sink closed, dropping append", "username", username)
		return
	}
	select {
	case s.queue <- saveRequest{username: username, text: text, sender: sender}:
	default:
		slog.Warn("message log queue full, dropping append", "username", username)
	}
}

func (s *AsyncSink) History(ctx context.Context) ([]store.Message, error) {
	return s.messages.History(ctx)
}

// Close drains queued appends and stops the worker. Safe to call more
// than once.
func (s *AsyncSink) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.queue)
	})
	<-s.done
}
