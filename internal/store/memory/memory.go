// Package memory provides in-memory store implementations, used by
// tests and by `aula serve --store memory`.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Abdulai258/aula/internal/store"
)

// NewStores creates a fresh in-memory store set.
func NewStores() *store.Stores {
	return &store.Stores{
		Messages: &MessageStore{},
		Tickets:  &TicketStore{},
	}
}

// MessageStore implements store.MessageStore in memory.
type MessageStore struct {
	mu       sync.Mutex
	messages []store.Message
	nextID   int64
}

func (s *MessageStore) Save(ctx context.Context, username, text string, sender store.Sender) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.messages = append(s.messages, store.Message{
		ID:        s.nextID,
		Username:  username,
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *MessageStore) History(ctx context.Context) ([]store.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// TicketStore implements store.TicketStore in memory.
type TicketStore struct {
	mu      sync.Mutex
	tickets []store.Ticket
	nextID  int64
}

func (s *TicketStore) Create(ctx context.Context, username, description string) (*store.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := store.Ticket{
		ID:          s.nextID,
		Username:    username,
		Description: description,
		Status:      store.TicketStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	s.tickets = append(s.tickets, t)
	return &t, nil
}

func (s *TicketStore) Status(ctx context.Context, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.ID == id {
			return t.Status, nil
		}
	}
	return "", store.ErrNotFound
}

func (s *TicketStore) List(ctx context.Context) ([]store.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out, nil
}
