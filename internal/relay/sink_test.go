package relay

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Abdulai258/aula/internal/store"
)

// failingStore always errors, to prove failures stay inside the sink.
type failingStore struct{}

func (failingStore) Save(context.Context, string, string, store.Sender) error {
	return errors.New("disk full")
}

func (failingStore) History(context.Context) ([]store.Message, error) {
	return nil, nil
}

// countingStore records saves for assertions after Close drains.
type countingStore struct {
	mu    sync.Mutex
	saved []string
}

func (s *countingStore) Save(ctx context.Context, username, text string, sender store.Sender) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, username+": "+text)
	return nil
}

func (s *countingStore) History(context.Context) ([]store.Message, error) {
	return nil, nil
}

func TestAsyncSinkDrainsOnClose(t *testing.T) {
	cs := &countingStore{}
	sink := NewAsyncSink(cs)

	sink.Save("alice", "oi", store.SenderUser)
	sink.Save("Bot", "Olá, alice! Como posso ajudar?", store.SenderBot)
	sink.Close()

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if len(cs.saved) != 2 {
		t.Fatalf("saved = %v, want 2 entries", cs.saved)
	}
	if cs.saved[0] != "alice: oi" {
		t.Errorf("saved[0] = %q", cs.saved[0])
	}
}

func TestAsyncSinkSwallowsStoreErrors(t *testing.T) {
	sink := NewAsyncSink(failingStore{})

	// Must not panic or block; the error is logged and dropped.
	sink.Save("alice", "oi", store.SenderUser)
	sink.Close()
}

func TestAsyncSinkCloseIsIdempotent(t *testing.T) {
	sink := NewAsyncSink(&countingStore{})
	sink.Close()
	sink.Close()
}
