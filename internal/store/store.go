package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// Sender identifies who authored a persisted chat message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAdmin Sender = "admin"
	SenderBot   Sender = "bot"
)

// TicketStatusOpen is the status assigned to newly opened tickets.
const TicketStatusOpen = "Aberto"

// Message is one row of the durable chat log. Timestamps are assigned
// by the store at save time, not by the caller.
type Message struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"message"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Ticket is a support ticket opened through the HTTP API.
type Ticket struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// MessageStore is the durable append-only chat log.
type MessageStore interface {
	Save(ctx context.Context, username, text string, sender Sender) error
	// History returns all messages in chronological order.
	History(ctx context.Context) ([]Message, error)
}

// TicketStore manages support tickets.
type TicketStore interface {
	Create(ctx context.Context, username, description string) (*Ticket, error)
	// Status returns the status of one ticket, or ErrNotFound.
	Status(ctx context.Context, id int64) (string, error)
	List(ctx context.Context) ([]Ticket, error)
}

// Stores is the top-level container for all storage backends.
type Stores struct {
	Messages MessageStore
	Tickets  TicketStore
}
