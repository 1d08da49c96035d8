package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abdulai258/aula/internal/store"
)

// TicketStore implements store.TicketStore backed by SQLite.
type TicketStore struct {
	db *sql.DB
}

func NewTicketStore(db *sql.DB) *TicketStore {
	return &TicketStore{db: db}
}

func (s *TicketStore) Create(ctx context.Context, username, description string) (*store.Ticket, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tickets (username, description, status, created_at) VALUES (?, ?, ?, ?)`,
		username, description, store.TicketStatusOpen, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("ticket id: %w", err)
	}
	return &store.Ticket{
		ID:          id,
		Username:    username,
		Description: description,
		Status:      store.TicketStatusOpen,
		CreatedAt:   now,
	}, nil
}

func (s *TicketStore) Status(ctx context.Context, id int64) (string, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM tickets WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("ticket status: %w", err)
	}
	return status, nil
}

func (s *TicketStore) List(ctx context.Context) ([]store.Ticket, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, description, status, created_at FROM tickets ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []store.Ticket
	for rows.Next() {
		var t store.Ticket
		var created string
		if err := rows.Scan(&t.ID, &t.Username, &t.Description, &t.Status, &created); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			t.CreatedAt = ts
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}
	return tickets, nil
}
