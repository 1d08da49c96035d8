package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdulai258/aula/internal/store"
)

// MessageStore implements store.MessageStore backed by SQLite.
type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Save(ctx context.Context, username, text string, sender store.Sender) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (username, message, sender, timestamp) VALUES (?, ?, ?, ?)`,
		username, text, string(sender), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

func (s *MessageStore) History(ctx context.Context) ([]store.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, message, sender, timestamp FROM messages ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var msgs []store.Message
	for rows.Next() {
		var m store.Message
		var sender, ts string
		if err := rows.Scan(&m.ID, &m.Username, &m.Text, &sender, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Sender = store.Sender(sender)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			m.Timestamp = t
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return msgs, nil
}
