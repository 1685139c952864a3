package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Queries wraps the database handle with the persistence operations used by
// the relay and the HTTP API.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// Message is a persisted chat message.
type Message struct {
	ID        string
	Sender    string
	Content   string
	ImageID   sql.NullString
	CreatedAt time.Time
}

// SaveMessageParams holds the fields of a message before the store assigns
// its id.
type SaveMessageParams struct {
	Sender    string
	Content   string
	ImageID   sql.NullString
	CreatedAt time.Time
}

// SaveMessage persists a message and returns it with its assigned id.
func (q *Queries) SaveMessage(ctx context.Context, arg SaveMessageParams) (Message, error) {
	msg := Message{
		ID:        uuid.NewString(),
		Sender:    arg.Sender,
		Content:   arg.Content,
		ImageID:   arg.ImageID,
		CreatedAt: arg.CreatedAt,
	}
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO messages (id, sender, content, image_id, created_at) VALUES (?, ?, ?, ?, ?)",
		msg.ID, msg.Sender, msg.Content, msg.ImageID, msg.CreatedAt,
	)
	if err != nil {
		return Message{}, fmt.Errorf("failed to save message: %w", err)
	}
	return msg, nil
}

// ListMessages returns all messages ordered by creation time ascending.
func (q *Queries) ListMessages(ctx context.Context) ([]Message, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, sender, content, image_id, created_at FROM messages ORDER BY created_at ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Content, &m.ImageID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// DeleteMessage removes a message by id. Returns ErrNotFound when the id does
// not exist.
func (q *Queries) DeleteMessage(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
