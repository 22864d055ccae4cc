package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/muse/internal/models"
)

// MessageRepository persists chat turns to sqlite. Attachments (image
// references, wrapped summaries) are stored as JSON text columns.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new [MessageRepository] with the given database connection
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append inserts one chat turn at the end of the history.
func (r *MessageRepository) Append(ctx context.Context, msg models.ChatMessage) error {
	sequence, err := NextSequence(r.db, "messages")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	images, err := encodeAttachment(msg.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}
	wrapped, err := encodeAttachment(msg.Wrapped)
	if err != nil {
		return fmt.Errorf("failed to encode wrapped summary: %w", err)
	}

	query := `
		INSERT INTO messages (id, sequence, role, content, images, wrapped, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query, msg.ID, sequence, string(msg.Role), msg.Content, images, wrapped, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

// List retrieves the full history in conversation order.
func (r *MessageRepository) List(ctx context.Context) ([]models.ChatMessage, error) {
	query := `
		SELECT id, role, content, images, wrapped, created_at
		FROM messages
		ORDER BY sequence ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.ChatMessage
	for rows.Next() {
		var (
			msg     models.ChatMessage
			role    string
			images  sql.NullString
			wrapped sql.NullString
		)

		if err := rows.Scan(&msg.ID, &role, &msg.Content, &images, &wrapped, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = models.Role(role)

		if images.Valid && images.String != "" {
			if err := json.Unmarshal([]byte(images.String), &msg.Images); err != nil {
				return nil, fmt.Errorf("failed to decode images for %s: %w", msg.ID, err)
			}
		}
		if wrapped.Valid && wrapped.String != "" {
			if err := json.Unmarshal([]byte(wrapped.String), &msg.Wrapped); err != nil {
				return nil, fmt.Errorf("failed to decode wrapped summary for %s: %w", msg.ID, err)
			}
		}

		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return msgs, nil
}

// Clear removes the entire history and resets the sequence counter.
func (r *MessageRepository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages"); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE messages_sequence SET value = 0 WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to reset sequence: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of stored turns.
func (r *MessageRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// encodeAttachment marshals a non-empty attachment to JSON; nil or empty
// attachments are stored as NULL.
func encodeAttachment(v any) (sql.NullString, error) {
	switch t := v.(type) {
	case []models.ImageReference:
		if len(t) == 0 {
			return sql.NullString{}, nil
		}
	case *models.WrappedSummary:
		if t == nil {
			return sql.NullString{}, nil
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
