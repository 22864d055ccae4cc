package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestNextSequence(t *testing.T) {
	db := testDB(t)

	first, err := NextSequence(db, "messages")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := NextSequence(db, "messages")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second != first+1 {
		t.Errorf("expected consecutive sequences, got %d then %d", first, second)
	}
}

func TestMessageRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Append And List", func(t *testing.T) {
		repo := NewMessageRepository(testDB(t))

		user := models.ChatMessage{
			ID:        shared.GenerateID(),
			Role:      models.RoleUser,
			Content:   "what did I listen to this year?",
			Timestamp: time.Now(),
		}
		assistant := models.ChatMessage{
			ID:        shared.GenerateID(),
			Role:      models.RoleAssistant,
			Content:   "Here's your year in music!",
			Timestamp: time.Now(),
			Images: []models.ImageReference{
				{URL: "https://i.scdn.co/image/0123456789abcdef0123456789abcdef", Kind: models.KindAlbum},
			},
			Wrapped: &models.WrappedSummary{
				TopArtists: []models.WrappedArtist{{Name: "Caroline Polachek"}},
				TopGenre:   "art pop",
			},
		}

		if err := repo.Append(ctx, user); err != nil {
			t.Fatalf("failed to append user message: %v", err)
		}
		if err := repo.Append(ctx, assistant); err != nil {
			t.Fatalf("failed to append assistant message: %v", err)
		}

		msgs, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list messages: %v", err)
		}
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		if msgs[0].ID != user.ID || msgs[1].ID != assistant.ID {
			t.Error("expected conversation order to be preserved")
		}
		if len(msgs[1].Images) != 1 || msgs[1].Images[0].Kind != models.KindAlbum {
			t.Error("expected image attachment to round-trip")
		}
		if msgs[1].Wrapped == nil || msgs[1].Wrapped.TopGenre != "art pop" {
			t.Error("expected wrapped summary to round-trip")
		}
		if msgs[0].Images != nil || msgs[0].Wrapped != nil {
			t.Error("expected plain message to have no attachments")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewMessageRepository(testDB(t))

		msg := models.ChatMessage{
			ID:        shared.GenerateID(),
			Role:      models.RoleUser,
			Content:   "bye",
			Timestamp: time.Now(),
		}
		if err := repo.Append(ctx, msg); err != nil {
			t.Fatalf("failed to append: %v", err)
		}

		if err := repo.Clear(ctx); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty history, got %d messages", count)
		}

		// sequence restarts after clear
		if err := repo.Append(ctx, msg); err != nil {
			t.Fatalf("failed to append after clear: %v", err)
		}
		var seq int
		db := repo.db
		if err := db.QueryRow("SELECT sequence FROM messages WHERE id = ?", msg.ID).Scan(&seq); err != nil {
			t.Fatalf("failed to read sequence: %v", err)
		}
		if seq != 1 {
			t.Errorf("expected sequence to restart at 1, got %d", seq)
		}
	})

	t.Run("List Empty", func(t *testing.T) {
		repo := NewMessageRepository(testDB(t))
		msgs, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(msgs) != 0 {
			t.Errorf("expected empty history, got %d", len(msgs))
		}
	})
}
