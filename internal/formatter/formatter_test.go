package formatter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/muse/internal/models"
	mocks "github.com/desertthunder/muse/internal/testing"
)

func sampleTranscript() []models.ChatMessage {
	ts := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	return []models.ChatMessage{
		{
			ID:        "m1",
			Role:      models.RoleUser,
			Content:   "show me my wrapped",
			Timestamp: ts,
		},
		{
			ID:        "m2",
			Role:      models.RoleAssistant,
			Content:   "Here's your year in music!",
			Timestamp: ts.Add(time.Minute),
			Images: []models.ImageReference{
				{URL: "https://i.scdn.co/image/0123456789abcdef0123456789abcdef", Kind: models.KindAlbum},
			},
			Wrapped: &models.WrappedSummary{
				TopArtists: []models.WrappedArtist{{Name: "Caroline Polachek"}, {Name: "Japanese Breakfast"}},
				TopSongs:   []models.WrappedSong{{Name: "Welcome To My Island", Artist: "Caroline Polachek"}},
				TopGenre:   "art pop",
				Timeframe:  "2025",
			},
		},
	}
}

func TestTranscriptToMarkdown(t *testing.T) {
	t.Run("Full Transcript", func(t *testing.T) {
		data, err := TranscriptToMarkdown(sampleTranscript(), "My Chat")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		md := string(data)

		for _, want := range []string{
			"# My Chat",
			"**Messages**: 2",
			"### You (2025-06-01 14:30)",
			"### Muse",
			"show me my wrapped",
			"![album](https://i.scdn.co/image/0123456789abcdef0123456789abcdef)",
			"#### Your Wrapped (2025)",
			"1. Caroline Polachek",
			"**Top Genre**: art pop",
		} {
			if !strings.Contains(md, want) {
				t.Errorf("expected markdown to contain %q", want)
			}
		}
	})

	t.Run("Default Title", func(t *testing.T) {
		data, err := TranscriptToMarkdown(nil, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(data), "# Chat Transcript") {
			t.Error("expected default title")
		}
	})
}

func TestWrappedToMarkdown(t *testing.T) {
	t.Run("Skips Missing Fields", func(t *testing.T) {
		md := string(WrappedToMarkdown(&models.WrappedSummary{TopGenre: "indie"}))
		if strings.Contains(md, "Top Artists") || strings.Contains(md, "Top Songs") {
			t.Error("expected empty lists to be skipped")
		}
		if !strings.Contains(md, "**Top Genre**: indie") {
			t.Error("expected genre line")
		}
		if !strings.Contains(md, "#### Your Wrapped\n") {
			t.Error("expected untimed title without parenthetical")
		}
	})

	t.Run("Song With Artist", func(t *testing.T) {
		md := string(WrappedToMarkdown(&models.WrappedSummary{
			TopSongs: []models.WrappedSong{{Name: "Paprika", Artist: "Japanese Breakfast"}},
		}))
		if !strings.Contains(md, "1. Japanese Breakfast - Paprika") {
			t.Errorf("unexpected song rendering:\n%s", md)
		}
	})
}

func TestTranscriptToText(t *testing.T) {
	data, err := TranscriptToText(sampleTranscript(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "You: show me my wrapped") {
		t.Error("expected user line")
	}
	if !strings.Contains(text, "Muse: Here's your year in music!") {
		t.Error("expected assistant line")
	}
	if !strings.Contains(text, "[album] https://i.scdn.co/image/") {
		t.Error("expected image line")
	}
}

func TestWriteExports(t *testing.T) {
	t.Run("Markdown Export Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "archive")

		result, err := WriteMarkdownExport(sampleTranscript(), dir, "My Chat")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Directory != dir {
			t.Errorf("unexpected directory: %s", result.Directory)
		}
		if len(result.Files) != 2 {
			t.Fatalf("expected 2 files, got %d", len(result.Files))
		}
		mocks.AssertFileExists(t, filepath.Join(dir, "README.md"))
		mocks.AssertFileExists(t, filepath.Join(dir, "transcript.json"))

		var decoded []models.ChatMessage
		raw := mocks.MustReadFile(t, filepath.Join(dir, "transcript.json"))
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			t.Fatalf("transcript.json is not valid JSON: %v", err)
		}
		if len(decoded) != 2 {
			t.Errorf("expected 2 messages in JSON export, got %d", len(decoded))
		}
	})

	t.Run("Text Export", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chat.txt")

		got, err := WriteTextExport(sampleTranscript(), path, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != path {
			t.Errorf("unexpected path: %s", got)
		}
		mocks.AssertFileExists(t, path)
	})

	t.Run("JSON Export Default Filename", func(t *testing.T) {
		wd := mocks.MustGetwd(t)
		dir := t.TempDir()
		mocks.MustChdir(t, dir)
		defer mocks.MustChdir(t, wd)

		got, err := WriteJSONExport(sampleTranscript(), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "transcript.json" {
			t.Errorf("unexpected default filename: %s", got)
		}
		if _, err := os.Stat(filepath.Join(dir, "transcript.json")); err != nil {
			t.Errorf("expected default file to exist: %v", err)
		}
	})
}
