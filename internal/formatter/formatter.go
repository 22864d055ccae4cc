// package formatter provides functions to export chat transcripts to various formats (Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
)

const timestampLayout = "2006-01-02 15:04"

func speaker(role models.Role) string {
	if role == models.RoleUser {
		return "You"
	}
	return "Muse"
}

// TranscriptToMarkdown converts a message log to Markdown with one section
// per turn, inlined image references, and wrapped summary cards.
func TranscriptToMarkdown(msgs []models.ChatMessage, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Chat Transcript"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Messages**: %d\n\n", len(msgs)))

	for _, msg := range msgs {
		buf.WriteString(fmt.Sprintf("### %s", speaker(msg.Role)))
		if !msg.Timestamp.IsZero() {
			buf.WriteString(fmt.Sprintf(" (%s)", msg.Timestamp.Format(timestampLayout)))
		}
		buf.WriteString("\n\n")

		if msg.Content != "" {
			buf.WriteString(msg.Content)
			buf.WriteString("\n\n")
		}

		for _, img := range msg.Images {
			buf.WriteString(fmt.Sprintf("![%s](%s)\n\n", img.Kind, img.URL))
		}

		if msg.Wrapped != nil {
			buf.Write(WrappedToMarkdown(msg.Wrapped))
		}
	}

	return buf.Bytes(), nil
}

// WrappedToMarkdown renders a wrapped summary as a Markdown section. Missing
// fields are skipped rather than rendered empty.
func WrappedToMarkdown(w *models.WrappedSummary) []byte {
	var buf bytes.Buffer

	title := "Your Wrapped"
	if w.Timeframe != "" {
		title = fmt.Sprintf("Your Wrapped (%s)", w.Timeframe)
	}
	buf.WriteString(fmt.Sprintf("#### %s\n\n", title))

	if len(w.TopArtists) > 0 {
		buf.WriteString("**Top Artists**\n\n")
		for i, artist := range w.TopArtists {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, artist.Name))
		}
		buf.WriteString("\n")
	}

	if len(w.TopSongs) > 0 {
		buf.WriteString("**Top Songs**\n\n")
		for i, song := range w.TopSongs {
			if song.Artist != "" {
				buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Name))
			} else {
				buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, song.Name))
			}
		}
		buf.WriteString("\n")
	}

	if w.TopGenre != "" {
		buf.WriteString(fmt.Sprintf("**Top Genre**: %s\n\n", w.TopGenre))
	}

	return buf.Bytes()
}

// TranscriptToText converts a message log to plain text.
func TranscriptToText(msgs []models.ChatMessage, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Chat Transcript"
	}
	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Messages: %d\n\n", len(msgs)))

	for _, msg := range msgs {
		buf.WriteString(fmt.Sprintf("%s: %s\n", speaker(msg.Role), msg.Content))
		for _, img := range msg.Images {
			buf.WriteString(fmt.Sprintf("  [%s] %s\n", img.Kind, img.URL))
		}
	}

	return buf.Bytes(), nil
}

// ToTranscriptJSON generates a pretty-printed JSON representation of the log.
func ToTranscriptJSON(msgs []models.ChatMessage) ([]byte, error) {
	return shared.MarshalJSON(msgs, true)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports a transcript to Markdown in a dedicated directory.
//
// Creates {dir}/README.md plus {dir}/transcript.json alongside it. Cover art
// downloads are handled separately by the archive engine.
func WriteMarkdownExport(msgs []models.ChatMessage, outputDir, title string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "transcript"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	mdData, err := TranscriptToMarkdown(msgs, title)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}
	result.Files = append(result.Files, mdFile)

	jsonData, err := ToTranscriptJSON(msgs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JSON: %w", err)
	}

	jsonFile := fmt.Sprintf("%s/transcript.json", outputDir)
	if err := os.WriteFile(jsonFile, jsonData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write JSON file: %w", err)
	}
	result.Files = append(result.Files, jsonFile)

	return result, nil
}

// WriteTextExport exports a transcript to plain text format.
//
// Defaults to transcript.txt as the filename.
func WriteTextExport(msgs []models.ChatMessage, filepath, title string) (string, error) {
	if filepath == "" {
		filepath = "transcript.txt"
	}

	textData, err := TranscriptToText(msgs, title)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// WriteJSONExport exports a transcript to a pretty-printed JSON file.
func WriteJSONExport(msgs []models.ChatMessage, filepath string) (string, error) {
	if filepath == "" {
		filepath = "transcript.json"
	}

	jsonData, err := ToTranscriptJSON(msgs)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(filepath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return filepath, nil
}
