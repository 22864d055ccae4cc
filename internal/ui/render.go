package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/muse/internal/models"
)

const goodbyeBanner = `
   see you next time
  keep the music playing`

// renderTranscript renders the full message log for the viewport.
func renderTranscript(msgs []models.ChatMessage, width int) string {
	if len(msgs) == 0 {
		return styles.muted.Render("Start a conversation by asking about music, playlists, or recommendations!")
	}

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(renderMessage(msg, width))
	}
	return b.String()
}

func renderMessage(msg models.ChatMessage, width int) string {
	var b strings.Builder

	if msg.Role == models.RoleUser {
		b.WriteString(styles.user.Render("You"))
	} else {
		b.WriteString(styles.bot.Render("Muse"))
	}
	b.WriteString("\n")
	b.WriteString(msg.Content)

	if len(msg.Images) > 0 {
		b.WriteString("\n")
		b.WriteString(renderImages(msg.Images))
	}
	if msg.Wrapped != nil {
		b.WriteString("\n")
		b.WriteString(renderWrapped(msg.Wrapped, width))
	}

	return b.String()
}

// renderImages lists extracted cover art as labelled links; terminals don't
// render the images themselves.
func renderImages(refs []models.ImageReference) string {
	var b strings.Builder
	for i, ref := range refs {
		if i > 0 {
			b.WriteString("\n")
		}
		label := styles.ok.Render(fmt.Sprintf("♪ %s", ref.Kind))
		b.WriteString(fmt.Sprintf("  %s %s", label, styles.muted.Render(ref.URL)))
	}
	return b.String()
}

// renderWrapped draws the year-in-review card. Missing fields are skipped.
func renderWrapped(w *models.WrappedSummary, width int) string {
	var b strings.Builder

	title := "Your Wrapped"
	if w.Timeframe != "" {
		title = fmt.Sprintf("Your Wrapped · %s", w.Timeframe)
	}
	b.WriteString(styles.title.Render(title))

	if len(w.TopArtists) > 0 {
		b.WriteString("\n" + styles.ok.Render("Top Artists"))
		for i, artist := range w.TopArtists {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, artist.Name))
		}
	}

	if len(w.TopSongs) > 0 {
		b.WriteString("\n" + styles.ok.Render("Top Songs"))
		for i, song := range w.TopSongs {
			if song.Artist != "" {
				b.WriteString(fmt.Sprintf("\n  %d. %s - %s", i+1, song.Artist, song.Name))
			} else {
				b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, song.Name))
			}
		}
	}

	if w.TopGenre != "" {
		b.WriteString(fmt.Sprintf("\n%s %s", styles.ok.Render("Top Genre:"), w.TopGenre))
	}

	card := styles.card
	if width > 8 {
		card = card.Width(width - 8)
	}
	return card.Render(b.String())
}
