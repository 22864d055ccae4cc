package extract

import (
	"testing"
)

const wrappedPayload = `{"topGenre":"pop","timeframe":"This Year","topArtists":[{"name":"Mitski"}],"topSongs":[{"name":"First Love","artist":"Mitski"}]}`

func TestWrapped(t *testing.T) {
	t.Run("No Sentinel", func(t *testing.T) {
		if got := Wrapped("just a friendly reply about playlists"); got != nil {
			t.Errorf("expected nil without sentinel, got %+v", got)
		}
	})

	t.Run("Sentinel With Valid Payload", func(t *testing.T) {
		content := "hello " + WrappedSentinel + wrappedPayload + " world"

		summary := Wrapped(content)
		if summary == nil {
			t.Fatal("expected a summary")
		}
		if summary.TopGenre != "pop" {
			t.Errorf("expected topGenre 'pop', got %q", summary.TopGenre)
		}
		if summary.Timeframe != "This Year" {
			t.Errorf("expected timeframe 'This Year', got %q", summary.Timeframe)
		}
		if len(summary.TopArtists) != 1 || summary.TopArtists[0].Name != "Mitski" {
			t.Errorf("unexpected topArtists: %+v", summary.TopArtists)
		}
		if len(summary.TopSongs) != 1 || summary.TopSongs[0].Artist != "Mitski" {
			t.Errorf("unexpected topSongs: %+v", summary.TopSongs)
		}
	})

	t.Run("Whitespace Between Sentinel And Object", func(t *testing.T) {
		content := WrappedSentinel + "\n  " + wrappedPayload

		summary := Wrapped(content)
		if summary == nil {
			t.Fatal("expected a summary")
		}
		if summary.TopGenre != "pop" {
			t.Errorf("expected topGenre 'pop', got %q", summary.TopGenre)
		}
	})

	t.Run("Unbalanced Braces", func(t *testing.T) {
		content := WrappedSentinel + `{"topGenre": "pop"`

		if got := Wrapped(content); got != nil {
			t.Errorf("expected nil for unbalanced braces, got %+v", got)
		}
	})

	t.Run("Sentinel Without Object", func(t *testing.T) {
		if got := Wrapped(WrappedSentinel + " nothing here"); got != nil {
			t.Errorf("expected nil without an object, got %+v", got)
		}
	})

	t.Run("Looser Pattern Recovers Nested Object", func(t *testing.T) {
		// The tightest pattern stops at the first closing brace, which lands
		// inside the nested object; a later strategy must pick this up.
		content := WrappedSentinel + `{"topArtists":[{"name":"Mitski"}],"topSongs":[],"topGenre":"indie","timeframe":"This Year"}`

		summary := Wrapped(content)
		if summary == nil {
			t.Fatal("expected a summary via fallback strategy")
		}
		if summary.TopGenre != "indie" {
			t.Errorf("expected topGenre 'indie', got %q", summary.TopGenre)
		}
	})

	t.Run("First Parse Wins", func(t *testing.T) {
		content := WrappedSentinel + `{"topGenre":"first","topArtists":[],"topSongs":[],"timeframe":"x"} later {"topGenre":"second"}`

		summary := Wrapped(content)
		if summary == nil {
			t.Fatal("expected a summary")
		}
		if summary.TopGenre != "first" {
			t.Errorf("expected first well-formed object to win, got %q", summary.TopGenre)
		}
	})

	t.Run("Text Is Never Stripped", func(t *testing.T) {
		content := "hi " + WrappedSentinel + wrappedPayload
		before := content

		Wrapped(content)
		if content != before {
			t.Error("Wrapped must not mutate its input")
		}
	})
}
