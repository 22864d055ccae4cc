package extract

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	t.Run("Marker Free Text Is Identity", func(t *testing.T) {
		raw := "Sure! Try some shoegaze: Slowdive, Ride, and My Bloody Valentine."

		result := Sanitize(raw)
		if result.Text != raw {
			t.Errorf("expected text unchanged, got %q", result.Text)
		}
		if len(result.Images) != 0 {
			t.Errorf("expected no images, got %d", len(result.Images))
		}
		if result.Wrapped != nil {
			t.Errorf("expected no wrapped summary, got %+v", result.Wrapped)
		}
	})

	t.Run("Idempotent On Cleaned Text", func(t *testing.T) {
		raw := "Top pick!\n\n![Artist: Mitski](https://i.scdn.co/image/" + coverHex + ")\n\n" +
			WrappedSentinel + wrappedPayload + "\nEnjoy!"

		first := Sanitize(raw)
		second := Sanitize(first.Text)
		if second.Text != first.Text {
			t.Errorf("second pass mutated text:\nfirst:  %q\nsecond: %q", first.Text, second.Text)
		}
	})

	t.Run("Strips Wrapped Span On Parse Success", func(t *testing.T) {
		raw := "hello " + WrappedSentinel + wrappedPayload + " world"

		result := Sanitize(raw)
		if result.Wrapped == nil {
			t.Fatal("expected a wrapped summary")
		}
		if result.Wrapped.TopGenre != "pop" {
			t.Errorf("expected topGenre 'pop', got %q", result.Wrapped.TopGenre)
		}
		if strings.Contains(result.Text, WrappedSentinel) {
			t.Errorf("sentinel leaked into display text: %q", result.Text)
		}
		if strings.ContainsAny(result.Text, "{}") {
			t.Errorf("JSON braces leaked into display text: %q", result.Text)
		}
		if result.Text != "hello world" {
			t.Errorf("expected seam closed to 'hello world', got %q", result.Text)
		}
	})

	t.Run("Leaves Unparsable Sentinel Visible", func(t *testing.T) {
		raw := "here you go " + WrappedSentinel + `{"topGenre": "pop"`

		result := Sanitize(raw)
		if result.Wrapped != nil {
			t.Errorf("expected no summary, got %+v", result.Wrapped)
		}
		if result.Text != raw {
			t.Errorf("expected fail-open text unchanged, got %q", result.Text)
		}
	})

	t.Run("Images And Wrapped Together", func(t *testing.T) {
		url := "https://i.scdn.co/image/" + coverHex
		raw := "Your year!\n\n![Artist: Mitski](" + url + ")\n\n" + WrappedSentinel + wrappedPayload

		result := Sanitize(raw)
		if len(result.Images) != 1 {
			t.Fatalf("expected 1 image, got %d", len(result.Images))
		}
		if result.Wrapped == nil {
			t.Fatal("expected a wrapped summary")
		}
		if strings.Contains(result.Text, "![") || strings.Contains(result.Text, WrappedSentinel) {
			t.Errorf("markers leaked into display text: %q", result.Text)
		}
		if !strings.Contains(result.Text, "Your year!") {
			t.Errorf("prose lost from display text: %q", result.Text)
		}
	})

	t.Run("Sentinel Inside Image Alt Text Is Not Double Processed", func(t *testing.T) {
		// The markdown span carries the sentinel as prose; stripping the span
		// must remove it entirely rather than leaving a dangling payload scan.
		raw := "![" + WrappedSentinel + " explainer](https://i.scdn.co/image/" + coverHex + ") all done"

		result := Sanitize(raw)
		if result.Wrapped != nil {
			t.Errorf("expected no wrapped summary, got %+v", result.Wrapped)
		}
		if strings.Contains(result.Text, WrappedSentinel) {
			t.Errorf("sentinel from alt text leaked: %q", result.Text)
		}
		if len(result.Images) != 1 {
			t.Errorf("expected the image itself to survive, got %d", len(result.Images))
		}
	})

	t.Run("Wrapped Only Reply Leaves Empty Text", func(t *testing.T) {
		result := Sanitize(WrappedSentinel + wrappedPayload)
		if result.Wrapped == nil {
			t.Fatal("expected a wrapped summary")
		}
		if result.Text != "" {
			t.Errorf("expected empty display text, got %q", result.Text)
		}
	})
}
