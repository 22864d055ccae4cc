package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/desertthunder/muse/internal/models"
)

const coverHex = "0123456789abcdef0123456789abcdef"

func TestImages(t *testing.T) {
	t.Run("Plain Text Passthrough", func(t *testing.T) {
		raw := "Here are some recommendations based on your taste."

		refs, cleaned := Images(raw)
		if len(refs) != 0 {
			t.Errorf("expected no references, got %d", len(refs))
		}
		if cleaned != raw {
			t.Errorf("expected text untouched, got %q", cleaned)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		refs, cleaned := Images("")
		if len(refs) != 0 || cleaned != "" {
			t.Errorf("expected nothing from empty input, got %d refs and %q", len(refs), cleaned)
		}
	})

	t.Run("Markdown Artist Image", func(t *testing.T) {
		url := "https://i.scdn.co/image/" + coverHex
		raw := fmt.Sprintf("Check this out!\n\n![Artist: Radiohead](%s)\n\nEnjoy!", url)

		refs, cleaned := Images(raw)
		if len(refs) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(refs))
		}
		if refs[0].URL != url {
			t.Errorf("expected URL %s, got %s", url, refs[0].URL)
		}
		if refs[0].Kind != models.KindArtist {
			t.Errorf("expected kind artist, got %s", refs[0].Kind)
		}
		if strings.Contains(cleaned, "![") || strings.Contains(cleaned, url) {
			t.Errorf("expected markdown span removed, got %q", cleaned)
		}
	})

	t.Run("Track Context Classification", func(t *testing.T) {
		url := "https://i.scdn.co/image/" + coverHex
		raw := fmt.Sprintf("Track: Karma Police %s", url)

		refs, _ := Images(raw)
		if len(refs) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(refs))
		}
		if refs[0].Kind != models.KindTrack {
			t.Errorf("expected kind track, got %s", refs[0].Kind)
		}
	})

	t.Run("Context Outside Lookback Window", func(t *testing.T) {
		url := "https://i.scdn.co/image/" + coverHex
		raw := "Artist: Radiohead" + strings.Repeat(".", contextLookback+10) + url

		refs, _ := Images(raw)
		if len(refs) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(refs))
		}
		if refs[0].Kind != models.KindAlbum {
			t.Errorf("expected fallback to album, got %s", refs[0].Kind)
		}
	})

	t.Run("Host Signature Classification", func(t *testing.T) {
		t.Run("Mosaic Is Playlist", func(t *testing.T) {
			raw := "Your mix: https://mosaic.scdn.co/640/" + coverHex

			refs, _ := Images(raw)
			if len(refs) != 1 {
				t.Fatalf("expected 1 reference, got %d", len(refs))
			}
			if refs[0].Kind != models.KindPlaylist {
				t.Errorf("expected kind playlist, got %s", refs[0].Kind)
			}
		})

		t.Run("Lineup Is Artist", func(t *testing.T) {
			raw := "See them live: https://lineup-images.scdn.co/some-tour-2024.jpg"

			refs, _ := Images(raw)
			if len(refs) != 1 {
				t.Fatalf("expected 1 reference, got %d", len(refs))
			}
			if refs[0].Kind != models.KindArtist {
				t.Errorf("expected kind artist, got %s", refs[0].Kind)
			}
		})

		t.Run("Generic CDN Defaults To Album", func(t *testing.T) {
			raw := "Cover: https://image-cdn-ak.spotifycdn.com/image/cover123.jpg"

			refs, _ := Images(raw)
			if len(refs) != 1 {
				t.Fatalf("expected 1 reference, got %d", len(refs))
			}
			if refs[0].Kind != models.KindAlbum {
				t.Errorf("expected kind album, got %s", refs[0].Kind)
			}
		})
	})

	t.Run("Duplicate URLs Collapse", func(t *testing.T) {
		url := "https://i.scdn.co/image/" + coverHex
		raw := fmt.Sprintf("![Album](%s) and again as a bare link %s", url, url)

		refs, _ := Images(raw)
		if len(refs) != 1 {
			t.Errorf("expected duplicates collapsed to 1, got %d", len(refs))
		}
	})

	t.Run("First Occurrence Order Preserved", func(t *testing.T) {
		first := "https://mosaic.scdn.co/640/" + coverHex
		second := "https://i.scdn.co/image/" + coverHex
		raw := fmt.Sprintf("playlist %s then cover %s", first, second)

		refs, _ := Images(raw)
		if len(refs) != 2 {
			t.Fatalf("expected 2 references, got %d", len(refs))
		}
		if refs[0].URL != first || refs[1].URL != second {
			t.Errorf("expected first-seen order, got %s then %s", refs[0].URL, refs[1].URL)
		}
	})

	t.Run("Bare URL Before Markdown Span Keeps Text Order", func(t *testing.T) {
		first := "https://lineup-images.scdn.co/tour-2024.jpg"
		second := "https://i.scdn.co/image/" + coverHex
		raw := fmt.Sprintf("See them live: %s\n\n![Album](%s)", first, second)

		refs, _ := Images(raw)
		if len(refs) != 2 {
			t.Fatalf("expected 2 references, got %d", len(refs))
		}
		if refs[0].URL != first || refs[1].URL != second {
			t.Errorf("expected first-seen order, got %s then %s", refs[0].URL, refs[1].URL)
		}
	})

	t.Run("Sixth Distinct URL Dropped", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 6; i++ {
			hex := fmt.Sprintf("%032x", i)
			fmt.Fprintf(&b, "![Album %d](https://i.scdn.co/image/%s)\n", i, hex)
		}

		refs, _ := Images(b.String())
		if len(refs) != maxImageRefs {
			t.Errorf("expected %d references, got %d", maxImageRefs, len(refs))
		}
		for i, ref := range refs {
			want := fmt.Sprintf("https://i.scdn.co/image/%032x", i)
			if ref.URL != want {
				t.Errorf("reference %d: expected %s, got %s", i, want, ref.URL)
			}
		}
	})

	t.Run("Blank Lines Collapse After Removal", func(t *testing.T) {
		url := "https://i.scdn.co/image/" + coverHex
		raw := fmt.Sprintf("Before\n\n![Album](%s)\n\nAfter", url)

		_, cleaned := Images(raw)
		if strings.Contains(cleaned, "\n\n\n") {
			t.Errorf("expected blank runs collapsed, got %q", cleaned)
		}
		if !strings.Contains(cleaned, "Before") || !strings.Contains(cleaned, "After") {
			t.Errorf("surrounding prose lost: %q", cleaned)
		}
	})
}
