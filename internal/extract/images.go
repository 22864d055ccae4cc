package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/desertthunder/muse/internal/models"
)

// maxImageRefs caps how many references survive per reply; overflow is
// silently dropped in first-seen order.
const maxImageRefs = 5

// contextLookback is how far behind a bare cover-art URL the classifier
// searches for "Artist:" / "Track:" labels. Brittle to backend phrasing
// changes; a heuristic, not a contract.
const contextLookback = 100

var (
	// markdownImage matches ![alt](https://...) spans. The alt text often
	// carries the Artist:/Track: label the classifier sniffs for.
	markdownImage = regexp.MustCompile(`!\[.*?\]\((https://[^)]+)\)`)

	// bareURLPatterns cover the music-CDN shapes the backend emits outside of
	// markdown: single cover art, playlist mosaics, artist lineup images, and
	// a generic CDN wildcard. Scanned against the ORIGINAL text so context
	// classification still sees surrounding prose.
	bareURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`https://i\.scdn\.co/image/[a-f0-9]{32}`),
		regexp.MustCompile(`https://mosaic\.scdn\.co/640/[a-f0-9]{32}`),
		regexp.MustCompile(`https://lineup-images\.scdn\.co/[^"'\s]+`),
		regexp.MustCompile(`https://[^"'\s]*\.spotifycdn\.com/[^"'\s]+`),
	}

	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// Images pulls embedded cover-art references out of a raw assistant reply and
// classifies each by the resource it depicts. The returned string is the
// reply with every markdown image span removed, whether or not its URL was
// kept. Pure: the input is never mutated, and any internal failure degrades
// to (nil, raw).
func Images(raw string) (refs []models.ImageReference, cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			refs, cleaned = nil, raw
		}
	}()

	cleaned = raw

	// Candidates carry their byte offset in raw: first-occurrence order is a
	// property of the text, not of which scan found the URL.
	type candidate struct {
		offset int
		url    string
	}
	var candidates []candidate

	for _, loc := range markdownImage.FindAllStringSubmatchIndex(raw, -1) {
		cleaned = strings.Replace(cleaned, raw[loc[0]:loc[1]], "", 1)
		cleaned = blankRuns.ReplaceAllString(cleaned, "\n\n")
		candidates = append(candidates, candidate{offset: loc[2], url: raw[loc[2]:loc[3]]})
	}

	// Bare URLs are found in the original text, not the cleaned one: markdown
	// removal must not hide context from the classifier.
	for _, pattern := range bareURLPatterns {
		for _, loc := range pattern.FindAllStringIndex(raw, -1) {
			candidates = append(candidates, candidate{offset: loc[0], url: raw[loc[0]:loc[1]]})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].offset < candidates[j].offset
	})

	var urls []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		if c.url == "" || seen[c.url] {
			continue
		}
		seen[c.url] = true
		urls = append(urls, c.url)
	}

	if len(urls) > maxImageRefs {
		urls = urls[:maxImageRefs]
	}

	for _, u := range urls {
		refs = append(refs, models.ImageReference{URL: u, Kind: classify(raw, u)})
	}

	return refs, cleaned
}

// classify determines the [models.ImageKind] for a URL. Host signatures win
// outright; i.scdn.co cover art is disambiguated by the prose immediately
// preceding its first occurrence; everything else defaults to album rather
// than being dropped.
func classify(raw, url string) models.ImageKind {
	switch {
	case strings.Contains(url, "mosaic"):
		return models.KindPlaylist
	case strings.Contains(url, "lineup-images"):
		return models.KindArtist
	case strings.Contains(url, "i.scdn.co"):
		if idx := strings.Index(raw, url); idx >= 0 {
			start := idx - contextLookback
			if start < 0 {
				start = 0
			}
			context := raw[start:idx]
			if strings.Contains(context, "Artist:") {
				return models.KindArtist
			}
			if strings.Contains(context, "Track:") {
				return models.KindTrack
			}
		}
	}
	return models.KindAlbum
}
