package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/desertthunder/muse/internal/models"
)

// WrappedSentinel marks the start of an embedded wrapped-summary JSON payload
// inside otherwise free-form reply text.
const WrappedSentinel = "SPOTIFY_WRAPPED_DATA:"

// wrappedPatterns isolate one JSON object after the sentinel, tried in order
// from tightest to loosest. The first pattern whose capture parses wins;
// later patterns are never consulted after a success.
var wrappedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(\{[\s\S]*?\})`), // first balanced-looking object
	regexp.MustCompile(`(?m)^\s*(\{.*\})`),   // object confined to one line
	regexp.MustCompile(`(\{[\s\S]*\})`),      // widest brace span
}

// Wrapped locates the wrapped-summary payload in an assistant reply. Returns
// nil when the sentinel is absent or no pattern yields parseable JSON; it
// never strips anything from the text (that is [Sanitize]'s job, because
// stripping is conditional on a successful parse).
func Wrapped(content string) *models.WrappedSummary {
	summary, _, _, _ := wrappedSpan(content)
	return summary
}

// wrappedSpan is the shared implementation: it returns the parsed summary
// together with the [start:end) byte span covering the sentinel and its JSON
// payload, so Sanitize can cut exactly what was consumed.
func wrappedSpan(content string) (*models.WrappedSummary, int, int, bool) {
	// Sentinel check is the cheap fast path; no regex runs without it.
	start := strings.Index(content, WrappedSentinel)
	if start < 0 {
		return nil, 0, 0, false
	}

	after := content[start+len(WrappedSentinel):]

	for _, pattern := range wrappedPatterns {
		loc := pattern.FindStringSubmatchIndex(after)
		if loc == nil {
			continue
		}

		candidate := strings.TrimSpace(after[loc[2]:loc[3]])

		var summary models.WrappedSummary
		if err := json.Unmarshal([]byte(candidate), &summary); err != nil {
			continue
		}

		end := start + len(WrappedSentinel) + loc[3]
		return &summary, start, end, true
	}

	return nil, 0, 0, false
}
