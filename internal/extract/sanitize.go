package extract

import (
	"strings"

	"github.com/desertthunder/muse/internal/models"
)

// Result is the displayable outcome of sanitizing one raw assistant reply.
type Result struct {
	Text    string                  // cleaned message body, safe to render
	Images  []models.ImageReference // zero or more cover-art attachments
	Wrapped *models.WrappedSummary  // at most one wrapped summary
}

// Sanitize composes [Images] and [Wrapped] into the final human-displayable
// text plus structured attachments.
//
// Image markdown is stripped unconditionally. The wrapped scan runs over the
// image-stripped text (image alt text can mention the sentinel as prose and
// must not be double-processed), and the sentinel+JSON span is removed only
// when the payload parsed — an unparsable sentinel stays visible, fail-open.
func Sanitize(raw string) Result {
	images, text := Images(raw)

	summary, start, end, ok := wrappedSpan(text)
	if ok {
		text = splice(text, start, end)
	}

	return Result{Text: strings.TrimSpace(text), Images: images, Wrapped: summary}
}

// splice removes s[start:end] and closes the whitespace seam left behind.
func splice(s string, start, end int) string {
	before := strings.TrimRight(s[:start], " \t\n")
	after := strings.TrimLeft(s[end:], " \t\n")

	switch {
	case before == "":
		return after
	case after == "":
		return before
	default:
		return before + " " + after
	}
}
