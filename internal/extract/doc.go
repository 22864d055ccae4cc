// Package extract recovers structured music data embedded in free-form
// assistant replies.
//
// The assistant backend does not return attachments as separate fields; cover
// art arrives as markdown image syntax or bare CDN URLs inside the reply text,
// and the "wrapped" year-in-review record arrives as a JSON object behind a
// sentinel token. This package pulls both out without corrupting the visible
// message.
//
// # Matcher strategies
//
// Extraction is an ordered list of matcher strategies rather than one grammar:
//
//  1. [Images] scans for markdown image syntax first (removing every match
//     from the text), then falls back to bare URLs matching known music-CDN
//     shapes in the original text, then classifies each survivor by host
//     signature and textual context.
//  2. [Wrapped] checks for the sentinel token before any regex work, then
//     tries three progressively looser brace-matching patterns, stopping at
//     the first one whose capture parses as JSON.
//
// Order and early exit are part of the contract: callers observe which
// strategy won through the shape of the output.
//
// # Failure behavior
//
// Nothing here returns an error. Image extraction degrades to "no images,
// text untouched"; wrapped extraction returns nil and leaves the sentinel
// visible (fail-open) so a human can still read the raw hint. Only
// [Sanitize] mutates text, and only for spans that extracted successfully —
// except markdown image syntax, which is always stripped.
package extract
