// Package services defines the [Assistant] interface for the
// music-assistant backend and implements it over HTTP.
//
// # Boundary contract
//
// The backend is an external collaborator. Four endpoints matter:
//
//	GET  /auth/status  → {authenticated: bool, user?: profile}
//	GET  /auth/spotify → browser redirect target (navigated to, never fetched)
//	POST /auth/logout  → best-effort, no body
//	POST /chat         → {message} in, {response} out on 2xx
//
// Everything richer than these shapes (structured attachments, wrapped
// summaries) arrives embedded inside the chat response text and is the
// extract package's problem, not this one's.
//
// # Error Handling
//
// Transport failures and non-2xx statuses wrap [shared.ErrAPIRequest]. A 2xx
// chat response without a usable response field is not an error: [Send]
// substitutes [FallbackReply] so the turn still renders something human.
package services
