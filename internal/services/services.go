// package services defines interface Assistant for the music-assistant
// backend HTTP boundary
package services

import (
	"context"

	"github.com/desertthunder/muse/internal/models"
)

// AuthStatus is the backend's answer to "who is logged in right now".
type AuthStatus struct {
	Authenticated bool                `json:"authenticated"`
	User          *models.UserProfile `json:"user,omitempty"`
}

// Assistant defines the contract with the music-assistant backend. The
// backend owns the Spotify OAuth dance, the session cookie, and the language
// model; this client only exchanges messages and checks session state.
type Assistant interface {
	// Status queries the backend's session state. A transport failure is an
	// error; callers degrade to "treat as unauthenticated" without surfacing
	// error text to the user.
	Status(ctx context.Context) (*AuthStatus, error)

	// LoginURL returns the browser navigation target that starts the login
	// redirect flow. Never fetched directly.
	LoginURL() string

	// Logout asks the backend to invalidate the remote session. Best-effort:
	// local state clears regardless of the outcome.
	Logout(ctx context.Context) error

	// Send posts one chat message and returns the assistant's raw reply text.
	// Non-2xx responses are errors; a 2xx with a missing or empty response
	// field yields a fixed fallback string instead of an error.
	Send(ctx context.Context, message string) (string, error)

	// Name returns the human-readable service name.
	Name() string
}
