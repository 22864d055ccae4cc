package ui

import (
	"github.com/desertthunder/muse/internal/server"
)

// authCheckedMsg signals that the startup auth probe finished; the session
// already holds the resulting state.
type authCheckedMsg struct{}

// loginDoneMsg carries the outcome of the browser login flow.
type loginDoneMsg struct {
	callback server.AuthCallback
	err      error
}

// replyDoneMsg signals that the in-flight send has completed; the session
// already holds the appended assistant turn.
type replyDoneMsg struct{}

// logoutDoneMsg signals that logout finished (local state is already clear).
type logoutDoneMsg struct{}
