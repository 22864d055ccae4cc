package server

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// Outcome is the backend's verdict on a login attempt, carried in the
// redirect's "auth" query parameter.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
	OutcomeDenied  Outcome = "denied"
)

// AuthCallback is the decoded login redirect. Message holds human-readable
// error detail on OutcomeError; User holds the backend's username hint on
// OutcomeSuccess. Both are optional.
type AuthCallback struct {
	Outcome Outcome
	User    string
	Message string
}

// ParseAuthCallback decodes the login redirect query. The second return is
// false when the query carries no "auth" parameter or an unknown value, in
// which case the request is not a login callback at all.
func ParseAuthCallback(q url.Values) (*AuthCallback, bool) {
	switch Outcome(q.Get("auth")) {
	case OutcomeSuccess, OutcomeError, OutcomeDenied:
	default:
		return nil, false
	}
	return &AuthCallback{
		Outcome: Outcome(q.Get("auth")),
		User:    q.Get("user"),
		Message: q.Get("message"),
	}, true
}

// CallbackHandler receives the backend's login redirect on the loopback
// server. Implements the Handler interface for registration with a Router.
//
// It processes exactly one callback: a second hit is rejected so a stale
// browser tab cannot replay the login outcome.
type CallbackHandler struct {
	resultChan  chan AuthCallback
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a handler ready to receive one login redirect.
func NewCallbackHandler() *CallbackHandler {
	return &CallbackHandler{
		resultChan: make(chan AuthCallback, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/"}
}

// ServeHTTP handles the login redirect request.
//
// Requests without recognizable callback parameters get a 404; a replayed
// callback gets a 400. The decoded result is sent through the result channel.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cb, ok := ParseAuthCallback(r.URL.Query())
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	h.Send(*cb)

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	if cb.Outcome == OutcomeSuccess {
		fmt.Fprintf(w, callbackPage, "✓ Login Successful", "You can close this window and return to the terminal.")
	} else {
		fmt.Fprintf(w, callbackPage, "Login Failed", "You can close this window and try again from the terminal.")
	}
}

// Send sends the callback result through the channel (only once).
func (h *CallbackHandler) Send(cb AuthCallback) {
	h.once.Do(func() {
		h.resultChan <- cb
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving the login outcome.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan AuthCallback {
	return h.resultChan
}

const callbackPage = `
<!DOCTYPE html>
<html>
<head>
    <title>muse</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>
`
