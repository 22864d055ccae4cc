// package chat holds the conversation state machine: who is logged in, the
// ordered message log, and the single in-flight send.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muse/internal/extract"
	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/services"
	"github.com/desertthunder/muse/internal/shared"
)

// ErrorReply is appended as an assistant turn when a send fails in transport.
// The failure never propagates past the session.
const ErrorReply = "Sorry, I couldn't reach the music service just now. Mind trying again?"

// State is the session's position in the auth/chat lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateIdle
	StateAwaitingReply
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting_reply"
	default:
		return "unknown"
	}
}

// MessageStore persists chat turns. Persistence is best-effort: a store
// failure is logged and the in-memory log stays authoritative.
type MessageStore interface {
	Append(ctx context.Context, msg models.ChatMessage) error
	Clear(ctx context.Context) error
}

// Session is safe for concurrent use; the TUI's command goroutines complete
// sends while the update loop reads state.
type Session struct {
	mu       sync.Mutex
	state    State
	epoch    uint64
	messages []models.ChatMessage
	user     *models.UserProfile

	svc    services.Assistant
	store  MessageStore
	logger *log.Logger
}

// Option configures a Session at construction.
type Option func(*Session)

// WithStore attaches a persistence layer for chat turns.
func WithStore(store MessageStore) Option {
	return func(s *Session) { s.store = store }
}

// WithLogger overrides the session's logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession builds an unauthenticated session over the given backend.
func NewSession(svc services.Assistant, opts ...Option) *Session {
	s := &Session{
		svc:    svc,
		state:  StateUnauthenticated,
		logger: shared.NewLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the authenticated profile, or nil.
func (s *Session) User() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Messages returns a copy of the message log in order.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// CheckAuth queries the backend's session state. Any failure degrades to
// unauthenticated without surfacing error text.
func (s *Session) CheckAuth(ctx context.Context) {
	status, err := s.svc.Status(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || status == nil || !status.Authenticated {
		if err != nil {
			s.logger.Warn("auth status check failed", "error", err)
		}
		s.state = StateUnauthenticated
		s.user = nil
		return
	}
	s.user = status.User
	if s.state == StateUnauthenticated || s.state == StateAuthenticating {
		s.state = StateIdle
	}
}

// BeginLogin marks the redirect flow as started.
func (s *Session) BeginLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateUnauthenticated {
		s.state = StateAuthenticating
	}
}

// CompleteLogin applies a successful login callback, short-circuiting the
// status query. A nil user is allowed; CheckAuth can fill it in later.
func (s *Session) CompleteLogin(user *models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.state = StateIdle
}

// FailLogin applies an error or denied login callback.
func (s *Session) FailLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.state = StateUnauthenticated
}

// Send is a token for one in-flight message. Completing a Send after the
// session has moved on (logout, reset) is a no-op.
type Send struct {
	session *Session
	epoch   uint64
	text    string
}

// Text returns the user message being delivered.
func (snd *Send) Text() string { return snd.text }

// Submit appends the user's message optimistically and transitions to
// awaiting a reply. It refuses blank input and refuses to start a second
// send while one is in flight; the false return covers both.
func (s *Session) Submit(text string) (*Send, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, false
	}

	msg := models.ChatMessage{
		ID:        shared.GenerateID(),
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}
	s.messages = append(s.messages, msg)
	s.state = StateAwaitingReply
	snd := &Send{session: s, epoch: s.epoch, text: text}
	s.mu.Unlock()

	// Persist outside the lock: a slow store must not block state reads.
	s.persist(msg)

	return snd, true
}

// Deliver posts the send to the backend and completes it with the result.
func (s *Session) Deliver(ctx context.Context, snd *Send) {
	raw, err := s.svc.Send(ctx, snd.text)
	snd.Complete(raw, err)
}

// Complete finishes a send. On success the raw reply is sanitized into text
// plus attachments; on transport failure a canned assistant message is
// appended instead. A stale send, one whose epoch no longer matches, is
// discarded without touching the log.
func (snd *Send) Complete(raw string, err error) {
	s := snd.session
	s.mu.Lock()

	if snd.epoch != s.epoch || s.state != StateAwaitingReply {
		s.mu.Unlock()
		s.logger.Debug("discarding stale reply", "epoch", snd.epoch)
		return
	}

	msg := models.ChatMessage{
		ID:        shared.GenerateID(),
		Role:      models.RoleAssistant,
		Timestamp: time.Now(),
	}
	if err != nil {
		s.logger.Warn("chat send failed", "error", err)
		msg.Content = ErrorReply
	} else {
		result := extract.Sanitize(raw)
		msg.Content = result.Text
		msg.Images = result.Images
		msg.Wrapped = result.Wrapped
	}
	s.messages = append(s.messages, msg)
	s.state = StateIdle
	s.mu.Unlock()

	s.persist(msg)
}

// Logout clears local state first, then asks the backend to invalidate the
// remote session. The local clear wins even when the remote call fails.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	s.messages = nil
	s.user = nil
	s.state = StateUnauthenticated
	store := s.store
	s.mu.Unlock()

	if store != nil {
		if err := store.Clear(ctx); err != nil {
			s.logger.Warn("failed to clear stored messages", "error", err)
		}
	}
	if err := s.svc.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed", "error", err)
	}
}

// UserSaidBye reports whether the latest user message contains a farewell
// token. Display hint only; it never changes state. A log with fewer than
// two messages is never a farewell.
func (s *Session) UserSaidBye() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) < 2 {
		return false
	}
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role != models.RoleUser {
			continue
		}
		content := strings.ToLower(s.messages[i].Content)
		return strings.Contains(content, "bye") ||
			strings.Contains(content, "exit") ||
			strings.Contains(content, "quit")
	}
	return false
}

// Restore seeds the message log from persisted history. Only meaningful
// before the first Submit.
func (s *Session) Restore(msgs []models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]models.ChatMessage(nil), msgs...)
}

func (s *Session) persist(msg models.ChatMessage) {
	if s.store == nil {
		return
	}
	if err := s.store.Append(context.Background(), msg); err != nil {
		s.logger.Warn("failed to persist message", "error", err, "id", msg.ID)
	}
}
