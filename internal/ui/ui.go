package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/muse/internal/chat"
	"github.com/desertthunder/muse/internal/server"
	"github.com/desertthunder/muse/internal/services"
	"github.com/desertthunder/muse/internal/shared"
)

// loginTimeout bounds how long the browser flow may take before the
// temporary callback server gives up.
const loginTimeout = 3 * time.Minute

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	ChatView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	session      *chat.Session
	svc          services.Assistant
	callbackAddr string
	logger       *log.Logger

	width  int
	height int
	ready  bool

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	help     help.Model
	keys     keyMap

	typing         bool
	authenticating bool
	loginErr       string
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, session *chat.Session, svc services.Assistant, callbackAddr string, logger *log.Logger) *Model {
	input := textinput.New()
	input.Placeholder = "Ask about music, playlists, or get recommendations..."
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = styles.ok

	return &Model{
		ctx:          ctx,
		view:         LoginView,
		session:      session,
		svc:          svc,
		callbackAddr: callbackAddr,
		logger:       logger,
		input:        input,
		spin:         spin,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init probes the backend for an existing session before showing any view.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.checkAuth(), textinput.Blink)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-7)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - 7
		}
		m.input.Width = msg.Width - 6
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if !m.typing && !m.authenticating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case ChatView:
			return m.handleChatKeys(msg)
		}

	case authCheckedMsg:
		if m.session.State() != chat.StateUnauthenticated {
			m.view = ChatView
			m.refreshTranscript()
		}
		return m, nil

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case replyDoneMsg:
		m.typing = false
		m.refreshTranscript()
		return m, nil

	case logoutDoneMsg:
		m.view = LoginView
		m.loginErr = ""
		m.refreshTranscript()
		return m, nil
	}

	return m.updateComponents(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoginView:
		return m.renderLogin()
	case ChatView:
		return m.renderChat()
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.login):
		if m.authenticating {
			return m, nil
		}
		m.authenticating = true
		m.loginErr = ""
		return m, tea.Batch(m.spin.Tick, m.startLogin())
	}
	return m, nil
}

func (m *Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	case key.Matches(msg, m.keys.send):
		snd, ok := m.session.Submit(m.input.Value())
		if !ok {
			return m, nil
		}
		m.input.Reset()
		m.typing = true
		m.refreshTranscript()
		return m, tea.Batch(m.spin.Tick, m.deliver(snd))
	}
	return m.updateComponents(msg)
}

func (m *Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.authenticating = false

	if msg.err != nil {
		m.session.FailLogin()
		m.loginErr = "Login timed out. Press enter to try again."
		m.logger.Warn("login flow failed", "error", msg.err)
		return m, nil
	}

	switch msg.callback.Outcome {
	case server.OutcomeSuccess:
		m.session.CompleteLogin(nil)
		m.view = ChatView
		m.refreshTranscript()
		// refresh to pick up the user profile
		return m, m.checkAuth()
	case server.OutcomeDenied:
		m.session.FailLogin()
		m.loginErr = "You denied access to Spotify. Please try again."
	default:
		m.session.FailLogin()
		detail := msg.callback.Message
		if detail == "" {
			detail = "Unknown error"
		}
		m.loginErr = fmt.Sprintf("Authentication failed: %s", detail)
	}
	return m, nil
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.view == ChatView {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// refreshTranscript re-renders the session log into the viewport, pinned to
// the latest message.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderTranscript(m.session.Messages(), m.width))
	m.viewport.GotoBottom()
}

func (m *Model) checkAuth() tea.Cmd {
	return func() tea.Msg {
		m.session.CheckAuth(m.ctx)
		return authCheckedMsg{}
	}
}

func (m *Model) startLogin() tea.Cmd {
	m.session.BeginLogin()
	return func() tea.Msg {
		if err := shared.OpenBrowser(m.svc.LoginURL()); err != nil {
			m.logger.Warn("failed to open browser", "error", err, "url", m.svc.LoginURL())
		}

		ctx, cancel := context.WithTimeout(m.ctx, loginTimeout)
		defer cancel()

		cb, err := server.WaitForCallback(ctx, m.callbackAddr, m.logger)
		return loginDoneMsg{callback: cb, err: err}
	}
}

func (m *Model) deliver(snd *chat.Send) tea.Cmd {
	return func() tea.Msg {
		m.session.Deliver(m.ctx, snd)
		return replyDoneMsg{}
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		m.session.Logout(m.ctx)
		return logoutDoneMsg{}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("muse — Personal Music Bot")

	var status string
	if m.authenticating {
		status = fmt.Sprintf("%s Waiting for your browser... (%s)", m.spin.View(), m.svc.LoginURL())
	} else {
		status = "Press enter to log in with Spotify."
	}

	var errLine string
	if m.loginErr != "" {
		errLine = "\n" + styles.err.Render(m.loginErr)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.login, m.keys.quit})
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, status, errLine, helpView)
}

func (m *Model) renderChat() string {
	header := styles.title.Render("muse — what's on the playlist today?")
	if user := m.session.User(); user != nil {
		header = fmt.Sprintf("%s  %s", header, styles.muted.Render("Welcome, "+user.Name()+"!"))
	}

	var typing string
	if m.typing {
		typing = fmt.Sprintf("\n%s thinking...", m.spin.View())
	}

	var farewell string
	if m.session.UserSaidBye() {
		farewell = "\n" + styles.muted.Render(goodbyeBanner)
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())

	return fmt.Sprintf(
		"%s\n%s%s%s\n\n%s\n%s",
		header,
		m.viewport.View(),
		typing,
		farewell,
		m.input.View(),
		helpView,
	)
}
