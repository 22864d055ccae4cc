package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	send   key.Binding
	login  key.Binding
	logout key.Binding
	up     key.Binding
	down   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		login:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "login with Spotify")),
		logout: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "logout")),
		up:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		down:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.send, k.logout, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.send, k.up, k.down},
		{k.login, k.logout, k.quit},
	}
}
