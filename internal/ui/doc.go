// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view chat workflow:
//  1. [LoginView] : Start the browser login flow and wait for its outcome
//  2. [ChatView] : Exchange messages with the assistant
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Sends run as commands so the update loop never blocks: submitting appends the
// user's turn immediately, shows a typing indicator, and the assistant's reply
// (or a canned error message) lands when the command finishes. Stale replies,
// from a send outlasting a logout, are dropped by the session.
//
// Keyboard interaction is minimal: enter sends, ctrl+d logs out, ctrl+c quits,
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
