package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/muse/internal/chat"
	"github.com/desertthunder/muse/internal/shared"
	"github.com/desertthunder/muse/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive chat interface.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.assistant == nil {
		return fmt.Errorf("%w: assistant service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/muse-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	opts := []chat.Option{chat.WithLogger(fileLogger)}

	repo, db, err := r.openStore()
	if err != nil {
		fileLogger.Warn("running without history store", "error", err)
	} else {
		defer db.Close()
		opts = append(opts, chat.WithStore(repo))
	}

	session := chat.NewSession(r.assistant, opts...)
	if repo != nil {
		if msgs, err := repo.List(ctx); err != nil {
			fileLogger.Warn("failed to restore history", "error", err)
		} else {
			session.Restore(msgs)
		}
	}

	model := ui.NewModel(ctx, session, r.assistant, r.config.Callback.Addr(), fileLogger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
