package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/muse/internal/server"
	"github.com/desertthunder/muse/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin opens the browser to the backend's Spotify login flow and waits
// for the redirect on the loopback callback server.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	loginURL := r.assistant.LoginURL()
	timeout := time.Duration(cmd.Int("timeout")) * time.Second

	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL to log in:\n%s\n\n", loginURL)
	} else {
		r.logger.Info("opening browser", "url", loginURL)
		if err := shared.OpenBrowser(loginURL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
			r.writePlain("Open this URL to log in:\n%s\n\n", loginURL)
		}
	}

	r.writePlain("Waiting for Spotify login (%s)...\n", r.config.Callback.Addr())

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cb, err := server.WaitForCallback(waitCtx, r.config.Callback.Addr(), r.logger)
	if err != nil {
		return fmt.Errorf("%w: no login callback received: %v", shared.ErrAuthFailed, err)
	}

	switch cb.Outcome {
	case server.OutcomeSuccess:
		if cb.User != "" {
			r.writePlain("✓ Logged in as %s\n", cb.User)
		} else {
			r.writePlain("✓ Logged in\n")
		}
		return nil
	case server.OutcomeDenied:
		return fmt.Errorf("%w: access to Spotify was denied", shared.ErrAuthDenied)
	default:
		detail := cb.Message
		if detail == "" {
			detail = "unknown error"
		}
		return fmt.Errorf("%w: %s", shared.ErrAuthFailed, detail)
	}
}

// AuthStatus queries the backend for the current session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking auth status")

	status, err := r.assistant.Status(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if status.Authenticated {
		r.writePlain("Authentication: ✓ Authenticated\n")
		if status.User != nil {
			r.writePlain("User: %s\n", status.User.Name())
			if status.User.Followers > 0 {
				r.writePlain("Followers: %d\n", status.User.Followers)
			}
		}
		return nil
	}

	r.writePlain("Authentication: ✗ Not authenticated\n")
	r.writePlain("Run 'muse auth login' to get started.\n")
	return nil
}

// AuthLogout invalidates the remote session and clears stored history.
// History clearing is local-first: it happens even if the backend call fails.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if repo, db, err := r.openStore(); err != nil {
		r.logger.Warn("could not open history store", "error", err)
	} else {
		if err := repo.Clear(ctx); err != nil {
			r.logger.Warn("failed to clear history", "error", err)
		}
		db.Close()
	}

	if err := r.assistant.Logout(ctx); err != nil {
		r.logger.Warn("remote logout failed", "error", err)
		r.writePlain("✓ Local session cleared (backend unreachable)\n")
		return nil
	}

	r.writePlain("✓ Logged out\n")
	return nil
}
