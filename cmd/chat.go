package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/muse/internal/chat"
	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
	"github.com/urfave/cli/v3"
)

// ChatSend posts a single message through a short-lived session and prints
// the sanitized reply.
func (r *Runner) ChatSend(ctx context.Context, cmd *cli.Command) error {
	message := strings.TrimSpace(cmd.StringArg("message"))
	if message == "" {
		return fmt.Errorf("%w: message text required", shared.ErrMissingArgument)
	}

	opts := []chat.Option{chat.WithLogger(r.logger)}
	if !cmd.Bool("no-history") {
		if repo, db, err := r.openStore(); err != nil {
			r.logger.Warn("could not open history store", "error", err)
		} else {
			defer db.Close()
			opts = append(opts, chat.WithStore(repo))
		}
	}

	session := chat.NewSession(r.assistant, opts...)
	session.CheckAuth(ctx)
	if session.State() == chat.StateUnauthenticated {
		return fmt.Errorf("%w: run 'muse auth login' first", shared.ErrNotAuthenticated)
	}

	snd, ok := session.Submit(message)
	if !ok {
		return fmt.Errorf("%w: message was not accepted", shared.ErrInvalidInput)
	}
	session.Deliver(ctx, snd)

	msgs := session.Messages()
	reply := msgs[len(msgs)-1]

	if cmd.Bool("json") {
		return r.writeJSON(reply, true)
	}

	r.writePlain("%s\n", reply.Content)
	printAttachments(r, reply)
	return nil
}

func printAttachments(r *Runner, msg models.ChatMessage) {
	for _, img := range msg.Images {
		r.writePlain("  [%s] %s\n", img.Kind, img.URL)
	}
	if msg.Wrapped == nil {
		return
	}

	w := msg.Wrapped
	r.writePlainln("Your Wrapped")
	if len(w.TopArtists) > 0 {
		r.writePlain("Top Artists:\n")
		for i, artist := range w.TopArtists {
			r.writePlain("  %d. %s\n", i+1, artist.Name)
		}
	}
	if len(w.TopSongs) > 0 {
		r.writePlain("Top Songs:\n")
		for i, song := range w.TopSongs {
			if song.Artist != "" {
				r.writePlain("  %d. %s - %s\n", i+1, song.Artist, song.Name)
			} else {
				r.writePlain("  %d. %s\n", i+1, song.Name)
			}
		}
	}
	if w.TopGenre != "" {
		r.writePlain("Top Genre: %s\n", w.TopGenre)
	}
}
