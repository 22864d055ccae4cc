// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles backend session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the Spotify-backed assistant session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with Spotify via the browser",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Seconds to wait for the browser redirect",
						Value: 180,
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the login URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the current session state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Invalidate the session and clear local history",
				Action: r.AuthLogout,
			},
		},
	}
}

// chatCommand sends a single message without entering the TUI
func chatCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Send one message and print the reply",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "message",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the full sanitized reply as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Skip persisting the exchange",
			},
		},
		Action: r.ChatSend,
	}
}

// historyCommand manages persisted transcripts
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect and export the stored conversation",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print the stored conversation",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete the stored conversation",
				Action: r.HistoryClear,
			},
			{
				Name:  "export",
				Usage: "Archive the conversation to disk",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Archive format: markdown, txt, json",
						Value:   "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Transcript title",
					},
					&cli.BoolFlag{
						Name:  "images",
						Usage: "Download extracted cover art",
					},
				},
				Action: r.HistoryExport,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the history database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand launches the interactive chat interface.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Launch the interactive chat interface",
		Action:  r.TUI,
	}
}
