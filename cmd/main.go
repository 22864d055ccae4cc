package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/desertthunder/muse/internal/services"
	"github.com/desertthunder/muse/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	assistant := services.NewAssistantService(config.Server.BaseURL, &http.Client{
		Timeout: config.Server.Timeout(),
	})

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Assistant: assistant,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "muse",
		Usage:    "Chat with your personal music assistant",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
