package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/tasks"
	"github.com/urfave/cli/v3"
)

// HistoryList prints the stored conversation in order.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	msgs, err := repo.List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(msgs, true)
	}

	if len(msgs) == 0 {
		r.writePlain("No stored messages.\n")
		return nil
	}

	for _, msg := range msgs {
		speaker := "Muse"
		if msg.Role == models.RoleUser {
			speaker = "You"
		}
		r.writePlain("%s: %s\n", speaker, msg.Content)
		printAttachments(r, msg)
	}
	return nil
}

// HistoryClear deletes the stored conversation.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if err := repo.Clear(ctx); err != nil {
		return err
	}

	r.writePlain("✓ Cleared %d messages\n", count)
	return nil
}

// HistoryExport archives the stored conversation to disk.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	msgs, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return fmt.Errorf("nothing to export")
	}

	opts := tasks.ArchiveOpts{
		Format:         cmd.String("format"),
		OutputDir:      cmd.String("output"),
		Title:          cmd.String("title"),
		DownloadImages: cmd.Bool("images"),
	}

	r.logger.Info("starting archive", "format", opts.Format, "messages", len(msgs))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for update := range progressCh {
			switch update.Phase {
			case tasks.RenderTranscript:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.DownloadImages:
				if update.Step == 0 {
					r.writePlain("\n📥 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			}
		}
	}()

	result, err := r.engine.Run(ctx, progressCh, msgs, opts)
	close(progressCh)
	// Drain before printing the summary so progress lines never trail it.
	<-progressDone

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Archive Complete!")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Messages: %d\n", result.TotalMessages)
	for _, file := range result.TranscriptFiles {
		r.writePlain("  - %s\n", file)
	}
	if result.TotalImages > 0 {
		r.writePlain("Images: %d saved, %d failed\n", result.SavedImages, result.FailedImages)
	}

	return nil
}
