package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/muse/internal/formatter"
	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
	"golang.org/x/time/rate"
)

type imageJob struct {
	Index int
	Ref   models.ImageReference
}

// Run archives a transcript to disk. Cover art is downloaded concurrently
// with rate limiting; partial download failures are recorded in the result
// instead of failing the run.
func (e *ArchiveEngine) Run(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	msgs []models.ChatMessage,
	opts ArchiveOpts,
) (*ArchiveResult, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: nothing to archive", shared.ErrInvalidInput)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("muse_archive_%d", time.Now().Unix())
	}
	if opts.Format == "" {
		opts.Format = "markdown"
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ArchiveResult{
		OutputDirectory: opts.OutputDir,
		Format:          opts.Format,
		TotalMessages:   len(msgs),
	}

	e.sendProgress(prog, renderTranscriptUpdate(opts.Format, len(msgs)))

	switch opts.Format {
	case "txt":
		path, err := formatter.WriteTextExport(msgs, filepath.Join(opts.OutputDir, "transcript.txt"), opts.Title)
		if err != nil {
			return nil, err
		}
		result.TranscriptFiles = []string{path}
	case "json":
		path, err := formatter.WriteJSONExport(msgs, filepath.Join(opts.OutputDir, "transcript.json"))
		if err != nil {
			return nil, err
		}
		result.TranscriptFiles = []string{path}
	case "markdown":
		mdRes, err := formatter.WriteMarkdownExport(msgs, opts.OutputDir, opts.Title)
		if err != nil {
			return nil, err
		}
		result.TranscriptFiles = mdRes.Files
	default:
		return nil, fmt.Errorf("%w: unknown archive format %q", shared.ErrInvalidArgument, opts.Format)
	}

	if opts.DownloadImages {
		e.downloadCoverArt(ctx, prog, msgs, opts, result)
	}

	manifestPath := filepath.Join(opts.OutputDir, "archive_manifest.json")
	e.sendProgress(prog, writeManifestUpdate(manifestPath))
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("archive completed but failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("archive completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// downloadCoverArt fetches every distinct image reference in the transcript
// using a rate-limited worker pool.
func (e *ArchiveEngine) downloadCoverArt(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	msgs []models.ChatMessage,
	opts ArchiveOpts,
	result *ArchiveResult,
) {
	refs := collectImages(msgs)
	result.TotalImages = len(refs)
	if len(refs) == 0 {
		return
	}

	imageDir := filepath.Join(opts.OutputDir, "images")
	if err := os.MkdirAll(imageDir, 0755); err != nil {
		for _, ref := range refs {
			result.Images = append(result.Images, ImageDownloadResult{
				URL: ref.URL, Kind: ref.Kind, Error: err.Error(),
			})
		}
		result.FailedImages = len(refs)
		return
	}

	e.sendProgress(prog, downloadStartUpdate(len(refs)))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan imageJob, len(refs))
	results := make(chan ImageDownloadResult, len(refs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.downloadWorker(ctx, &wg, limiter, imageDir, jobs, results)
	}

	for i, ref := range refs {
		jobs <- imageJob{Index: i, Ref: ref}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Images = append(result.Images, res)
		if res.Success {
			result.SavedImages++
			e.sendProgress(prog, downloadCompletedUpdate(completed, len(refs), res.File))
		} else {
			result.FailedImages++
			e.sendProgress(prog, downloadFailedUpdate(completed, len(refs), res.URL, fmt.Errorf("%s", res.Error)))
		}
	}
}

// downloadWorker is a worker goroutine that downloads images from the jobs channel.
func (e *ArchiveEngine) downloadWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	imageDir string,
	jobs <-chan imageJob,
	results chan<- ImageDownloadResult,
) {
	defer wg.Done()

	for job := range jobs {
		res := ImageDownloadResult{URL: job.Ref.URL, Kind: job.Ref.Kind}

		if err := limiter.Wait(ctx); err != nil {
			res.Error = err.Error()
			results <- res
			continue
		}

		data, err := e.download(job.Ref.URL)
		if err != nil {
			res.Error = err.Error()
			results <- res
			continue
		}

		file := filepath.Join(imageDir, fmt.Sprintf("%03d_%s.jpg", job.Index+1, job.Ref.Kind))
		if err := os.WriteFile(file, data, 0644); err != nil {
			res.Error = err.Error()
			results <- res
			continue
		}

		res.File = file
		res.Success = true
		results <- res
	}
}

// collectImages gathers the transcript's image references, first occurrence
// of each URL only.
func collectImages(msgs []models.ChatMessage) []models.ImageReference {
	seen := make(map[string]bool)
	var refs []models.ImageReference
	for _, msg := range msgs {
		for _, ref := range msg.Images {
			if seen[ref.URL] {
				continue
			}
			seen[ref.URL] = true
			refs = append(refs, ref)
		}
	}
	return refs
}
