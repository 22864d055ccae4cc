// package tasks implements long-running transcript archive operations.
//
// The core abstraction is Archiver, which renders a chat transcript to disk
// and downloads its cover art. Operations emit progress updates via channels
// for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"

	"github.com/desertthunder/muse/internal/formatter"
	"github.com/desertthunder/muse/internal/models"
)

// ArchiveOpts contains configuration for transcript archives.
type ArchiveOpts struct {
	Format         string // Archive format: markdown, txt, json
	OutputDir      string // Base output directory (default: muse_archive_{epoch})
	Title          string // Transcript title (default: "Chat Transcript")
	DownloadImages bool   // Fetch extracted cover art alongside the transcript
	NumWorkers     int    // Concurrent download workers (default: 4)
	RateLimit      float64
}

// ImageDownloadResult records the outcome of one cover-art download.
type ImageDownloadResult struct {
	URL     string           `json:"url"`
	Kind    models.ImageKind `json:"kind"`
	File    string           `json:"file,omitempty"`
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
}

// ArchiveResult contains all data from a completed archive run.
type ArchiveResult struct {
	OutputDirectory string                `json:"output_directory"`
	Format          string                `json:"format"`
	TotalMessages   int                   `json:"total_messages"`
	TranscriptFiles []string              `json:"transcript_files"`
	TotalImages     int                   `json:"total_images"`
	SavedImages     int                   `json:"saved_images"`
	FailedImages    int                   `json:"failed_images"`
	Images          []ImageDownloadResult `json:"images,omitempty"`
	ManifestPath    string                `json:"-"`
}

// Archiver defines the transcript archive operation.
type Archiver interface {
	// Run renders the transcript in the requested format and, when enabled,
	// downloads its cover art with a rate-limited worker pool.
	Run(ctx context.Context, progress chan<- ProgressUpdate, msgs []models.ChatMessage, opts ArchiveOpts) (*ArchiveResult, error)
}

// ArchiveEngine implements Archiver.
type ArchiveEngine struct {
	download func(url string) ([]byte, error)
}

// NewArchiveEngine creates an ArchiveEngine using the default HTTP downloader.
func NewArchiveEngine() *ArchiveEngine {
	return &ArchiveEngine{download: formatter.DownloadImage}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ArchiveEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
