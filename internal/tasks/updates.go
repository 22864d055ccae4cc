package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	RenderTranscript Phase = iota
	DownloadImages
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case RenderTranscript:
		return "render_transcript"
	case DownloadImages:
		return "download_images"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func renderTranscriptUpdate(format string, messages int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderTranscript,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Rendering %d messages to %s...", messages, format),
	}
}

func downloadStartUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadImages,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Downloading %d cover images...", total),
	}
}

func downloadCompletedUpdate(step, total int, file string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadImages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, file),
	}
}

func downloadFailedUpdate(step, total int, url string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadImages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, url, err),
	}
}

func writeManifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest: %s", path),
	}
}
