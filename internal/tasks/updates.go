package tasks

import (
	"fmt"

	"github.com/desertthunder/fakefy/internal/models"
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
	FetchPopular Phase = iota
	RankTracks
	SearchCatalog
	ExportPlaylist
)

func (p Phase) String() string {
	switch p {
	case FetchPopular:
		return "fetch_popular"
	case RankTracks:
		return "rank_tracks"
	case SearchCatalog:
		return "search_catalog"
	case ExportPlaylist:
		return "export_playlist"
	default:
		return ""
	}
}

func fetchingArtistsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPopular,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Fetching top tracks for %d artists...", total),
	}
}

func artistFetchedUpdate(step, total int, artist string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPopular,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d tracks)", step, total, artist, count),
	}
}

func artistFailedUpdate(step, total int, artist string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPopular,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, artist, err),
	}
}

func rankedUpdate(unique, kept int, top []models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RankTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Ranked %d unique tracks, keeping %d", unique, kept),
		Data:    top,
	}
}

func searchingUpdate(step, total int, what string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Searching %s...", what),
	}
}

func exportStartedUpdate(total int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Exporting %d playlists to %s...", total, dir),
	}
}

func exportingPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
