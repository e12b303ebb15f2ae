package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/fakefy/internal/formatter"
	"github.com/desertthunder/fakefy/internal/models"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for bulk playlist exports.
type ExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: fakefy_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Cover downloads per second (default: 5)
	Covers     bool    // Download the first track thumbnail as cover (markdown only)
}

// PlaylistExportResult is the outcome of exporting one playlist.
type PlaylistExportResult struct {
	PlaylistID   string
	PlaylistName string
	Success      bool
	Files        []string
	Error        error
}

// ExportResult summarizes a bulk export.
type ExportResult struct {
	TotalPlaylists    int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []PlaylistExportResult
}

// Manifest converts the result to its on-disk manifest form.
func (r *ExportResult) Manifest(format string) formatter.ExportManifest {
	m := formatter.ExportManifest{
		Format:          format,
		OutputDirectory: r.OutputDirectory,
		TotalPlaylists:  r.TotalPlaylists,
		Successful:      r.SuccessfulExports,
		Failed:          r.FailedExports,
		Playlists:       make([]formatter.ManifestEntry, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		entry := formatter.ManifestEntry{
			PlaylistID:   res.PlaylistID,
			PlaylistName: res.PlaylistName,
			Success:      res.Success,
			Files:        res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Playlists = append(m.Playlists, entry)
	}
	return m
}

// ExportPlaylists exports playlists concurrently with rate-limited cover downloads and progress tracking.
//
// This method implements a worker pool pattern. It handles partial failures gracefully and writes a
// manifest.json summarizing the export results.
func (e *CatalogEngine) ExportPlaylists(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	playlists []models.Playlist,
	opts ExportOpts,
) (*ExportResult, error) {
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if !formatter.ValidFormat(opts.Format) {
		return nil, fmt.Errorf("unsupported export format %q", opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("fakefy_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	total := len(playlists)
	result := &ExportResult{
		TotalPlaylists:  total,
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, total),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan models.Playlist, total)
	results := make(chan PlaylistExportResult, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, jobs, results, opts)
	}

	sendProgress(prog, exportStartedUpdate(total, opts.OutputDir))
	go func() {
		defer close(jobs)
		for i, p := range playlists {
			select {
			case <-ctx.Done():
				return
			case jobs <- p:
				sendProgress(prog, exportingPlaylistUpdate(i+1, total, p.Name))
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, total, res.PlaylistName, len(res.Files)))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, total, res.PlaylistName, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "manifest.json")
	if err := formatter.WriteExportManifest(result.Manifest(opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports playlists from the jobs channel.
func (e *CatalogEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan models.Playlist,
	results chan<- PlaylistExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for p := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSinglePlaylist(ctx, limiter, p, opts)
	}
}

// exportSinglePlaylist exports a single playlist to the requested format.
func (e *CatalogEngine) exportSinglePlaylist(
	ctx context.Context,
	limiter *rate.Limiter,
	p models.Playlist,
	opts ExportOpts,
) PlaylistExportResult {
	result := PlaylistExportResult{
		PlaylistID:   p.ID,
		PlaylistName: p.Name,
		Success:      false,
		Files:        []string{},
	}

	switch opts.Format {
	case formatter.FormatCSV:
		csvRes, err := formatter.WriteCSVExport(p, filepath.Join(opts.OutputDir, p.ID))
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.TracksFile, csvRes.MetadataFile}

	case formatter.FormatMarkdown:
		var imageURL string
		if opts.Covers {
			if imageURL = formatter.CoverURL(p); imageURL != "" {
				if err := limiter.Wait(ctx); err != nil {
					result.Error = err
					return result
				}
			}
		}

		mdRes, err := formatter.WriteMarkdownExport(p, filepath.Join(opts.OutputDir, p.ID), imageURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files

	case formatter.FormatText:
		path, err := formatter.WriteTextExport(p, filepath.Join(opts.OutputDir, fmt.Sprintf("%s_tracks.txt", p.ID)))
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}

	default:
		path, err := formatter.WriteJSONExport(p, filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", p.ID)))
		if err != nil {
			result.Error = err
			return result
		}
		result.Files = []string{path}
	}

	e.logger.Debug("exported playlist", "id", p.ID, "format", opts.Format, "files", len(result.Files))
	result.Success = true
	return result
}
